package protocol

import (
	"time"

	"github.com/hederacore/hedera-core/pkg/client"
	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
	"github.com/hederacore/hedera-core/pkg/proto"
)

// CryptoUpdateTransaction changes the properties of an existing account. Only
// the fields that are set are updated.
type CryptoUpdateTransaction struct {
	Transaction
	body *proto.CryptoUpdateTransactionBody
}

// NewCryptoUpdateTransaction returns an update leaving every property of the
// account unchanged
func NewCryptoUpdateTransaction(c *client.Client) *CryptoUpdateTransaction {
	body := &proto.CryptoUpdateTransactionBody{}
	return &CryptoUpdateTransaction{
		Transaction: newTransaction(c, methodUpdateAccount, body),
		body:        body,
	}
}

// SetAccountToUpdate sets the account whose properties are changed
func (tx *CryptoUpdateTransaction) SetAccountToUpdate(id ledger.AccountID) *CryptoUpdateTransaction {
	if tx.mutable("account to update") {
		tx.body.AccountIDToUpdate = accountIDToProto(id)
	}
	return tx
}

// SetKey replaces the key of the account. The transaction must be signed by
// both the old and the new key.
func (tx *CryptoUpdateTransaction) SetKey(key identity.PublicKey) *CryptoUpdateTransaction {
	if tx.mutable("key") {
		tx.body.Key = keyToProto(key)
	}
	return tx
}

// SetProxyAccount changes the account the updated account stakes to
func (tx *CryptoUpdateTransaction) SetProxyAccount(id ledger.AccountID) *CryptoUpdateTransaction {
	if tx.mutable("proxy account") {
		tx.body.ProxyAccountID = accountIDToProto(id)
	}
	return tx
}

// SetProxyFraction changes the fraction of the proxy account's earnings
// shared with the account
func (tx *CryptoUpdateTransaction) SetProxyFraction(fraction int32) *CryptoUpdateTransaction {
	if tx.mutable("proxy fraction") {
		tx.body.ProxyFraction = fraction
	}
	return tx
}

// SetSendRecordThreshold changes the amount in tinybars above which outgoing
// transfers generate a record
func (tx *CryptoUpdateTransaction) SetSendRecordThreshold(tinybars uint64) *CryptoUpdateTransaction {
	if tx.mutable("send record threshold") {
		tx.body.SendRecordThreshold = tinybars
	}
	return tx
}

// SetReceiveRecordThreshold changes the amount in tinybars above which
// incoming transfers generate a record
func (tx *CryptoUpdateTransaction) SetReceiveRecordThreshold(tinybars uint64) *CryptoUpdateTransaction {
	if tx.mutable("receive record threshold") {
		tx.body.ReceiveRecordThreshold = tinybars
	}
	return tx
}

// SetAutoRenewPeriod changes how often the account is charged to extend its
// expiration
func (tx *CryptoUpdateTransaction) SetAutoRenewPeriod(d time.Duration) *CryptoUpdateTransaction {
	if tx.mutable("auto renew period") {
		tx.body.AutoRenewPeriod = durationToProto(ledger.DurationFromStd(d))
	}
	return tx
}

// SetExpirationTime moves the expiration of the account
func (tx *CryptoUpdateTransaction) SetExpirationTime(ts ledger.Timestamp) *CryptoUpdateTransaction {
	if tx.mutable("expiration time") {
		tx.body.ExpirationTime = timestampToProto(ts)
	}
	return tx
}

// SetOperator is Transaction.SetOperator for chaining
func (tx *CryptoUpdateTransaction) SetOperator(id ledger.AccountID) *CryptoUpdateTransaction {
	tx.Transaction.SetOperator(id)
	return tx
}

// SetNode is Transaction.SetNode for chaining
func (tx *CryptoUpdateTransaction) SetNode(id ledger.AccountID) *CryptoUpdateTransaction {
	tx.Transaction.SetNode(id)
	return tx
}

func (tx *CryptoUpdateTransaction) SetMemo(memo string) *CryptoUpdateTransaction {
	tx.Transaction.SetMemo(memo)
	return tx
}

func (tx *CryptoUpdateTransaction) SetTransactionFee(fee uint64) *CryptoUpdateTransaction {
	tx.Transaction.SetTransactionFee(fee)
	return tx
}

// Sign adds a signature to the update. Changing the key of an account requires
// the signature of both the old and the new key.
func (tx *CryptoUpdateTransaction) Sign(key *identity.SecretKey) *CryptoUpdateTransaction {
	tx.Transaction.Sign(key)
	return tx
}
