package protocol

import (
	"math"
	"time"

	"github.com/hederacore/hedera-core/pkg/client"
	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
	"github.com/hederacore/hedera-core/pkg/proto"
)

// DefaultAutoRenewPeriod is the auto-renew period of created accounts if not
// set otherwise
const DefaultAutoRenewPeriod = 7890000 * time.Second

// CryptoCreateTransaction creates a new account owned by a key
type CryptoCreateTransaction struct {
	Transaction
	body *proto.CryptoCreateTransactionBody
}

// NewCryptoCreateTransaction returns a transaction creating an account with no
// initial balance, no record thresholds and the default auto-renew period
func NewCryptoCreateTransaction(c *client.Client) *CryptoCreateTransaction {
	body := &proto.CryptoCreateTransactionBody{
		SendRecordThreshold:    math.MaxInt64,
		ReceiveRecordThreshold: math.MaxInt64,
		AutoRenewPeriod:        durationToProto(ledger.DurationFromStd(DefaultAutoRenewPeriod)),
	}
	return &CryptoCreateTransaction{
		Transaction: newTransaction(c, methodCreateAccount, body),
		body:        body,
	}
}

// SetKey sets the key that must sign transactions on behalf of the account
func (tx *CryptoCreateTransaction) SetKey(key identity.PublicKey) *CryptoCreateTransaction {
	if tx.mutable("key") {
		tx.body.Key = keyToProto(key)
	}
	return tx
}

// SetInitialBalance sets the tinybars transferred from the operator to the new
// account
func (tx *CryptoCreateTransaction) SetInitialBalance(tinybars uint64) *CryptoCreateTransaction {
	if tx.mutable("initial balance") {
		tx.body.InitialBalance = tinybars
	}
	return tx
}

// SetProxyAccount sets the account the new account stakes to
func (tx *CryptoCreateTransaction) SetProxyAccount(id ledger.AccountID) *CryptoCreateTransaction {
	if tx.mutable("proxy account") {
		tx.body.ProxyAccountID = accountIDToProto(id)
	}
	return tx
}

// SetSendRecordThreshold sets the amount of tinybars sent above which a record
// is generated
func (tx *CryptoCreateTransaction) SetSendRecordThreshold(tinybars uint64) *CryptoCreateTransaction {
	if tx.mutable("send record threshold") {
		tx.body.SendRecordThreshold = tinybars
	}
	return tx
}

// SetReceiveRecordThreshold sets the amount of tinybars received above which
// a record is generated
func (tx *CryptoCreateTransaction) SetReceiveRecordThreshold(tinybars uint64) *CryptoCreateTransaction {
	if tx.mutable("receive record threshold") {
		tx.body.ReceiveRecordThreshold = tinybars
	}
	return tx
}

// SetReceiverSignatureRequired makes the account key sign every transfer
// crediting the account
func (tx *CryptoCreateTransaction) SetReceiverSignatureRequired(required bool) *CryptoCreateTransaction {
	if tx.mutable("receiver signature required") {
		tx.body.ReceiverSigRequired = required
	}
	return tx
}

// SetAutoRenewPeriod sets how often the account is charged to extend its
// expiration
func (tx *CryptoCreateTransaction) SetAutoRenewPeriod(d time.Duration) *CryptoCreateTransaction {
	if tx.mutable("auto renew period") {
		tx.body.AutoRenewPeriod = durationToProto(ledger.DurationFromStd(d))
	}
	return tx
}

// SetOperator is Transaction.SetOperator for chaining
func (tx *CryptoCreateTransaction) SetOperator(id ledger.AccountID) *CryptoCreateTransaction {
	tx.Transaction.SetOperator(id)
	return tx
}

// SetNode is Transaction.SetNode for chaining
func (tx *CryptoCreateTransaction) SetNode(id ledger.AccountID) *CryptoCreateTransaction {
	tx.Transaction.SetNode(id)
	return tx
}

// SetMemo is Transaction.SetMemo for chaining
func (tx *CryptoCreateTransaction) SetMemo(memo string) *CryptoCreateTransaction {
	tx.Transaction.SetMemo(memo)
	return tx
}

// SetTransactionFee is Transaction.SetTransactionFee for chaining
func (tx *CryptoCreateTransaction) SetTransactionFee(fee uint64) *CryptoCreateTransaction {
	tx.Transaction.SetTransactionFee(fee)
	return tx
}

// Sign is Transaction.Sign for chaining
func (tx *CryptoCreateTransaction) Sign(key *identity.SecretKey) *CryptoCreateTransaction {
	tx.Transaction.Sign(key)
	return tx
}
