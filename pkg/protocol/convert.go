package protocol

import (
	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
	"github.com/hederacore/hedera-core/pkg/proto"
)

const (
	methodCreateAccount     = "/proto.CryptoService/createAccount"
	methodCryptoTransfer    = "/proto.CryptoService/cryptoTransfer"
	methodUpdateAccount     = "/proto.CryptoService/updateAccount"
	methodGetAccountBalance = "/proto.CryptoService/cryptoGetBalance"
	methodGetAccountRecords = "/proto.CryptoService/getAccountRecords"
)

func accountIDToProto(id ledger.AccountID) *proto.AccountID {
	return &proto.AccountID{
		ShardNum:   int64(id.Shard),
		RealmNum:   int64(id.Realm),
		AccountNum: int64(id.Account),
	}
}

func accountIDFromProto(id *proto.AccountID) ledger.AccountID {
	if id == nil {
		return ledger.AccountID{}
	}
	return ledger.AccountID{
		Shard:   uint64(id.ShardNum),
		Realm:   uint64(id.RealmNum),
		Account: uint64(id.AccountNum),
	}
}

func timestampToProto(ts ledger.Timestamp) *proto.Timestamp {
	return &proto.Timestamp{Seconds: ts.Seconds, Nanos: ts.Nanos}
}

func timestampFromProto(ts *proto.Timestamp) *ledger.Timestamp {
	if ts == nil {
		return nil
	}
	return &ledger.Timestamp{Seconds: ts.Seconds, Nanos: ts.Nanos}
}

func durationToProto(d ledger.Duration) *proto.Duration {
	return &proto.Duration{Seconds: d.Seconds}
}

func transactionIDToProto(id ledger.TransactionID) *proto.TransactionID {
	return &proto.TransactionID{
		TransactionValidStart: timestampToProto(id.ValidStart),
		AccountID:             accountIDToProto(id.AccountID),
	}
}

func transactionIDFromProto(id *proto.TransactionID) *ledger.TransactionID {
	if id == nil {
		return nil
	}
	txid := &ledger.TransactionID{AccountID: accountIDFromProto(id.AccountID)}
	if ts := timestampFromProto(id.TransactionValidStart); ts != nil {
		txid.ValidStart = *ts
	}
	return txid
}

func keyToProto(key identity.PublicKey) *proto.Key {
	return &proto.Key{Ed25519: key.Bytes()}
}

// recordFromProto converts a record of the given account. The account the
// receipt refers to, if any, takes precedence.
func recordFromProto(
	account ledger.AccountID, r *proto.TransactionRecord,
) ledger.TransactionRecord {
	if r.Receipt != nil && r.Receipt.AccountID != nil {
		account = accountIDFromProto(r.Receipt.AccountID)
	}
	return ledger.TransactionRecord{
		AccountID:          account,
		TransactionHash:    append([]byte(nil), r.TransactionHash...),
		ConsensusTimestamp: timestampFromProto(r.ConsensusTimestamp),
		TransactionID:      transactionIDFromProto(r.TransactionID),
		Memo:               r.Memo,
		TransactionFee:     r.TransactionFee,
	}
}
