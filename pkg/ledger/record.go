package ledger

import (
	"encoding/hex"
	"fmt"
)

// TransactionRecord is the historical record of a transaction that reached
// consensus
type TransactionRecord struct {
	AccountID          AccountID
	TransactionHash    []byte
	ConsensusTimestamp *Timestamp
	TransactionID      *TransactionID
	Memo               string
	TransactionFee     uint64
}

func (r TransactionRecord) String() string {
	txid, consensus := "-", "-"
	if r.TransactionID != nil {
		txid = r.TransactionID.String()
	}
	if r.ConsensusTimestamp != nil {
		consensus = r.ConsensusTimestamp.String()
	}
	return fmt.Sprintf(
		"%s->%s#%s::%s@%s.%d",
		r.AccountID, txid, hex.EncodeToString(r.TransactionHash),
		r.Memo, consensus, r.TransactionFee,
	)
}
