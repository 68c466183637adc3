package ledger

import (
	"strings"
	"time"
)

// validStartBackdate moves the valid start of new transaction ids in the past
// so that a node with a clock slightly behind ours does not reject them as
// not yet valid.
const validStartBackdate = 10 * time.Second

// TransactionID uniquely identifies a transaction by its paying account and
// the start of its validity window
type TransactionID struct {
	AccountID  AccountID
	ValidStart Timestamp
}

// NewTransactionID returns the id for a transaction paid by the given account
// and starting at now.
func NewTransactionID(account AccountID, now time.Time) TransactionID {
	return TransactionID{
		AccountID:  account,
		ValidStart: TimestampFromTime(now.Add(-validStartBackdate)),
	}
}

// ParseTransactionID parses an id in the form
// "shard.realm.account@seconds.nanos"
func ParseTransactionID(s string) (TransactionID, error) {
	account, start, found := strings.Cut(strings.TrimSpace(s), "@")
	if !found {
		return TransactionID{}, parseError(
			"transaction id", s, "{shard}.{realm}.{account}@{seconds}.{nanos}",
		)
	}

	accountID, err := ParseAccountID(account)
	if err != nil {
		return TransactionID{}, err
	}
	validStart, err := ParseTimestamp(start)
	if err != nil {
		return TransactionID{}, err
	}

	return TransactionID{AccountID: accountID, ValidStart: validStart}, nil
}

func (id TransactionID) String() string {
	return id.AccountID.String() + "@" + id.ValidStart.String()
}
