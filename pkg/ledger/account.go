package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// AccountID is the address of an account on the network in the form
// shard.realm.account
type AccountID struct {
	Shard   uint64
	Realm   uint64
	Account uint64
}

// NewAccountID returns the id of the given account in shard 0, realm 0
func NewAccountID(account uint64) AccountID {
	return AccountID{Account: account}
}

// ParseAccountID parses an id in the form "shard.realm.account". Every
// component must fit the network's signed 64-bit numbers.
func ParseAccountID(s string) (AccountID, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return AccountID{}, parseError("account id", s, "{shard}.{realm}.{account}")
	}

	nums := make([]uint64, 0, 3)
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 63)
		if err != nil {
			return AccountID{}, parseError("account id", s, "{shard}.{realm}.{account}")
		}
		nums = append(nums, n)
	}

	return AccountID{Shard: nums[0], Realm: nums[1], Account: nums[2]}, nil
}

// IsZero returns whether the id is 0.0.0, that the network never assigns
func (id AccountID) IsZero() bool {
	return id == AccountID{}
}

func (id AccountID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Account)
}

// AccountAmount is a single balance adjustment of a crypto transfer, negative
// for senders and positive for receivers
type AccountAmount struct {
	AccountID AccountID
	Amount    int64
}
