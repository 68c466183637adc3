package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// TinybarsPerHbar is the number of tinybars in one hbar
const TinybarsPerHbar = 100_000_000

var tinybarsPerHbar = decimal.NewFromInt(TinybarsPerHbar)

// Hbar is an amount of the network currency expressed in tinybars
type Hbar int64

// HbarFromTinybars returns the amount for the given tinybars
func HbarFromTinybars(tinybars int64) Hbar {
	return Hbar(tinybars)
}

// HbarFromString parses an amount of hbars like "1.5" or "-0.00000001",
// optionally suffixed with "ℏ". Amounts finer than a tinybar are rejected.
func HbarFromString(s string) (Hbar, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "ℏ"))
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, parseError("hbar amount", s, "a decimal number of hbars")
	}

	tinybars := amount.Mul(tinybarsPerHbar)
	if !tinybars.IsInteger() {
		return 0, fmt.Errorf(
			"%w: hbar amount %q is more precise than a tinybar", ErrParse, s,
		)
	}
	if tinybars.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, fmt.Errorf("%w: hbar amount %q is out of range", ErrParse, s)
	}
	return Hbar(tinybars.IntPart()), nil
}

// Tinybars returns the amount in tinybars
func (h Hbar) Tinybars() int64 {
	return int64(h)
}

// Decimal returns the amount in hbars
func (h Hbar) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(h)).Div(tinybarsPerHbar)
}

func (h Hbar) String() string {
	return h.Decimal().String() + " ℏ"
}
