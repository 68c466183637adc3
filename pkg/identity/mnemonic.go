package identity

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const (
	// EntropySize is the number of random bytes encoded by a mnemonic
	EntropySize = 32
	// MnemonicLength is the number of words of a mnemonic
	MnemonicLength = 24
)

// Mnemonic is the ordered list of words of a recovery phrase
type Mnemonic []string

// NewMnemonic encodes the given entropy as a mnemonic
func NewMnemonic(entropy []byte) (Mnemonic, error) {
	if len(entropy) != EntropySize {
		return nil, ErrInvalidEntropySize
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Fields(phrase), nil
}

// ParseMnemonic parses a space separated recovery phrase. Case and extra
// whitespace are ignored.
func ParseMnemonic(phrase string) (Mnemonic, error) {
	words := strings.Fields(strings.ToLower(phrase))
	if len(words) != MnemonicLength {
		return nil, fmt.Errorf(
			"%w: got %d words, expected %d", ErrInvalidMnemonic, len(words), MnemonicLength,
		)
	}
	if !bip39.IsMnemonicValid(strings.Join(words, " ")) {
		return nil, fmt.Errorf(
			"%w: unknown words or checksum mismatch", ErrInvalidMnemonic,
		)
	}
	return words, nil
}

func (m Mnemonic) String() string {
	return strings.Join(m, " ")
}

// seed returns the 64 bytes BIP-39 seed of the mnemonic stretched with the
// given passphrase
func (m Mnemonic) seed(passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(m.String(), passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return seed, nil
}
