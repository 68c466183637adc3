package identity

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Generator creates new keys reading entropy from the wrapped source
type Generator struct {
	entropy io.Reader
}

// NewGenerator returns a Generator reading entropy from the given source.
// Production code should use the package level Generate that reads from
// crypto/rand; fixed sources are meant for reproducible test vectors.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy}
}

var defaultGenerator = NewGenerator(rand.Reader)

// Generate creates a new secret key and the mnemonic to recover it with the
// given passphrase
func Generate(passphrase string) (*SecretKey, Mnemonic, error) {
	return defaultGenerator.Generate(passphrase)
}

// Generate creates a new secret key and the mnemonic to recover it with the
// given passphrase
func (g *Generator) Generate(passphrase string) (*SecretKey, Mnemonic, error) {
	entropy := make([]byte, EntropySize)
	defer zeroBytes(entropy)

	if _, err := io.ReadFull(g.entropy, entropy); err != nil {
		return nil, nil, fmt.Errorf("failed to read entropy: %w", err)
	}

	mnemonic, err := NewMnemonic(entropy)
	if err != nil {
		return nil, nil, err
	}
	key, err := mnemonic.SecretKey(passphrase)
	if err != nil {
		return nil, nil, err
	}
	return key, mnemonic, nil
}

// FromMnemonic recovers the secret key of the given recovery phrase and
// passphrase. It fails with ErrInvalidMnemonic if the phrase is malformed.
func FromMnemonic(phrase, passphrase string) (*SecretKey, error) {
	mnemonic, err := ParseMnemonic(phrase)
	if err != nil {
		return nil, err
	}
	return mnemonic.SecretKey(passphrase)
}

// SecretKey derives the secret key of the mnemonic for the given passphrase
func (m Mnemonic) SecretKey(passphrase string) (*SecretKey, error) {
	seed, err := m.seed(passphrase)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(seed)

	return deriveSecretKey(seed)
}
