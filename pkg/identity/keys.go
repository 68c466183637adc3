package identity

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// SecretKeySize is the size of the raw secret key (the ed25519 seed)
	SecretKeySize = ed25519.SeedSize
	// PublicKeySize is the size of the raw public key
	PublicKeySize = ed25519.PublicKeySize
	// SignatureSize is the size of a signature
	SignatureSize = ed25519.SignatureSize

	hkdfInfoSigning = "hedera/ed25519/v1"
)

// SecretKey is an ed25519 signing key. It owns its bytes; call Zero once the
// key is not needed anymore.
type SecretKey struct {
	key ed25519.PrivateKey
}

// NewSecretKey returns the key for the given 32 bytes seed. The seed is
// copied.
func NewSecretKey(seed []byte) (*SecretKey, error) {
	if len(seed) != SecretKeySize {
		return nil, fmt.Errorf(
			"%w: secret key must be %d bytes long", ErrInvalidKey, SecretKeySize,
		)
	}
	return &SecretKey{ed25519.NewKeyFromSeed(seed)}, nil
}

// ParseSecretKey parses the hex string form of a secret key
func ParseSecretKey(s string) (*SecretKey, error) {
	seed, err := decodeHexKey(s, SecretKeySize, "secret")
	if err != nil {
		return nil, err
	}
	defer zeroBytes(seed)

	return NewSecretKey(seed)
}

// deriveSecretKey expands the BIP-39 seed into the ed25519 seed of the key
func deriveSecretKey(bip39Seed []byte) (*SecretKey, error) {
	reader := hkdf.New(sha256.New, bip39Seed, nil, []byte(hkdfInfoSigning))
	seed := make([]byte, SecretKeySize)
	defer zeroBytes(seed)

	if _, err := io.ReadFull(reader, seed); err != nil {
		return nil, err
	}
	return NewSecretKey(seed)
}

// Public returns the public key of the secret one
func (k *SecretKey) Public() PublicKey {
	var pub PublicKey
	copy(pub[:], k.key[SecretKeySize:])
	return pub
}

// Sign signs the given message. Ed25519 signatures are deterministic.
func (k *SecretKey) Sign(message []byte) Signature {
	var sig Signature
	copy(sig[:], ed25519.Sign(k.key, message))
	return sig
}

// Bytes returns a copy of the raw 32 bytes secret key
func (k *SecretKey) Bytes() []byte {
	return append([]byte(nil), k.key.Seed()...)
}

// Equal returns whether the two keys hold the same bytes
func (k *SecretKey) Equal(other *SecretKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.key.Equal(other.key)
}

// Zero wipes the key material. The key must not be used afterwards.
func (k *SecretKey) Zero() {
	zeroBytes(k.key)
}

func (k *SecretKey) String() string {
	return hex.EncodeToString(k.key.Seed())
}

// PublicKey is an ed25519 verification key
type PublicKey [PublicKeySize]byte

// NewPublicKey returns the public key for the given raw bytes
func NewPublicKey(raw []byte) (PublicKey, error) {
	var pub PublicKey
	if len(raw) != PublicKeySize {
		return pub, fmt.Errorf(
			"%w: public key must be %d bytes long", ErrInvalidKey, PublicKeySize,
		)
	}
	copy(pub[:], raw)
	return pub, nil
}

// ParsePublicKey parses the hex string form of a public key
func ParsePublicKey(s string) (PublicKey, error) {
	raw, err := decodeHexKey(s, PublicKeySize, "public")
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKey(raw)
}

// Verify returns whether sig is a valid signature of message
func (p PublicKey) Verify(message []byte, sig Signature) bool {
	return ed25519.Verify(p[:], message, sig[:])
}

// Bytes returns a copy of the raw public key
func (p PublicKey) Bytes() []byte {
	return append([]byte(nil), p[:]...)
}

// Equal returns whether the two keys are the same
func (p PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(p[:], other[:])
}

func (p PublicKey) String() string {
	return hex.EncodeToString(p[:])
}

// Signature is an ed25519 signature
type Signature [SignatureSize]byte

// Bytes returns a copy of the raw signature
func (s Signature) Bytes() []byte {
	return append([]byte(nil), s[:]...)
}

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

func decodeHexKey(s string, size int, kind string) ([]byte, error) {
	if len(s) != hex.EncodedLen(size) {
		return nil, fmt.Errorf(
			"%w: %s key must be %d hex characters", ErrInvalidKey, kind, hex.EncodedLen(size),
		)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s key is not in hex format", ErrInvalidKey, kind)
	}
	return raw, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
