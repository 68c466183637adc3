package identity

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/scrypt"
)

const saltSize = 32

// 2^20 = 1048576 recommended cost for key-stretching of interactive logins.
// Check the doc for other recommended values:
// https://godoc.org/golang.org/x/crypto/scrypt
var scryptN = 1 << 20

// EncryptOpts is the struct given to EncryptSecretKey method
type EncryptOpts struct {
	SecretKey  *SecretKey
	Passphrase string
}

func (o EncryptOpts) validate() error {
	if o.SecretKey == nil {
		return ErrInvalidKey
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

// EncryptSecretKey encrypts (with AES-256-GCM) the secret key with a key
// stretched from the provided passphrase. The result is the base64 encoding of
// nonce|cypher|salt.
func EncryptSecretKey(opts EncryptOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	key, salt, err := deriveEncryptionKey([]byte(opts.Passphrase), nil)
	if err != nil {
		return "", err
	}
	defer zeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return "", err
	}

	plaintext := opts.SecretKey.Bytes()
	defer zeroBytes(plaintext)

	cyphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	cyphertext = append(cyphertext, salt...)

	return base64.StdEncoding.EncodeToString(cyphertext), nil
}

// DecryptOpts is the struct given to DecryptSecretKey method
type DecryptOpts struct {
	CypherText string
	Passphrase string
}

func (o DecryptOpts) validate() error {
	if len(o.CypherText) <= 0 {
		return ErrNullCypherText
	}
	if _, err := base64.StdEncoding.DecodeString(o.CypherText); err != nil {
		return ErrInvalidCypherText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

// DecryptSecretKey opens a secret key encrypted with EncryptSecretKey
func DecryptSecretKey(opts DecryptOpts) (*SecretKey, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	data, _ := base64.StdEncoding.DecodeString(opts.CypherText)
	if len(data) <= saltSize {
		return nil, ErrInvalidCypherText
	}
	salt, data := data[len(data)-saltSize:], data[:len(data)-saltSize]

	key, _, err := deriveEncryptionKey([]byte(opts.Passphrase), salt)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, ErrInvalidCypherText
	}
	nonce, text := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, text, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	defer zeroBytes(plaintext)

	return NewSecretKey(plaintext)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(blockCipher)
}

func deriveEncryptionKey(passphrase, salt []byte) ([]byte, []byte, error) {
	if salt == nil {
		salt = make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, err
		}
	}
	key, err := scrypt.Key(passphrase, salt, scryptN, 8, 1, 32)
	if err != nil {
		return nil, nil, err
	}
	return key, salt, nil
}
