// Package identity derives, recovers and uses the ed25519 keys that own
// accounts on the network.
//
// Keys are derived from a 24 words BIP-39 mnemonic and an optional
// passphrase. The passphrase takes part in the derivation, so the same
// mnemonic recovers different keys with different passphrases.
package identity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMnemonic is returned when a recovery phrase has unknown words,
	// a wrong number of words or a bad checksum
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrInvalidKey is returned when parsing a malformed textual key
	ErrInvalidKey = errors.New("invalid key")
	// ErrInvalidEntropySize is returned if the entropy source gives too few bytes
	ErrInvalidEntropySize = fmt.Errorf(
		"entropy must be %d bytes long", EntropySize,
	)
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cypher to decrypt must not be null")
	// ErrInvalidCypherText is returned if the cypher is not base64 encoded
	ErrInvalidCypherText = errors.New("cypher must be in base64 format")
	// ErrWrongPassphrase is returned when an encrypted key cannot be opened
	// with the given passphrase
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted cypher")
)
