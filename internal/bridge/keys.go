package bridge

import (
	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
)

// SecretKeyGenerate generates a new secret key protected by the passphrase
// and returns it along with its recovery mnemonic
func (b *Bridge) SecretKeyGenerate(passphrase string) (h Handle, mnemonic string, status Status) {
	defer guard("secret_key_generate", &status)

	key, words, err := identity.Generate(passphrase)
	if err != nil {
		return 0, "", StatusOf(err)
	}
	return b.handles.Put(key), words.String(), StatusOK
}

// SecretKeyFromMnemonic recovers a secret key
func (b *Bridge) SecretKeyFromMnemonic(phrase, passphrase string) (h Handle, status Status) {
	defer guard("secret_key_from_mnemonic", &status)

	key, err := identity.FromMnemonic(phrase, passphrase)
	if err != nil {
		return 0, statusOr(err, StatusRecovery)
	}
	return b.handles.Put(key), StatusOK
}

// SecretKeyParse parses a secret key from its hex form
func (b *Bridge) SecretKeyParse(s string) (h Handle, status Status) {
	defer guard("secret_key_parse", &status)

	key, err := identity.ParseSecretKey(s)
	if err != nil {
		return 0, StatusOf(err)
	}
	return b.handles.Put(key), StatusOK
}

// SecretKeyDecrypt recovers a secret key encrypted with SecretKeyEncrypt
func (b *Bridge) SecretKeyDecrypt(cypherText, passphrase string) (h Handle, status Status) {
	defer guard("secret_key_decrypt", &status)

	key, err := identity.DecryptSecretKey(identity.DecryptOpts{
		CypherText: cypherText,
		Passphrase: passphrase,
	})
	if err != nil {
		return 0, StatusOf(err)
	}
	return b.handles.Put(key), StatusOK
}

// SecretKeyPublic returns a new handle to the public key of the secret key
func (b *Bridge) SecretKeyPublic(h Handle) (public Handle, status Status) {
	defer guard("secret_key_public", &status)

	err := borrow(b, h, func(key *identity.SecretKey) error {
		public = b.handles.Put(key.Public())
		return nil
	})
	return public, StatusOf(err)
}

// SecretKeyString returns the hex form of the secret key in clear
func (b *Bridge) SecretKeyString(h Handle) (s string, status Status) {
	defer guard("secret_key_string", &status)

	err := borrow(b, h, func(key *identity.SecretKey) error {
		s = key.String()
		return nil
	})
	return s, StatusOf(err)
}

// SecretKeyEncrypt encrypts the secret key with the passphrase
func (b *Bridge) SecretKeyEncrypt(h Handle, passphrase string) (cypherText string, status Status) {
	defer guard("secret_key_encrypt", &status)

	err := borrow(b, h, func(key *identity.SecretKey) (err error) {
		cypherText, err = identity.EncryptSecretKey(identity.EncryptOpts{
			SecretKey:  key,
			Passphrase: passphrase,
		})
		return
	})
	return cypherText, StatusOf(err)
}

// SecretKeyFree wipes the secret key and frees the handle
func (b *Bridge) SecretKeyFree(h Handle) (status Status) {
	defer guard("secret_key_free", &status)

	key, err := consume[*identity.SecretKey](b, h)
	if err != nil {
		return StatusOf(err)
	}
	key.Zero()
	return StatusOK
}

// PublicKeyParse parses a public key from its hex form
func (b *Bridge) PublicKeyParse(s string) (h Handle, status Status) {
	defer guard("public_key_parse", &status)

	key, err := identity.ParsePublicKey(s)
	if err != nil {
		return 0, StatusOf(err)
	}
	return b.handles.Put(key), StatusOK
}

func (b *Bridge) PublicKeyString(h Handle) (s string, status Status) {
	defer guard("public_key_string", &status)

	err := borrow(b, h, func(key identity.PublicKey) error {
		s = key.String()
		return nil
	})
	return s, StatusOf(err)
}

// PublicKeyVerify reports whether sig is a valid signature of message by the
// public key
func (b *Bridge) PublicKeyVerify(h Handle, message, sig []byte) (valid bool, status Status) {
	defer guard("public_key_verify", &status)

	err := borrow(b, h, func(key identity.PublicKey) error {
		if len(sig) != identity.SignatureSize {
			return nil
		}
		var signature identity.Signature
		copy(signature[:], sig)
		valid = key.Verify(message, signature)
		return nil
	})
	return valid, StatusOf(err)
}

// PublicKeyFree frees the handle of a public key
func (b *Bridge) PublicKeyFree(h Handle) (status Status) {
	defer guard("public_key_free", &status)

	_, err := consume[identity.PublicKey](b, h)
	return StatusOf(err)
}

// AccountIDParse parses an account id, which crosses the boundary by value
func (b *Bridge) AccountIDParse(s string) (id ledger.AccountID, status Status) {
	defer guard("account_id_parse", &status)

	id, err := ledger.ParseAccountID(s)
	if err != nil {
		return ledger.AccountID{}, StatusOf(err)
	}
	return id, StatusOK
}
