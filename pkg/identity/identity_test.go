package identity

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zeroEntropyMnemonic = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon abandon abandon abandon art"

func TestMain(m *testing.M) {
	scryptN = 1 << 10
	os.Exit(m.Run())
}

func TestGenerateRecover(t *testing.T) {
	passphrases := []string{"", "supersecurekey", "ħedera ✓"}

	for _, passphrase := range passphrases {
		key, mnemonic, err := Generate(passphrase)
		require.NoError(t, err)
		require.Len(t, mnemonic, MnemonicLength)

		recovered, err := FromMnemonic(mnemonic.String(), passphrase)
		require.NoError(t, err)
		assert.Equal(t, key.Bytes(), recovered.Bytes())
		assert.True(t, key.Equal(recovered))
		assert.Equal(t, key.Public(), recovered.Public())
	}
}

func TestPassphraseSensitivity(t *testing.T) {
	key1, err := FromMnemonic(zeroEntropyMnemonic, "first")
	require.NoError(t, err)
	key2, err := FromMnemonic(zeroEntropyMnemonic, "second")
	require.NoError(t, err)
	key3, err := FromMnemonic(zeroEntropyMnemonic, "")
	require.NoError(t, err)

	assert.NotEqual(t, key1.Bytes(), key2.Bytes())
	assert.NotEqual(t, key1.Bytes(), key3.Bytes())
	assert.NotEqual(t, key2.Public(), key3.Public())
}

func TestGeneratorIsReproducible(t *testing.T) {
	entropy := bytes.Repeat([]byte{0}, EntropySize)

	key1, mnemonic1, err := NewGenerator(bytes.NewReader(entropy)).Generate("pass")
	require.NoError(t, err)
	key2, mnemonic2, err := NewGenerator(bytes.NewReader(entropy)).Generate("pass")
	require.NoError(t, err)

	assert.Equal(t, zeroEntropyMnemonic, mnemonic1.String())
	assert.Equal(t, mnemonic1, mnemonic2)
	assert.True(t, key1.Equal(key2))
}

func TestGeneratorEntropyExhausted(t *testing.T) {
	short := bytes.NewReader(make([]byte, EntropySize-1))

	_, _, err := NewGenerator(short).Generate("")
	require.Error(t, err)
}

func TestFailingFromMnemonic(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
	}{
		{"garbage", "not a real phrase"},
		{"empty", ""},
		{"bad checksum", strings.Repeat("abandon ", 24)},
		{"unknown word", strings.Replace(zeroEntropyMnemonic, "art", "hedera", 1)},
		{"too short", "abandon abandon abandon abandon abandon abandon abandon " +
			"abandon abandon abandon abandon about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				key, err := FromMnemonic(tt.phrase, "")
				require.ErrorIs(t, err, ErrInvalidMnemonic)
				require.Nil(t, key)
			})
		})
	}
}

func TestParseMnemonicNormalizes(t *testing.T) {
	phrase := "  " + strings.ToUpper(zeroEntropyMnemonic) + "\n"

	mnemonic, err := ParseMnemonic(phrase)
	require.NoError(t, err)
	assert.Equal(t, zeroEntropyMnemonic, mnemonic.String())
}

func TestPublicKeyIsDeterministic(t *testing.T) {
	key, _, err := Generate("")
	require.NoError(t, err)

	first := key.Public()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, key.Public())
	}
}

func TestSignVerify(t *testing.T) {
	key, _, err := Generate("")
	require.NoError(t, err)
	message := []byte("transaction body")

	sig := key.Sign(message)
	assert.Equal(t, sig, key.Sign(message))
	assert.True(t, key.Public().Verify(message, sig))
	assert.False(t, key.Public().Verify([]byte("tampered body"), sig))

	other, _, err := Generate("")
	require.NoError(t, err)
	assert.False(t, other.Public().Verify(message, sig))
}

func TestKeyStringRoundTrip(t *testing.T) {
	key, _, err := Generate("")
	require.NoError(t, err)

	secretHex := key.String()
	require.Len(t, secretHex, 2*SecretKeySize)
	parsedSecret, err := ParseSecretKey(secretHex)
	require.NoError(t, err)
	assert.True(t, key.Equal(parsedSecret))

	publicHex := key.Public().String()
	require.Len(t, publicHex, 2*PublicKeySize)
	parsedPublic, err := ParsePublicKey(publicHex)
	require.NoError(t, err)
	assert.Equal(t, key.Public(), parsedPublic)
}

func TestFailingParseKeys(t *testing.T) {
	tests := []string{
		"",
		"00",
		strings.Repeat("zz", SecretKeySize),
		"302e020100300506032b657004220420" + strings.Repeat("00", SecretKeySize),
		strings.Repeat("00", SecretKeySize) + " ",
	}

	for _, tt := range tests {
		_, err := ParseSecretKey(tt)
		assert.ErrorIs(t, err, ErrInvalidKey)
		_, err = ParsePublicKey(tt)
		assert.ErrorIs(t, err, ErrInvalidKey)
	}
}

func TestZero(t *testing.T) {
	key, _, err := Generate("")
	require.NoError(t, err)

	key.Zero()
	assert.Equal(t, make([]byte, SecretKeySize), key.Bytes())
}

func TestEncryptDecryptSecretKey(t *testing.T) {
	key, _, err := Generate("")
	require.NoError(t, err)

	cypher, err := EncryptSecretKey(EncryptOpts{
		SecretKey:  key,
		Passphrase: "supersecurekey",
	})
	require.NoError(t, err)
	assert.NotContains(t, cypher, key.String())

	revealed, err := DecryptSecretKey(DecryptOpts{
		CypherText: cypher,
		Passphrase: "supersecurekey",
	})
	require.NoError(t, err)
	assert.True(t, key.Equal(revealed))

	_, err = DecryptSecretKey(DecryptOpts{
		CypherText: cypher,
		Passphrase: "wrongkey",
	})
	assert.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestFailingEncryptDecrypt(t *testing.T) {
	key, _, err := Generate("")
	require.NoError(t, err)

	encTests := []struct {
		opts EncryptOpts
		err  error
	}{
		{EncryptOpts{SecretKey: nil, Passphrase: "supersecurekey"}, ErrInvalidKey},
		{EncryptOpts{SecretKey: key, Passphrase: ""}, ErrNullPassphrase},
	}
	for _, tt := range encTests {
		_, err := EncryptSecretKey(tt.opts)
		assert.Equal(t, tt.err, err)
	}

	decTests := []struct {
		opts DecryptOpts
		err  error
	}{
		{DecryptOpts{CypherText: "", Passphrase: "supersecurekey"}, ErrNullCypherText},
		{DecryptOpts{CypherText: "not base64!", Passphrase: "supersecurekey"}, ErrInvalidCypherText},
		{DecryptOpts{CypherText: "c2hvcnQ=", Passphrase: "supersecurekey"}, ErrInvalidCypherText},
		{DecryptOpts{CypherText: "c2hvcnQ=", Passphrase: ""}, ErrNullPassphrase},
	}
	for _, tt := range decTests {
		_, err := DecryptSecretKey(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}
