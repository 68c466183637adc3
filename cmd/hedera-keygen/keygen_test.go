package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, input string, args ...string) (string, error) {
	color.NoColor = true

	out := &bytes.Buffer{}
	app := newApp()
	app.Reader = strings.NewReader(input)
	app.Writer = out

	err := app.Run(append([]string{"hedera-keygen"}, args...))
	return out.String(), err
}

// valueOf returns what follows the given label in the output
func valueOf(t *testing.T, out, label string) string {
	for _, line := range strings.Split(out, "\n") {
		if _, value, ok := strings.Cut(line, label); ok {
			return strings.TrimSpace(value)
		}
	}
	require.Failf(t, "missing output", "no %q in %q", label, out)
	return ""
}

func TestGenerateUnencrypted(t *testing.T) {
	out, err := runApp(t, "\n", "generate", "-u")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Generating public/private ed25519 key pair.\n"))

	secret := valueOf(t, out, "Secret Key:")
	public := valueOf(t, out, "Public Key:")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	mnemonic := lines[len(lines)-1]
	assert.Len(t, strings.Fields(mnemonic), identity.MnemonicLength)

	key, err := identity.FromMnemonic(mnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, secret, key.String())
	assert.Equal(t, public, key.Public().String())
}

func TestGenerateConfirmsPassphrase(t *testing.T) {
	out, err := runApp(t, "wrong\nstill wrong\nsecret\n", "generate", "-u", "-p", "secret")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Passphrase did not match"))

	lines := strings.Split(strings.TrimSpace(out), "\n")
	key, err := identity.FromMnemonic(lines[len(lines)-1], "secret")
	require.NoError(t, err)
	assert.Equal(t, valueOf(t, out, "Secret Key:"), key.String())
}

func TestRecover(t *testing.T) {
	key, mnemonic, err := identity.Generate("pass")
	require.NoError(t, err)

	input := mnemonic.String() + "\npass\npass\n"
	out, err := runApp(t, input, "recover", "--unencrypted")
	require.NoError(t, err)

	assert.Equal(t, key.String(), valueOf(t, out, "Secret Key:"))
	assert.Equal(t, key.Public().String(), valueOf(t, out, "Public Key:"))
}

func TestFailingKeygen(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		args          []string
		expectedError error
	}{
		{
			name:          "invalid_phrase",
			input:         "not a real phrase\n\n",
			args:          []string{"recover", "-u"},
			expectedError: identity.ErrInvalidMnemonic,
		},
		{
			name:          "encrypted_without_passphrase",
			input:         "\n",
			args:          []string{"generate"},
			expectedError: errEncryptionPassphrase,
		},
		{
			name:          "unconfirmed_passphrase",
			input:         "secret\nwrong\n",
			args:          []string{"generate", "-u"},
			expectedError: errNoInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err := runApp(t, tt.input, tt.args...)
				require.ErrorIs(t, err, tt.expectedError)
			})
		})
	}
}
