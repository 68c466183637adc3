package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/urfave/cli/v2"
)

var errEncryptionPassphrase = errors.New(
	"a passphrase is required to encrypt the secret key, use --unencrypted otherwise",
)

var generate = cli.Command{
	Name:  "generate",
	Usage: "generate a mnemonic and public/private key pair",
	Flags: []cli.Flag{
		&unencryptedFlag,
		&cli.StringFlag{
			Name:    "passphrase",
			Aliases: []string{"p"},
			Usage:   "passphrase protecting the mnemonic, prompted if not given",
		},
	},
	Action: generateAction,
}

func generateAction(ctx *cli.Context) error {
	out := ctx.App.Writer
	p := newPrompter(ctx)

	fmt.Fprintf(out, "Generating public/private %s key pair.\n", algorithmStyle.Sprint("ed25519"))

	var passphrase string
	var err error
	if ctx.IsSet("passphrase") {
		passphrase = ctx.String("passphrase")
		err = p.confirm(passphrase)
	} else {
		passphrase, err = p.passphrase()
	}
	if err != nil {
		return err
	}

	unencrypted := ctx.Bool("unencrypted")
	if !unencrypted && passphrase == "" {
		return errEncryptionPassphrase
	}

	key, mnemonic, err := identity.Generate(passphrase)
	if err != nil {
		return err
	}
	defer key.Zero()

	if err := printKey(out, key, passphrase, unencrypted); err != nil {
		return err
	}

	fmt.Fprintln(out, "You can use this phrase to recover your keys:")
	fmt.Fprintln(out, mnemonicStyle.Sprint(mnemonic.String()))
	return nil
}

// printKey prints the key pair, with the secret key either in clear or
// encrypted with the passphrase
func printKey(out io.Writer, key *identity.SecretKey, passphrase string, unencrypted bool) error {
	if unencrypted {
		fmt.Fprintf(out, "Secret Key: %s\n", secretStyle.Sprint(key.String()))
		fmt.Fprintf(out, "Public Key: %s\n", publicStyle.Sprint(key.Public().String()))
		return nil
	}

	cypherText, err := identity.EncryptSecretKey(identity.EncryptOpts{
		SecretKey:  key,
		Passphrase: passphrase,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Public Key: %s\n", publicStyle.Sprint(key.Public().String()))
	fmt.Fprintf(out, "Encrypted Secret Key: %s\n", cypherStyle.Sprint(cypherText))
	return nil
}
