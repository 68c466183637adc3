package main

import (
	"errors"
	"fmt"

	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/urfave/cli/v2"
)

var recoverKey = cli.Command{
	Name:   "recover",
	Usage:  "recover a public/private key pair by providing the mnemonic",
	Flags:  []cli.Flag{&unencryptedFlag},
	Action: recoverAction,
}

func recoverAction(ctx *cli.Context) error {
	out := ctx.App.Writer
	p := newPrompter(ctx)

	phrase, err := p.ask("Enter your recovery phrase: ")
	if err != nil {
		return err
	}
	passphrase, err := p.passphrase()
	if err != nil {
		return err
	}

	unencrypted := ctx.Bool("unencrypted")
	if !unencrypted && passphrase == "" {
		return errEncryptionPassphrase
	}

	key, err := identity.FromMnemonic(phrase, passphrase)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidMnemonic) {
			return fmt.Errorf(
				"%s, please try again. You can use hedera-keygen --help for more info: %w",
				errorStyle.Sprint("invalid recovery phrase"), err,
			)
		}
		return err
	}
	defer key.Zero()

	return printKey(out, key, passphrase, unencrypted)
}
