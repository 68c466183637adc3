package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	algorithmStyle = color.New(color.FgRed, color.Bold)
	secretStyle    = color.New(color.FgGreen)
	publicStyle    = color.New(color.FgYellow)
	mnemonicStyle  = color.New(color.FgMagenta)
	cypherStyle    = color.New(color.FgBlue)
	errorStyle     = color.New(color.FgRed)

	unencryptedFlag = cli.BoolFlag{
		Name:    "unencrypted",
		Aliases: []string{"u"},
		Usage:   "print the unencrypted keys and mnemonic phrase to the terminal",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "hedera-keygen"
	app.Usage = "private and public key generator for Hedera"
	app.Commands = append(
		app.Commands,
		&generate,
		&recoverKey,
	)
	return app
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[hedera-keygen] %v\n", err)
	os.Exit(1)
}
