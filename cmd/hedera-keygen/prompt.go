package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
)

var errNoInput = errors.New("unexpected end of input")

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(ctx *cli.Context) *prompter {
	return &prompter{
		in:  bufio.NewReader(ctx.App.Reader),
		out: ctx.App.Writer,
	}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", errNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// passphrase asks for a passphrase, and for its confirmation until they match
func (p *prompter) passphrase() (string, error) {
	passphrase, err := p.ask("Enter passphrase (empty for no passphrase): ")
	if err != nil {
		return "", err
	}
	return passphrase, p.confirm(passphrase)
}

func (p *prompter) confirm(passphrase string) error {
	if passphrase == "" {
		return nil
	}

	confirmation, err := p.ask("Enter your passphrase again: ")
	for err == nil && confirmation != passphrase {
		confirmation, err = p.ask("Passphrase did not match, try again: ")
	}
	return err
}
