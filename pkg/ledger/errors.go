package ledger

import (
	"errors"
	"fmt"

	"github.com/hederacore/hedera-core/pkg/identity"
)

var (
	// ErrParse is returned for malformed textual keys, ids and timestamps
	ErrParse = errors.New("parse error")
	// ErrMissingSignature is returned when executing a transaction that lacks
	// the operator's signature
	ErrMissingSignature = errors.New("transaction is missing the operator signature")
	// ErrTransport is matched by every network I/O failure
	ErrTransport = errors.New("transport error")
	// ErrInvalidState is returned on API misuse like reusing an executed
	// transaction or a released handle
	ErrInvalidState = errors.New("invalid state")
)

// ErrorKind classifies errors crossing the public API
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindParse
	KindPreCheck
	KindMissingSignature
	KindTransport
	KindInvalidState
	KindRecovery
)

func (k ErrorKind) String() string {
	switch k {
	case KindParse:
		return "Parse"
	case KindPreCheck:
		return "PreCheck"
	case KindMissingSignature:
		return "MissingSignature"
	case KindTransport:
		return "Transport"
	case KindInvalidState:
		return "InvalidState"
	case KindRecovery:
		return "Recovery"
	default:
		return "Unknown"
	}
}

// PreCheckError is returned when a node rejects a transaction or a query
type PreCheckError struct {
	Code PreCheckCode
}

func (e *PreCheckError) Error() string {
	return fmt.Sprintf("precheck failed with code %s", e.Code)
}

// TransportError wraps a failure of the network collaborator while talking to
// a node
type TransportError struct {
	Node AccountID
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("node %s: %s: %v", e.Node, ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes every TransportError match ErrTransport
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// PreCheckCodeOf returns the precheck code carried by err, if any
func PreCheckCodeOf(err error) (PreCheckCode, bool) {
	var e *PreCheckError
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// KindOf returns the kind of the given error. Nil errors and errors not
// produced by this module are KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if _, ok := PreCheckCodeOf(err); ok {
		return KindPreCheck
	}
	switch {
	case errors.Is(err, ErrParse), errors.Is(err, identity.ErrInvalidKey):
		return KindParse
	case errors.Is(err, ErrMissingSignature):
		return KindMissingSignature
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, identity.ErrInvalidMnemonic):
		return KindRecovery
	}
	return KindUnknown
}

func parseError(what, input, format string) error {
	return fmt.Errorf("%w: invalid %s %q, expected %s", ErrParse, what, input, format)
}
