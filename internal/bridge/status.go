package bridge

import (
	"errors"

	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
	log "github.com/sirupsen/logrus"
)

// Status is the outcome of a bridge call. Zero is success, otherwise the low
// byte is the kind of error and, for StatusPreCheck, the network precheck
// code sits in the remaining bits.
type Status uint64

const (
	StatusOK Status = iota
	StatusParse
	StatusPreCheck
	StatusMissingSignature
	StatusTransport
	StatusInvalidState
	StatusRecovery
	// StatusInternal reports a bug of the bridge itself, like a recovered
	// panic
	StatusInternal
)

const kindMask = 0xff

// StatusOf maps an error to its status
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	if code, ok := ledger.PreCheckCodeOf(err); ok {
		return StatusPreCheck | Status(uint32(code))<<8
	}

	switch ledger.KindOf(err) {
	case ledger.KindParse:
		return StatusParse
	case ledger.KindMissingSignature:
		return StatusMissingSignature
	case ledger.KindTransport:
		return StatusTransport
	case ledger.KindInvalidState:
		return StatusInvalidState
	case ledger.KindRecovery:
		return StatusRecovery
	}

	switch {
	case errors.Is(err, identity.ErrWrongPassphrase),
		errors.Is(err, identity.ErrInvalidCypherText):
		return StatusRecovery
	case errors.Is(err, identity.ErrNullPassphrase),
		errors.Is(err, identity.ErrNullCypherText):
		return StatusInvalidState
	}
	return StatusInternal
}

// statusOr is StatusOf, with errors of unknown kind reported as fallback
func statusOr(err error, fallback Status) Status {
	if s := StatusOf(err); s != StatusInternal {
		return s
	}
	return fallback
}

// Kind returns the status without the precheck code
func (s Status) Kind() Status {
	return s & kindMask
}

// PreCheckCode returns the network code of a StatusPreCheck
func (s Status) PreCheckCode() (ledger.PreCheckCode, bool) {
	if s.Kind() != StatusPreCheck {
		return 0, false
	}
	return ledger.PreCheckCode(int32(uint32(s >> 8))), true
}

func (s Status) String() string {
	switch s.Kind() {
	case StatusOK:
		return "OK"
	case StatusParse:
		return "Parse"
	case StatusPreCheck:
		code, _ := s.PreCheckCode()
		return "PreCheck(" + code.String() + ")"
	case StatusMissingSignature:
		return "MissingSignature"
	case StatusTransport:
		return "Transport"
	case StatusInvalidState:
		return "InvalidState"
	case StatusRecovery:
		return "Recovery"
	default:
		return "Internal"
	}
}

// guard turns a panic of the calling op into StatusInternal. It must be
// deferred directly.
func guard(op string, status *Status) {
	if r := recover(); r != nil {
		log.WithField("op", op).Errorf("recovered from panic: %v", r)
		*status = StatusInternal
	}
}
