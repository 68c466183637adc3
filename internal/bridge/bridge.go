// Package bridge exposes identity and protocol objects to foreign callers
// through opaque handles.
//
// Creating an object hands its ownership to the caller. Mutators borrow the
// object for the duration of the call and give it back. Terminal calls, like
// executing a transaction or freeing an object, take the ownership back and
// invalidate the handle. Every call reports its outcome as a Status and never
// panics: misuse of handles is reported as StatusInvalidState.
package bridge

import (
	"context"
	"fmt"

	"github.com/hederacore/hedera-core/pkg/client"
	"github.com/hederacore/hedera-core/pkg/ledger"
)

// Bridge owns the objects handed to foreign callers
type Bridge struct {
	handles *Registry
	dial    func(context.Context, client.Opts) (*client.Client, error)
}

// New returns a Bridge connecting clients to the network through gRPC
func New() *Bridge {
	return &Bridge{
		handles: NewRegistry(),
		dial:    client.Dial,
	}
}

// Len returns the number of objects currently owned by foreign callers
func (b *Bridge) Len() int {
	return b.handles.Len()
}

// borrow checks out the object of the handle for the duration of fn
func borrow[T any](b *Bridge, h Handle, fn func(T) error) error {
	v, err := b.handles.Take(h)
	if err != nil {
		return err
	}
	defer b.handles.Return(h)

	obj, ok := v.(T)
	if !ok {
		return wrongType[T](v)
	}
	return fn(obj)
}

// consume takes the ownership of the object back and frees the handle. The
// handle is left untouched if it refers to an object of another type.
func consume[T any](b *Bridge, h Handle) (T, error) {
	var zero T

	v, err := b.handles.Take(h)
	if err != nil {
		return zero, err
	}
	obj, ok := v.(T)
	if err := b.handles.Return(h); err != nil {
		return zero, err
	}
	if !ok {
		return zero, wrongType[T](v)
	}
	if _, err := b.handles.Release(h); err != nil {
		return zero, err
	}
	return obj, nil
}

func wrongType[T any](v interface{}) error {
	var want T
	return fmt.Errorf(
		"%w: handle refers to %T, expected %T", ledger.ErrInvalidState, v, want,
	)
}
