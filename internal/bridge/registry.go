package bridge

import (
	"fmt"
	"sync"

	"github.com/hederacore/hedera-core/pkg/ledger"
	log "github.com/sirupsen/logrus"
)

// Handle is the opaque token a foreign caller holds in place of an object.
// The low 32 bits are the slot index plus one, the high 32 bits the slot
// generation. The zero Handle is null.
type Handle uint64

func newHandle(index int, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index+1))
}

func (h Handle) index() int {
	return int(uint32(h)) - 1
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32)
}

type slotState int

const (
	slotFree slotState = iota
	// the caller owns the object
	slotOwned
	// the object is being used by the bridge on behalf of the caller
	slotCheckedOut
)

type slot struct {
	value      interface{}
	generation uint32
	state      slotState
}

// Registry is the arena of objects owned by foreign callers. Freed slots are
// reused with a new generation, so that handles to freed objects are detected
// instead of aliasing a newer object.
type Registry struct {
	lock  sync.Mutex
	slots []slot
	free  []int
	live  int
}

// NewRegistry ...
func NewRegistry() *Registry {
	return &Registry{}
}

// Put stores the object and hands its ownership to the caller
func (r *Registry) Put(v interface{}) Handle {
	r.lock.Lock()
	defer r.lock.Unlock()

	var index int
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		index = len(r.slots) - 1
	}

	s := &r.slots[index]
	s.generation++
	s.value = v
	s.state = slotOwned
	r.live++

	return newHandle(index, s.generation)
}

// Take checks out the object for exclusive use by the bridge. The handle must
// be given back with Return before being used again.
func (r *Registry) Take(h Handle) (interface{}, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	s, err := r.lookup(h, "take")
	if err != nil {
		return nil, err
	}
	s.state = slotCheckedOut
	return s.value, nil
}

// Peek runs fn on the object without checking it out, so that any number of
// callers can read it at once. fn runs under the registry lock and must not
// call back into the registry.
func (r *Registry) Peek(h Handle, fn func(interface{}) error) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	s, err := r.slot(h, "peek")
	if err != nil {
		return err
	}
	return fn(s.value)
}

// Return gives the ownership of a checked out object back to the caller
func (r *Registry) Return(h Handle) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	s, err := r.slot(h, "return")
	if err != nil {
		return err
	}
	if s.state != slotCheckedOut {
		return r.violation(h, "return", "handle is not checked out")
	}
	s.state = slotOwned
	return nil
}

// Release takes the ownership of the object back from the caller and frees
// the handle, which must not be used afterwards
func (r *Registry) Release(h Handle) (interface{}, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	s, err := r.lookup(h, "release")
	if err != nil {
		return nil, err
	}

	v := s.value
	s.value = nil
	s.state = slotFree
	r.free = append(r.free, h.index())
	r.live--
	return v, nil
}

// Len returns the number of objects currently owned by callers
func (r *Registry) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.live
}

// lookup returns the slot of a handle owned by the caller
func (r *Registry) lookup(h Handle, op string) (*slot, error) {
	s, err := r.slot(h, op)
	if err != nil {
		return nil, err
	}
	if s.state == slotCheckedOut {
		return nil, r.violation(h, op, "handle is already in use")
	}
	return s, nil
}

func (r *Registry) slot(h Handle, op string) (*slot, error) {
	if h == 0 {
		return nil, r.violation(h, op, "null handle")
	}
	i := h.index()
	if i < 0 || i >= len(r.slots) {
		return nil, r.violation(h, op, "unknown handle")
	}
	s := &r.slots[i]
	if s.state == slotFree || s.generation != h.generation() {
		return nil, r.violation(h, op, "handle already released")
	}
	return s, nil
}

func (r *Registry) violation(h Handle, op, reason string) error {
	log.WithFields(log.Fields{
		"handle": fmt.Sprintf("%#x", uint64(h)),
		"op":     op,
	}).Error(reason)
	return fmt.Errorf("%w: %s", ledger.ErrInvalidState, reason)
}
