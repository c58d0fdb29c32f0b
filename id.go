package waterfall

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces the IDs attached to step activations.
type IDGenerator interface {
	ID() uuid.UUID
}

// RandomID generates random (version 4) UUIDs. It is the default generator.
type RandomID struct{}

// ID returns a new random UUID.
func (RandomID) ID() uuid.UUID { return uuid.New() }

// StaticID generates sequential UUIDs starting at
// 00000000-0000-0000-0000-000000000001. Useful in tests.
type StaticID struct {
	n atomic.Uint64
}

// ID returns the next sequential UUID.
func (s *StaticID) ID() uuid.UUID {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], s.n.Add(1))
	return id
}

var (
	genMu sync.RWMutex
	gen   IDGenerator = RandomID{}
)

// SetIDGenerator replaces the generator used by [NewID]. A nil generator
// restores the default.
func SetIDGenerator(g IDGenerator) {
	if g == nil {
		g = RandomID{}
	}
	genMu.Lock()
	gen = g
	genMu.Unlock()
}

// NewID returns an ID from the current generator.
func NewID() uuid.UUID {
	genMu.RLock()
	g := gen
	genMu.RUnlock()
	return g.ID()
}
