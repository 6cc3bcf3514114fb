package testutil

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"
)

// SequentialIDs generates record ids 00000000-0000-0000-0000-000000000001,
// ...0002 and so on.
//
// This enables deterministic test execution and golden snapshot comparison:
// the same scenario with a fresh SequentialIDs produces byte-identical
// records.
//
// Thread-safety: NewID is safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu   sync.Mutex
	next uint64
}

// NewSequentialIDs creates a generator whose first id ends in 1.
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{}
}

// NewID returns the next id.
//
// Implements record.IDGenerator interface.
func (g *SequentialIDs) NewID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return SeqID(g.next)
}

// SeqID returns the n-th id SequentialIDs would generate.
func SeqID(n uint64) uuid.UUID {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], n)
	return id
}
