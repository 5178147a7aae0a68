// Package idgen produces booking identifiers of the form "PKR-<n>" with
// 0 <= n < 100000, the shape used by existing ledger files.
//
// A Sequence starts at a random offset and then counts upwards, wrapping at
// Space. Within one process no identifier repeats until Space identifiers
// have been issued. Identifiers from different processes (or from ledgers
// written before a restart) can still coincide, so the ledger re-checks
// uniqueness when a booking is persisted.
package idgen

import (
	"encoding/binary"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	// Prefix starts every booking identifier.
	Prefix = "PKR-"

	// Space is the number of distinct identifiers.
	Space = 100000
)

// Sequence is a monotonic identifier source. Safe for concurrent use.
type Sequence struct {
	start uint64
	n     atomic.Uint64
}

// New returns a Sequence whose starting offset is taken from a random (v4) UUID.
func New() *Sequence {
	u := uuid.New()
	return NewAt(binary.BigEndian.Uint64(u[8:]))
}

// NewAt returns a Sequence whose first identifier is PKR-<start mod Space>.
func NewAt(start uint64) *Sequence {
	return &Sequence{start: start % Space}
}

// Next returns the next identifier.
func (s *Sequence) Next() string {
	n := s.n.Add(1) - 1
	return Prefix + strconv.FormatUint((s.start+n)%Space, 10)
}
