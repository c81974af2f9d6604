package engine

import (
	"fmt"
	"sync/atomic"
)

// seqOrigin is the first sequence number ever issued.
const seqOrigin = 1

// Sequence issues globally unique, monotonically increasing order
// identifiers. Each processor owns its own instance; there is no implicit
// process-wide counter. Construct with NewSequence.
type Sequence struct {
	next atomic.Uint64
}

// NewSequence creates a generator starting at the origin.
func NewSequence() *Sequence {
	s := &Sequence{}
	s.next.Store(seqOrigin)
	return s
}

// Next returns the next identifier together with its numeric arrival
// sequence. No two calls ever return the same value within a process.
func (s *Sequence) Next() (id string, seq uint64) {
	seq = s.next.Add(1) - 1
	return FormatOrderID(seq), seq
}

// Reset rewinds the generator to its origin. Administrative operation only
// (tests and simulation setup); never invoked implicitly.
func (s *Sequence) Reset() {
	s.next.Store(seqOrigin)
}

// FormatOrderID renders a sequence number as a fixed-width, zero-padded
// order id, so lexicographic order agrees with numeric order.
func FormatOrderID(seq uint64) string {
	return fmt.Sprintf("%08d", seq)
}
