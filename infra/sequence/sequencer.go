package sequence

import "sync/atomic"

// Sequencer generates strictly monotonic sequence IDs for board
// mutations. It is deterministic and replay-safe.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer starting from a given value: 0 on a fresh
// start, or the last replayed sequence after WAL replay.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next global sequence ID.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}

// Reset sets the sequencer to a specific value. Only used after
// replay.
func (s *Sequencer) Reset(v uint64) {
	s.next.Store(v)
}
