package snapshot

import "arbor/infra/memory"

// Reader is a thin adapter over memory.ReaderEpoch marking when a
// consistent read of the board begins and ends. Epoching and
// reclamation live elsewhere.
type Reader struct {
	epoch *memory.ReaderEpoch
}

func NewReader() *Reader {
	return &Reader{
		epoch: &memory.ReaderEpoch{},
	}
}

// Begin marks the start of a consistent snapshot.
func (r *Reader) Begin() {
	r.epoch.Enter()
}

// End marks the end of a snapshot.
func (r *Reader) End() {
	r.epoch.Exit()
}

// Epoch exposes the underlying epoch for reclaimers.
func (r *Reader) Epoch() *memory.ReaderEpoch {
	return r.epoch
}
