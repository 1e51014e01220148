package memory

import "testing"

func TestRetireRingFIFO(t *testing.T) {
	r := NewRetireRing(4)
	for i := 0; i < 4; i++ {
		if !r.Enqueue(i) {
			t.Fatalf("Enqueue(%d) = false", i)
		}
	}
	if r.Enqueue(4) {
		t.Error("Enqueue into full ring = true")
	}
	for i := 0; i < 4; i++ {
		if got := r.Dequeue(); got != i {
			t.Fatalf("Dequeue = %v, want %d", got, i)
		}
	}
	if r.Dequeue() != nil {
		t.Error("Dequeue from empty ring != nil")
	}
}

func TestRetireRingSizeMustBePowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non power-of-two size")
		}
	}()
	NewRetireRing(6)
}

func TestReclaimRespectsPinnedReader(t *testing.T) {
	type obj struct{ n int }
	pool := NewPool(func() *obj { return &obj{} })
	ring := NewRetireRing(8)
	reader := &ReaderEpoch{}

	reader.Enter()
	_ = ring.Enqueue(&obj{n: 1})
	AdvanceEpochAndReclaim(ring, pool, reader)
	if ring.Dequeue() == nil {
		t.Fatal("object reclaimed while reader pinned")
	}

	_ = ring.Enqueue(&obj{n: 2})
	reader.Exit()
	AdvanceEpochAndReclaim(ring, pool, reader)
	if ring.Dequeue() != nil {
		t.Fatal("object not reclaimed after reader exit")
	}
}
