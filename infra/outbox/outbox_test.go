package outbox

import (
	"testing"
)

func openTestOutbox(t *testing.T) *Outbox {
	t.Helper()
	o, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = o.Close() })
	return o
}

func TestLifecycle(t *testing.T) {
	o := openTestOutbox(t)

	if err := o.PutNew(1, []byte("payload")); err != nil {
		t.Fatalf("PutNew: %v", err)
	}
	rec, err := o.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.State != StateNew || string(rec.Payload) != "payload" {
		t.Errorf("rec = %+v", rec)
	}

	if err := o.UpdateState(1, StateSent, 1); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}
	rec, _ = o.Get(1)
	if rec.State != StateSent || rec.Retries != 1 || rec.LastAttempt == 0 {
		t.Errorf("after send: %+v", rec)
	}
	if string(rec.Payload) != "payload" {
		t.Error("payload lost across state update")
	}
}

func TestScanByState(t *testing.T) {
	o := openTestOutbox(t)

	for seq := uint64(1); seq <= 5; seq++ {
		_ = o.PutNew(seq, []byte{byte(seq)})
	}
	_ = o.UpdateState(2, StateAcked, 1)
	_ = o.UpdateState(4, StateAcked, 1)

	var seqs []uint64
	err := o.ScanByState(StateNew, func(seq uint64, rec Record) error {
		seqs = append(seqs, seq)
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := []uint64{1, 3, 5}
	if len(seqs) != len(want) {
		t.Fatalf("seqs = %v", seqs)
	}
	for i := range want {
		if seqs[i] != want[i] {
			t.Fatalf("seqs = %v, want %v", seqs, want)
		}
	}
}

func TestTruncateAckedUpTo(t *testing.T) {
	o := openTestOutbox(t)

	for seq := uint64(1); seq <= 4; seq++ {
		_ = o.PutNew(seq, nil)
		_ = o.UpdateState(seq, StateAcked, 1)
	}
	_ = o.PutNew(5, nil) // still NEW

	if err := o.TruncateAckedUpTo(3); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	for _, seq := range []uint64{1, 2, 3} {
		if _, err := o.Get(seq); err == nil {
			t.Errorf("acked record %d survived truncation", seq)
		}
	}
	if _, err := o.Get(4); err != nil {
		t.Error("record 4 above the limit was deleted")
	}
	if _, err := o.Get(5); err != nil {
		t.Error("unacked record 5 was deleted")
	}
}
