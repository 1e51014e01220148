package grpcserver

import (
	"context"
	"testing"
	"time"

	"arbor/api/wire"
	"arbor/domain/scoreboard"
	"arbor/infra/memory"
	"arbor/infra/sequence"
	"arbor/infra/wal"
	"arbor/service"
	"arbor/snapshot"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	w, err := wal.Open(wal.Config{
		Dir:             t.TempDir(),
		SegmentSize:     1 << 20,
		SegmentDuration: time.Hour,
	})
	if err != nil {
		t.Fatalf("open wal: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	svc := service.NewBoardService(
		scoreboard.NewBoard(),
		memory.NewPool(func() *scoreboard.Entry { return &scoreboard.Entry{} }),
		memory.NewRetireRing(1<<10),
		snapshot.NewReader(),
		sequence.New(0),
		w,
		nil,
	)
	return NewServer(svc)
}

func TestPutRankRemove(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	putResp, err := srv.Put(ctx, &wire.PutRequest{Member: "alice", Score: 300})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if putResp.Seq == 0 {
		t.Error("Put returned zero seq")
	}
	_, _ = srv.Put(ctx, &wire.PutRequest{Member: "bob", Score: 100})

	rankResp, err := srv.Rank(ctx, &wire.RankRequest{Member: "alice"})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if !rankResp.Found || rankResp.Rank != 0 || rankResp.Score != 300 {
		t.Errorf("Rank = %+v", rankResp)
	}

	rmResp, err := srv.Remove(ctx, &wire.RemoveRequest{Member: "alice"})
	if err != nil || !rmResp.Removed {
		t.Fatalf("Remove = %+v, %v", rmResp, err)
	}
	rankResp, _ = srv.Rank(ctx, &wire.RankRequest{Member: "alice"})
	if rankResp.Found {
		t.Error("Rank found removed member")
	}
}

func TestTopAndSnapshot(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, _ = srv.Put(ctx, &wire.PutRequest{Member: "alice", Score: 300})
	_, _ = srv.Put(ctx, &wire.PutRequest{Member: "bob", Score: 100})
	_, _ = srv.Put(ctx, &wire.PutRequest{Member: "carol", Score: 200})

	topResp, err := srv.Top(ctx, &wire.TopRequest{Limit: 2})
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(topResp.Entries) != 2 || topResp.Entries[0].Member != "alice" {
		t.Errorf("Top = %+v", topResp.Entries)
	}

	snapResp, err := srv.Snapshot(ctx, &wire.SnapshotRequest{})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snapResp.Entries) != 3 || snapResp.Seq == 0 {
		t.Errorf("Snapshot = %+v", snapResp)
	}
}

func TestTopClampsWireLimit(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, _ = srv.Put(ctx, &wire.PutRequest{Member: "alice", Score: 300})
	_, _ = srv.Put(ctx, &wire.PutRequest{Member: "bob", Score: 100})

	// A limit beyond the board size must be clamped, not converted to a
	// negative int: 1<<63 overflows int on 64-bit platforms.
	resp, err := srv.Top(ctx, &wire.TopRequest{Limit: 1 << 63})
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Errorf("Top(1<<63) = %d entries, want 2", len(resp.Entries))
	}

	resp, err = srv.Top(ctx, &wire.TopRequest{Limit: 0})
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(resp.Entries) != 0 {
		t.Errorf("Top(0) = %d entries, want 0", len(resp.Entries))
	}
}

func TestNeighborsAtBoundary(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	_, _ = srv.Put(ctx, &wire.PutRequest{Member: "alice", Score: 300})
	_, _ = srv.Put(ctx, &wire.PutRequest{Member: "bob", Score: 100})

	resp, err := srv.Neighbors(ctx, &wire.NeighborsRequest{Member: "alice"})
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if resp.Above != nil {
		t.Errorf("above best = %+v", resp.Above)
	}
	if resp.Below == nil || resp.Below.Member != "bob" {
		t.Errorf("below = %+v", resp.Below)
	}
}
