package service

import (
	"sync"

	"arbor/api/wire"
	"arbor/domain/scoreboard"
	"arbor/infra/memory"
	"arbor/infra/outbox"
	"arbor/infra/sequence"
	"arbor/infra/wal"
	"arbor/snapshot"
)

/*
BoardService is the only write entry point into the system.

All coordination between:
- domain (scoreboard)
- infra (memory, wal, outbox)
- snapshot
happens here.
*/

type BoardService struct {
	// mu serializes board mutations against each other and against
	// tree-walking queries; the gRPC layer runs each call on its own
	// goroutine. Reader epochs guard reclamation only.
	mu sync.RWMutex

	board  *scoreboard.Board
	pool   *memory.Pool[scoreboard.Entry]
	ring   *memory.RetireRing
	reader *snapshot.Reader
	seqGen *sequence.Sequencer
	wal    *wal.WAL
	outbox *outbox.Outbox
}

// NewBoardService wires all dependencies. No globals.
func NewBoardService(
	board *scoreboard.Board,
	pool *memory.Pool[scoreboard.Entry],
	ring *memory.RetireRing,
	reader *snapshot.Reader,
	seqGen *sequence.Sequencer,
	w *wal.WAL,
	ob *outbox.Outbox,
) *BoardService {
	return &BoardService{
		board:  board,
		pool:   pool,
		ring:   ring,
		reader: reader,
		seqGen: seqGen,
		wal:    w,
		outbox: ob,
	}
}

//
// Commands
//

// Put records member's score. It returns the assigned sequence number.
// An existing score for the member is displaced and retired.
func (s *BoardService) Put(member string, score int64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seqGen.Next()

	mut := wire.Mutation{Op: wire.OpPut, Member: member, Score: score}
	payload := mut.MarshalWire()

	// WAL intent first, then the in-memory apply
	if err := s.wal.Append(wal.NewRecord(wal.RecordPut, seq, payload)); err != nil {
		return 0, err
	}

	e := s.pool.Get()
	*e = scoreboard.Entry{
		Member: member,
		Score:  score,
		SeqID:  seq,
		Status: scoreboard.Active,
	}
	displaced, err := s.board.Put(e)
	if err != nil {
		s.pool.Put(e)
		return 0, err
	}
	if displaced != nil {
		s.retire(displaced)
	}

	if s.outbox != nil {
		_ = s.outbox.PutNew(seq, payload)
	}
	return seq, nil
}

// Remove takes member off the board. It reports whether anything was
// removed; removing an absent member is not an error.
func (s *BoardService) Remove(member string) (bool, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.board.Get(member) == nil {
		return false, 0, nil
	}
	seq := s.seqGen.Next()

	mut := wire.Mutation{Op: wire.OpRemove, Member: member}
	payload := mut.MarshalWire()

	if err := s.wal.Append(wal.NewRecord(wal.RecordRemove, seq, payload)); err != nil {
		return false, 0, err
	}

	if e := s.board.Remove(member); e != nil {
		s.retire(e)
	}
	if s.outbox != nil {
		_ = s.outbox.PutNew(seq, payload)
	}
	return true, seq, nil
}

//
// Queries
//

// Rank returns member's zero-based rank from the top and its score.
func (s *BoardService) Rank(member string) (rank int, score int64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e := s.board.Get(member)
	if e == nil {
		return -1, 0, false
	}
	return s.board.Rank(member), e.Score, true
}

// Top returns up to n entries, best first. Caller must treat the
// returned entries as read-only.
func (s *BoardService) Top(n int) []*scoreboard.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.reader.Begin()
	defer s.reader.End()
	return s.board.Top(n)
}

// Neighbors returns the entries directly above and below member.
func (s *BoardService) Neighbors(member string) (above, below *scoreboard.Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.reader.Begin()
	defer s.reader.End()
	return s.board.Neighbors(member)
}

// Snapshot returns a consistent view of all active entries, best
// first. Caller must treat returned entries as read-only.
func (s *BoardService) Snapshot() []*scoreboard.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.reader.Begin()
	defer s.reader.End()

	out := make([]*scoreboard.Entry, 0, s.board.Len())
	s.board.WalkDesc(func(e *scoreboard.Entry) bool {
		if e.Status == scoreboard.Active {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Seq returns the last issued sequence number.
func (s *BoardService) Seq() uint64 {
	return s.seqGen.Current()
}

// Len returns the number of members on the board.
func (s *BoardService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Len()
}

//
// Reclamation
//

// AdvanceEpoch performs safe reclamation. Intended to be called
// periodically by a background job.
func (s *BoardService) AdvanceEpoch() {
	memory.AdvanceEpochAndReclaim(
		s.ring,
		s.pool,
		s.reader.Epoch(),
	)
}

func (s *BoardService) retire(e *scoreboard.Entry) {
	e.Status = scoreboard.Retired
	_ = s.ring.Enqueue(e)
}
