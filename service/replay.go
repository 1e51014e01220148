package service

import (
	"fmt"
	"log"

	"arbor/api/wire"
	"arbor/domain/scoreboard"
	"arbor/infra/memory"
	"arbor/infra/sequence"
	"arbor/infra/wal"
)

/*
ReplayFromWAL rebuilds in-memory state from the entry WAL.

IMPORTANT:
- This MUST run before accepting traffic
- The outbox is NOT replayed
*/

func ReplayFromWAL(
	walDir string,
	board *scoreboard.Board,
	pool *memory.Pool[scoreboard.Entry],
	seqGen *sequence.Sequencer,
) error {
	lastSeq, err := wal.Replay(walDir, func(rec *wal.Record) error {
		var mut wire.Mutation
		if err := mut.UnmarshalWire(rec.Data); err != nil {
			return fmt.Errorf("decode record %d: %w", rec.Seq, err)
		}

		switch mut.Op {
		case wire.OpPut:
			e := pool.Get()
			*e = scoreboard.Entry{
				Member: mut.Member,
				Score:  mut.Score,
				SeqID:  rec.Seq,
				Status: scoreboard.Active,
			}
			displaced, err := board.Put(e)
			if err != nil {
				return err
			}
			if displaced != nil {
				pool.Put(displaced)
			}
		case wire.OpRemove:
			if e := board.Remove(mut.Member); e != nil {
				pool.Put(e)
			}
		default:
			return fmt.Errorf("unknown op %d at seq %d", mut.Op, rec.Seq)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Resume sequencing AFTER replay
	if lastSeq > seqGen.Current() {
		seqGen.Reset(lastSeq)
	}

	log.Printf("WAL replay completed (last seq = %d, members = %d)", lastSeq, board.Len())
	return nil
}
