package snapshot

import (
	"encoding/gob"
	"os"

	"arbor/domain/scoreboard"
	"arbor/infra/memory"
)

// Load restores the board from a snapshot file. A missing file is not
// an error: the board simply starts empty and WAL replay fills it.
func Load(
	path string,
	board *scoreboard.Board,
	pool *memory.Pool[scoreboard.Entry],
) (uint64, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return 0, nil // snapshot optional
	}
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return 0, err
	}

	for _, be := range s.Entries {
		e := pool.Get()
		*e = scoreboard.Entry{
			Member: be.Member,
			Score:  be.Score,
			SeqID:  be.SeqID,
			Status: scoreboard.Active,
		}
		if _, err := board.Put(e); err != nil {
			return 0, err
		}
	}

	return s.Seq, nil
}
