package snapshot

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"arbor/domain/scoreboard"
)

type Writer struct {
	Dir string
}

// Write persists all active entries on the board. The caller is
// responsible for pinning a reader epoch around the walk.
func (w *Writer) Write(seq uint64, board *scoreboard.Board) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(w.Dir, "snapshot.bin")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s := Snapshot{
		Seq:     seq,
		Created: time.Now(),
		Entries: make([]BoardEntry, 0, board.Len()),
	}

	board.WalkDesc(func(e *scoreboard.Entry) bool {
		if e.Status == scoreboard.Active {
			s.Entries = append(s.Entries, BoardEntry{
				Member: e.Member,
				Score:  e.Score,
				SeqID:  e.SeqID,
			})
		}
		return true
	})

	return gob.NewEncoder(f).Encode(&s)
}
