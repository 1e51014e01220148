package snapshot

import "time"

type Snapshot struct {
	Seq     uint64
	Created time.Time
	Entries []BoardEntry
}

type BoardEntry struct {
	Member string
	Score  int64
	SeqID  uint64
}
