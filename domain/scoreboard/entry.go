package scoreboard

type Status int

const (
	Active Status = iota
	Retired
)

// Entry is a pure domain entity: one member's position on the board.
// Entries are pooled by the caller and retired through the epoch ring,
// never freed in place.
type Entry struct {
	Member string
	Score  int64
	SeqID  uint64
	Status Status
}

// after orders entries ascending by score; member name breaks ties so
// the order is strictly total.
func after(a, b *Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Member > b.Member
}

func same(a, b *Entry) bool {
	return a.Score == b.Score && a.Member == b.Member
}
