package scoreboard

import (
	"fmt"

	"arbor/domain/sortedset"
)

// Board ranks entries by score. The sorted set gives neighbor and rank
// queries; the member index gives O(1) lookup by name.
type Board struct {
	ranks   *sortedset.Set[*Entry]
	members map[string]*Entry
}

func NewBoard() *Board {
	ranks, err := sortedset.New(after, same)
	if err != nil {
		panic(fmt.Errorf("scoreboard: %w", err))
	}
	return &Board{
		ranks:   ranks,
		members: make(map[string]*Entry),
	}
}

func (b *Board) Len() int { return b.ranks.Len() }

// Get returns the live entry for member, or nil.
func (b *Board) Get(member string) *Entry {
	return b.members[member]
}

// Put places e on the board. If the member already has an entry it is
// displaced and returned so the caller can retire it.
func (b *Board) Put(e *Entry) (*Entry, error) {
	displaced := b.members[e.Member]
	if displaced != nil {
		b.ranks.Delete(displaced)
	}
	if err := b.ranks.Insert(e); err != nil {
		// (score, member) collides with another live entry; restore
		if displaced != nil {
			_ = b.ranks.Insert(displaced)
		}
		return nil, err
	}
	b.members[e.Member] = e
	return displaced, nil
}

// Remove takes member off the board and returns its entry for
// retirement, or nil when absent.
func (b *Board) Remove(member string) *Entry {
	e := b.members[member]
	if e == nil {
		return nil
	}
	b.ranks.Delete(e)
	delete(b.members, member)
	return e
}

// Rank returns the zero-based rank from the top (highest score), or -1
// when the member is absent.
func (b *Board) Rank(member string) int {
	e := b.members[member]
	if e == nil {
		return -1
	}
	idx := b.ranks.IndexOf(e)
	if idx < 0 {
		return -1
	}
	return b.ranks.Len() - 1 - idx
}

// Top returns up to n entries, best first. n <= 0 yields nil.
func (b *Board) Top(n int) []*Entry {
	if n <= 0 {
		return nil
	}
	out := make([]*Entry, 0, n)
	b.ranks.Descend(func(e *Entry) bool {
		out = append(out, e)
		return len(out) < n
	})
	return out
}

// Best returns the highest-scored entry, or nil when empty.
func (b *Board) Best() *Entry {
	e, ok := b.ranks.Max()
	if !ok {
		return nil
	}
	return e
}

// Worst returns the lowest-scored entry, or nil when empty.
func (b *Board) Worst() *Entry {
	e, ok := b.ranks.Min()
	if !ok {
		return nil
	}
	return e
}

// Neighbors returns the entries ranked directly above and below member
// by score. Either may be nil at a boundary or when member is absent.
func (b *Board) Neighbors(member string) (above, below *Entry) {
	e := b.members[member]
	if e == nil {
		return nil, nil
	}
	if n, ok := b.ranks.Successor(e); ok {
		above = n
	}
	if p, ok := b.ranks.Predecessor(e); ok {
		below = p
	}
	return above, below
}

// WalkAsc visits entries from worst to best. Returning false stops the
// walk early.
func (b *Board) WalkAsc(fn func(*Entry) bool) {
	b.ranks.Ascend(fn)
}

// WalkDesc visits entries from best to worst.
func (b *Board) WalkDesc(fn func(*Entry) bool) {
	b.ranks.Descend(fn)
}

// Clear drops every entry. Used by snapshot load before a rebuild.
func (b *Board) Clear() {
	b.ranks.Clear()
	b.members = make(map[string]*Entry)
}
