package sortedset

import (
	"errors"
	"testing"
)

func TestNewRejectsNilPredicates(t *testing.T) {
	if _, err := New[int](nil, func(a, b int) bool { return a == b }); !errors.Is(err, ErrInvalidComparator) {
		t.Errorf("nil comparator: err = %v", err)
	}
	if _, err := New[int](func(a, b int) bool { return a > b }, nil); !errors.Is(err, ErrInvalidComparator) {
		t.Errorf("nil equality: err = %v", err)
	}
}

func TestInsertFindDelete(t *testing.T) {
	s := newIntSet(t)
	if err := s.Insert(100); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !s.Has(100) {
		t.Error("Has(100) = false after insert")
	}
	if v, ok := s.FindEqual(100); !ok || v != 100 {
		t.Errorf("FindEqual(100) = %v, %v", v, ok)
	}

	_ = s.Insert(200)
	if v, _ := s.Min(); v != 100 {
		t.Errorf("Min = %v, want 100", v)
	}
	if v, _ := s.Max(); v != 200 {
		t.Errorf("Max = %v, want 200", v)
	}

	if !s.Delete(100) {
		t.Error("Delete(100) = false")
	}
	if s.Has(100) {
		t.Error("Has(100) = true after delete")
	}
	if _, ok := s.FindEqual(100); ok {
		t.Error("FindEqual(100) found deleted value")
	}
}

func TestInsertDuplicateFails(t *testing.T) {
	s := newIntSet(t)
	_ = s.Insert(150)
	if err := s.Insert(150); !errors.Is(err, ErrDuplicateValue) {
		t.Errorf("duplicate insert: err = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d after rejected duplicate", s.Len())
	}
}

// Two distinct values that the predicate treats as equal must also be
// rejected, even though they are different map keys.
func TestInsertPredicateEqualFails(t *testing.T) {
	type scored struct {
		id    int
		score int
	}
	s, err := New(
		func(a, b scored) bool { return a.score > b.score },
		func(a, b scored) bool { return a.score == b.score },
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = s.Insert(scored{id: 1, score: 10})
	if err := s.Insert(scored{id: 2, score: 10}); !errors.Is(err, ErrDuplicateValue) {
		t.Errorf("predicate-equal insert: err = %v", err)
	}

	// identity lookups only match the exact stored value
	if s.Has(scored{id: 2, score: 10}) {
		t.Error("Has matched a merely predicate-equal value")
	}
	if !s.Has(scored{id: 1, score: 10}) {
		t.Error("Has missed the stored value")
	}
	if v, ok := s.FindEqual(scored{id: 2, score: 10}); !ok || v.id != 1 {
		t.Errorf("FindEqual = %v, %v", v, ok)
	}
}

func TestDeleteAbsentIsNoop(t *testing.T) {
	s := newIntSet(t)
	if s.Delete(123) {
		t.Error("Delete on empty set = true")
	}
	_ = s.Insert(1)
	if s.Delete(2) {
		t.Error("Delete(2) = true for absent value")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestEmptySetQueries(t *testing.T) {
	s := newIntSet(t)
	if _, ok := s.Min(); ok {
		t.Error("Min on empty set")
	}
	if _, ok := s.Max(); ok {
		t.Error("Max on empty set")
	}
	if _, ok := s.Successor(5); ok {
		t.Error("Successor on empty set")
	}
	if _, ok := s.Predecessor(5); ok {
		t.Error("Predecessor on empty set")
	}
	if got := s.Values(); len(got) != 0 {
		t.Errorf("Values = %v", got)
	}
}

func TestSingleValueLifecycle(t *testing.T) {
	s := newIntSet(t)
	_ = s.Insert(42)
	if !s.Delete(42) {
		t.Fatal("Delete(42) = false")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d", s.Len())
	}
	if _, ok := s.Min(); ok {
		t.Error("Min cached after emptying")
	}
	validate(t, s)
}

func TestSuccessorPredecessor(t *testing.T) {
	s := newIntSet(t)
	for _, v := range []int{10, 20, 30} {
		_ = s.Insert(v)
	}

	if v, ok := s.Successor(10); !ok || v != 20 {
		t.Errorf("Successor(10) = %v, %v", v, ok)
	}
	if v, ok := s.Predecessor(30); !ok || v != 20 {
		t.Errorf("Predecessor(30) = %v, %v", v, ok)
	}
	if _, ok := s.Successor(30); ok {
		t.Error("Successor(30) should be none")
	}
	if _, ok := s.Predecessor(10); ok {
		t.Error("Predecessor(10) should be none")
	}

	// absent values take the virtual insertion walk
	if v, ok := s.Successor(15); !ok || v != 20 {
		t.Errorf("Successor(15) = %v, %v", v, ok)
	}
	if v, ok := s.Predecessor(15); !ok || v != 10 {
		t.Errorf("Predecessor(15) = %v, %v", v, ok)
	}
	if v, ok := s.Successor(5); !ok || v != 10 {
		t.Errorf("Successor(5) = %v, %v", v, ok)
	}
	if v, ok := s.Predecessor(35); !ok || v != 30 {
		t.Errorf("Predecessor(35) = %v, %v", v, ok)
	}
}

func TestIndexOf(t *testing.T) {
	s := newIntSet(t)
	for _, v := range []int{30, 10, 50, 20, 40} {
		_ = s.Insert(v)
	}
	for i, v := range []int{10, 20, 30, 40, 50} {
		if got := s.IndexOf(v); got != i {
			t.Errorf("IndexOf(%d) = %d, want %d", v, got, i)
		}
	}
	if got := s.IndexOf(25); got != -1 {
		t.Errorf("IndexOf(25) = %d, want -1", got)
	}
}

func TestForEach(t *testing.T) {
	s := newIntSet(t)
	for _, v := range []int{3, 1, 2} {
		_ = s.Insert(v)
	}
	var got []int
	if err := s.ForEach(func(v int) { got = append(got, v) }); err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	for i, want := range []int{1, 2, 3} {
		if got[i] != want {
			t.Fatalf("ForEach order = %v", got)
		}
	}
	if err := s.ForEach(nil); !errors.Is(err, ErrInvalidCallback) {
		t.Errorf("ForEach(nil): err = %v", err)
	}
}

func TestAscendDescendEarlyStop(t *testing.T) {
	s := newIntSet(t)
	for i := 1; i <= 10; i++ {
		_ = s.Insert(i)
	}
	seen := 0
	s.Ascend(func(v int) bool {
		seen++
		return v < 3
	})
	if seen != 3 {
		t.Errorf("Ascend visited %d values, want 3", seen)
	}
	var desc []int
	s.Descend(func(v int) bool {
		desc = append(desc, v)
		return len(desc) < 2
	})
	if len(desc) != 2 || desc[0] != 10 || desc[1] != 9 {
		t.Errorf("Descend = %v", desc)
	}
}

func TestClear(t *testing.T) {
	s := newIntSet(t)
	for i := 0; i < 10; i++ {
		_ = s.Insert(i)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len = %d after Clear", s.Len())
	}
	if s.Has(5) {
		t.Error("Has(5) after Clear")
	}
	validate(t, s)

	// the set must remain usable
	if err := s.Insert(7); err != nil {
		t.Fatalf("Insert after Clear: %v", err)
	}
	if v, _ := s.Min(); v != 7 {
		t.Errorf("Min = %v after reuse", v)
	}
}

func TestMinMaxTrackDeletes(t *testing.T) {
	s := newIntSet(t)
	for _, v := range []int{5, 1, 9, 3, 7} {
		_ = s.Insert(v)
	}
	s.Delete(1)
	if v, _ := s.Min(); v != 3 {
		t.Errorf("Min = %v after deleting old min", v)
	}
	s.Delete(9)
	if v, _ := s.Max(); v != 7 {
		t.Errorf("Max = %v after deleting old max", v)
	}
	// deleting a non-extreme leaves the cache alone
	s.Delete(5)
	if v, _ := s.Min(); v != 3 {
		t.Errorf("Min = %v", v)
	}
	if v, _ := s.Max(); v != 7 {
		t.Errorf("Max = %v", v)
	}
	validate(t, s)
}
