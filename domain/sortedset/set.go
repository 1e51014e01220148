package sortedset

import "errors"

var (
	// ErrInvalidComparator is returned by New when either predicate is nil.
	ErrInvalidComparator = errors.New("sortedset: comparator must not be nil")

	// ErrInvalidCallback is returned by ForEach when the callback is nil.
	ErrInvalidCallback = errors.New("sortedset: callback must not be nil")

	// ErrDuplicateValue is returned by Insert when a value equal to the
	// argument, by identity or by the equality predicate, is already stored.
	ErrDuplicateValue = errors.New("sortedset: value already present")
)

// Set is an ordered set of T. bigger(a, b) reports whether a orders
// strictly after b; equal is the caller's equality predicate. Both are
// required and must agree: equal(a, b) exactly when neither orders
// after the other.
type Set[T comparable] struct {
	root *node[T]
	nil  *node[T] // sentinel (black)

	bigger func(a, b T) bool
	equal  func(a, b T) bool

	index map[T]*node[T]
	size  int

	// cached extremes, maintained incrementally
	min *node[T]
	max *node[T]
}

// New constructs an empty set ordered by the given predicates.
func New[T comparable](bigger, equal func(a, b T) bool) (*Set[T], error) {
	if bigger == nil || equal == nil {
		return nil, ErrInvalidComparator
	}
	sentinel := &node[T]{color: black}
	return &Set[T]{
		root:   sentinel,
		nil:    sentinel,
		bigger: bigger,
		equal:  equal,
		index:  make(map[T]*node[T]),
		min:    sentinel,
		max:    sentinel,
	}, nil
}

// Len returns the number of values currently stored.
func (s *Set[T]) Len() int { return s.size }

// Has reports whether exactly v (identity, not merely an equal value)
// is stored. O(1) average.
func (s *Set[T]) Has(v T) bool {
	_, ok := s.index[v]
	return ok
}

// FindEqual returns the stored value equal to v under the equality
// predicate, descending from the root by comparator.
func (s *Set[T]) FindEqual(v T) (T, bool) {
	n := s.searchNode(v)
	if n == s.nil {
		var zero T
		return zero, false
	}
	return n.value, true
}

// Insert stores v. It fails with ErrDuplicateValue when v itself or a
// predicate-equal value is already present; the set is unchanged on
// failure.
func (s *Set[T]) Insert(v T) error {
	if _, ok := s.index[v]; ok {
		return ErrDuplicateValue
	}

	// Standard BST descent to the insertion parent.
	y := s.nil
	x := s.root
	for x != s.nil {
		if s.equal(v, x.value) {
			return ErrDuplicateValue
		}
		y = x
		if s.bigger(x.value, v) {
			x = x.left
		} else {
			x = x.right
		}
	}

	z := &node[T]{
		value:  v,
		color:  red, // new insertions start red
		left:   s.nil,
		right:  s.nil,
		parent: y,
	}
	if y == s.nil {
		s.root = z
	} else if s.bigger(y.value, v) {
		y.left = z
	} else {
		y.right = z
	}
	s.insertFixup(z)

	s.index[v] = z
	s.size++
	if s.min == s.nil || s.bigger(s.min.value, v) {
		s.min = z
	}
	if s.max == s.nil || s.bigger(v, s.max.value) {
		s.max = z
	}
	return nil
}

// Delete removes exactly v (identity lookup). It reports whether a
// value was removed; deleting an absent value is a no-op.
func (s *Set[T]) Delete(v T) bool {
	z, ok := s.index[v]
	if !ok {
		return false
	}
	wasMin := z == s.min
	wasMax := z == s.max

	s.deleteNode(z)
	delete(s.index, v)
	s.size--

	// Only a deleted extreme forces a real subtree walk.
	if wasMin {
		s.min = s.minNode(s.root)
	}
	if wasMax {
		s.max = s.maxNode(s.root)
	}
	return true
}

// Successor returns the smallest stored value ordering strictly after
// v. v itself may be stored, equal to a stored value, or absent; in
// the absent case the descent acts as a virtual insertion walk.
func (s *Set[T]) Successor(v T) (T, bool) {
	if z, ok := s.index[v]; ok {
		return s.nodeValue(s.next(z))
	}
	n := s.root
	succ := s.nil
	for n != s.nil {
		if s.equal(v, n.value) {
			return s.nodeValue(s.next(n))
		}
		if s.bigger(n.value, v) {
			succ = n
			n = n.left
		} else {
			n = n.right
		}
	}
	return s.nodeValue(succ)
}

// Predecessor returns the largest stored value ordering strictly
// before v. Same acceptance rules as Successor.
func (s *Set[T]) Predecessor(v T) (T, bool) {
	if z, ok := s.index[v]; ok {
		return s.nodeValue(s.prev(z))
	}
	n := s.root
	pred := s.nil
	for n != s.nil {
		if s.equal(v, n.value) {
			return s.nodeValue(s.prev(n))
		}
		if s.bigger(v, n.value) {
			pred = n
			n = n.right
		} else {
			n = n.left
		}
	}
	return s.nodeValue(pred)
}

// Min returns the cached minimum value.
func (s *Set[T]) Min() (T, bool) {
	return s.nodeValue(s.min)
}

// Max returns the cached maximum value.
func (s *Set[T]) Max() (T, bool) {
	return s.nodeValue(s.max)
}

// Ascend applies fn from smallest to largest value. If fn returns
// false, iteration stops early.
func (s *Set[T]) Ascend(fn func(T) bool) {
	for n := s.minNode(s.root); n != s.nil; n = s.next(n) {
		if !fn(n.value) {
			return
		}
	}
}

// Descend applies fn from largest to smallest value. If fn returns
// false, iteration stops early.
func (s *Set[T]) Descend(fn func(T) bool) {
	for n := s.maxNode(s.root); n != s.nil; n = s.prev(n) {
		if !fn(n.value) {
			return
		}
	}
}

// ForEach applies fn to every value in ascending order.
func (s *Set[T]) ForEach(fn func(T)) error {
	if fn == nil {
		return ErrInvalidCallback
	}
	s.Ascend(func(v T) bool {
		fn(v)
		return true
	})
	return nil
}

// Values returns all values in ascending order.
func (s *Set[T]) Values() []T {
	out := make([]T, 0, s.size)
	s.Ascend(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// IndexOf returns the zero-based rank of the stored value equal to v
// in ascending order, or -1 when absent. O(n): it walks the in-order
// sequence, so it is a convenience, not a hot path.
func (s *Set[T]) IndexOf(v T) int {
	if _, ok := s.FindEqual(v); !ok {
		return -1
	}
	i, rank := 0, -1
	s.Ascend(func(x T) bool {
		if s.equal(x, v) {
			rank = i
			return false
		}
		i++
		return true
	})
	return rank
}

// Clear empties the set and resets the count and cached extremes.
func (s *Set[T]) Clear() {
	s.root = s.nil
	s.index = make(map[T]*node[T])
	s.size = 0
	s.min = s.nil
	s.max = s.nil
}

func (s *Set[T]) nodeValue(n *node[T]) (T, bool) {
	if n == s.nil {
		var zero T
		return zero, false
	}
	return n.value, true
}
