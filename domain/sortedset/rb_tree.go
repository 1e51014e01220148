package sortedset

// Structural primitives and the red-black fixup machinery. Every "no
// child" link points at the set's sentinel node, never at nil, so the
// rotation and fixup code below has no nil special cases.

func (s *Set[T]) searchNode(v T) *node[T] {
	n := s.root
	for n != s.nil {
		switch {
		case s.equal(v, n.value):
			return n
		case s.bigger(n.value, v):
			n = n.left
		default:
			n = n.right
		}
	}
	return s.nil
}

func (s *Set[T]) minNode(n *node[T]) *node[T] {
	if n == s.nil {
		return s.nil
	}
	for n.left != s.nil {
		n = n.left
	}
	return n
}

func (s *Set[T]) maxNode(n *node[T]) *node[T] {
	if n == s.nil {
		return s.nil
	}
	for n.right != s.nil {
		n = n.right
	}
	return n
}

// In-order successor
func (s *Set[T]) next(n *node[T]) *node[T] {
	if n.right != s.nil {
		return s.minNode(n.right)
	}
	p := n.parent
	for p != s.nil && n == p.right {
		n = p
		p = p.parent
	}
	return p
}

// In-order predecessor
func (s *Set[T]) prev(n *node[T]) *node[T] {
	if n.left != s.nil {
		return s.maxNode(n.left)
	}
	p := n.parent
	for p != s.nil && n == p.left {
		n = p
		p = p.parent
	}
	return p
}

func (s *Set[T]) leftRotate(x *node[T]) {
	y := x.right
	x.right = y.left
	if y.left != s.nil {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == s.nil {
		s.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (s *Set[T]) rightRotate(y *node[T]) {
	x := y.left
	y.left = x.right
	if x.right != s.nil {
		x.right.parent = y
	}
	x.parent = y.parent
	if y.parent == s.nil {
		s.root = x
	} else if y == y.parent.right {
		y.parent.right = x
	} else {
		y.parent.left = x
	}
	x.right = y
	y.parent = x
}

func (s *Set[T]) insertFixup(z *node[T]) {
	for z.parent.color == red {
		if z.parent == z.parent.parent.left {
			y := z.parent.parent.right // uncle
			if y.color == red {
				// Case 1
				z.parent.color = black
				y.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.right {
					// Case 2
					z = z.parent
					s.leftRotate(z)
				}
				// Case 3
				z.parent.color = black
				z.parent.parent.color = red
				s.rightRotate(z.parent.parent)
			}
		} else {
			// mirror cases
			y := z.parent.parent.left // uncle
			if y.color == red {
				// Case 1
				z.parent.color = black
				y.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.left {
					// Case 2
					z = z.parent
					s.rightRotate(z)
				}
				// Case 3
				z.parent.color = black
				z.parent.parent.color = red
				s.leftRotate(z.parent.parent)
			}
		}
	}
	s.root.color = black
}

// transplant replaces the subtree rooted at u with the subtree rooted
// at v from u's parent's perspective. v's own children are untouched.
func (s *Set[T]) transplant(u, v *node[T]) {
	if u.parent == s.nil {
		s.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	v.parent = u.parent
}

func (s *Set[T]) deleteNode(z *node[T]) {
	y := z
	yOrigColor := y.color
	var x *node[T]

	if z.left == s.nil {
		x = z.right
		s.transplant(z, z.right)
	} else if z.right == s.nil {
		x = z.left
		s.transplant(z, z.left)
	} else {
		y = s.minNode(z.right) // successor
		yOrigColor = y.color
		x = y.right
		if y.parent == z {
			x.parent = y
		} else {
			s.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		s.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	if yOrigColor == black {
		s.deleteFixup(x)
	}
}

func (s *Set[T]) deleteFixup(x *node[T]) {
	for x != s.root && x.color == black {
		if x == x.parent.left {
			w := x.parent.right
			if w.color == red {
				// Case 1
				w.color = black
				x.parent.color = red
				s.leftRotate(x.parent)
				w = x.parent.right
			}
			if w.left.color == black && w.right.color == black {
				// Case 2
				w.color = red
				x = x.parent
			} else {
				if w.right.color == black {
					// Case 3
					w.left.color = black
					w.color = red
					s.rightRotate(w)
					w = x.parent.right
				}
				// Case 4
				w.color = x.parent.color
				x.parent.color = black
				w.right.color = black
				s.leftRotate(x.parent)
				x = s.root
			}
		} else {
			// mirror cases
			w := x.parent.left
			if w.color == red {
				// Case 1
				w.color = black
				x.parent.color = red
				s.rightRotate(x.parent)
				w = x.parent.left
			}
			if w.right.color == black && w.left.color == black {
				// Case 2
				w.color = red
				x = x.parent
			} else {
				if w.left.color == black {
					// Case 3
					w.right.color = black
					w.color = red
					s.leftRotate(w)
					w = x.parent.left
				}
				// Case 4
				w.color = x.parent.color
				x.parent.color = black
				w.left.color = black
				s.rightRotate(x.parent)
				x = s.root
			}
		}
	}
	x.color = black
}
