package interval

// Tree is an augmented red-black tree keyed by a node's Start offset, with
// maxEnd caching the largest End in each subtree so IntervalSearch can
// prune branches that cannot possibly overlap the query.
type Tree struct {
	root *Node
	nilN *Node
	size int
}

// NewTree constructs an empty tree.
func NewTree() *Tree {
	t := &Tree{}
	t.nilN = &Node{c: black, maxEnd: -1}
	t.nilN.left, t.nilN.right, t.nilN.parent = t.nilN, t.nilN, t.nilN
	t.root = t.nilN
	return t
}

// Size returns the number of nodes currently tracked.
func (t *Tree) Size() int { return t.size }

// NewNode allocates a node for Insert; it is not linked into the tree
// until Insert is called with it.
func NewNode(id, ownerID string, start, end int, ruler bool, sticky Stickiness, validation bool) *Node {
	return newNode(id, ownerID, start, end, ruler, sticky, validation)
}

func (t *Tree) isNil(n *Node) bool { return n == nil || n == t.nilN }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// updateMaxEnd recomputes n.maxEnd from n.End and its two children. It does
// not recurse; callers walk upward from the point of mutation.
func (t *Tree) updateMaxEnd(n *Node) {
	if t.isNil(n) {
		return
	}
	m := n.End
	if !t.isNil(n.left) {
		m = maxInt(m, n.left.maxEnd)
	}
	if !t.isNil(n.right) {
		m = maxInt(m, n.right.maxEnd)
	}
	n.maxEnd = m
}

func (t *Tree) fixMaxEndUpward(n *Node) {
	for !t.isNil(n) {
		t.updateMaxEnd(n)
		n = n.parent
	}
}

func (t *Tree) leftRotate(x *Node) {
	y := x.right
	x.right = y.left
	if !t.isNil(y.left) {
		y.left.parent = x
	}
	y.parent = x.parent
	if t.isNil(x.parent) {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
	t.updateMaxEnd(x)
	t.updateMaxEnd(y)
}

func (t *Tree) rightRotate(x *Node) {
	y := x.left
	x.left = y.right
	if !t.isNil(y.right) {
		y.right.parent = x
	}
	y.parent = x.parent
	if t.isNil(x.parent) {
		t.root = y
	} else if x == x.parent.right {
		x.parent.right = y
	} else {
		x.parent.left = y
	}
	y.right = x
	x.parent = y
	t.updateMaxEnd(x)
	t.updateMaxEnd(y)
}

// Insert links n into the tree keyed by n.Start and rebalances.
func (t *Tree) Insert(n *Node) {
	n.left, n.right = t.nilN, t.nilN
	n.maxEnd = n.End

	var y *Node = t.nilN
	x := t.root
	for !t.isNil(x) {
		y = x
		if n.Start < x.Start {
			x = x.left
		} else {
			x = x.right
		}
	}
	n.parent = y
	if t.isNil(y) {
		t.root = n
	} else if n.Start < y.Start {
		y.left = n
	} else {
		y.right = n
	}
	n.c = red
	t.size++

	t.fixMaxEndUpward(n)
	t.insertFixup(n)
}

func (t *Tree) insertFixup(z *Node) {
	for z.parent.c == red {
		if z.parent == z.parent.parent.left {
			y := z.parent.parent.right
			if y.c == red {
				z.parent.c = black
				y.c = black
				z.parent.parent.c = red
				z = z.parent.parent
			} else {
				if z == z.parent.right {
					z = z.parent
					t.leftRotate(z)
				}
				z.parent.c = black
				z.parent.parent.c = red
				t.rightRotate(z.parent.parent)
			}
		} else {
			y := z.parent.parent.left
			if y.c == red {
				z.parent.c = black
				y.c = black
				z.parent.parent.c = red
				z = z.parent.parent
			} else {
				if z == z.parent.left {
					z = z.parent
					t.rightRotate(z)
				}
				z.parent.c = black
				z.parent.parent.c = red
				t.leftRotate(z.parent.parent)
			}
		}
	}
	t.root.c = black
}

func (t *Tree) transplant(u, v *Node) {
	if t.isNil(u.parent) {
		t.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	v.parent = u.parent
}

func (t *Tree) minimum(n *Node) *Node {
	for !t.isNil(n.left) {
		n = n.left
	}
	return n
}

// Delete unlinks n from the tree.
func (t *Tree) Delete(n *Node) {
	y := n
	yOrigColor := y.c
	var x *Node

	if t.isNil(n.left) {
		x = n.right
		t.transplant(n, n.right)
	} else if t.isNil(n.right) {
		x = n.left
		t.transplant(n, n.left)
	} else {
		y = t.minimum(n.right)
		yOrigColor = y.c
		x = y.right
		if y.parent == n {
			x.parent = y
		} else {
			t.transplant(y, y.right)
			y.right = n.right
			y.right.parent = y
		}
		t.transplant(n, y)
		y.left = n.left
		y.left.parent = y
		y.c = n.c
		t.updateMaxEnd(y)
	}

	fixupFrom := x.parent
	if yOrigColor == black {
		t.deleteFixup(x)
	}
	t.fixMaxEndUpward(fixupFrom)
	t.size--

	n.left, n.right, n.parent = nil, nil, nil
}

func (t *Tree) deleteFixup(x *Node) {
	for x != t.root && x.c == black {
		if x == x.parent.left {
			w := x.parent.right
			if w.c == red {
				w.c = black
				x.parent.c = red
				t.leftRotate(x.parent)
				w = x.parent.right
			}
			if w.left.c == black && w.right.c == black {
				w.c = red
				x = x.parent
			} else {
				if w.right.c == black {
					w.left.c = black
					w.c = red
					t.rightRotate(w)
					w = x.parent.right
				}
				w.c = black
				x.parent.c = black
				t.leftRotate(x.parent)
				x = t.root
			}
		} else {
			w := x.parent.left
			if w.c == red {
				w.c = black
				x.parent.c = red
				t.rightRotate(x.parent)
				w = x.parent.left
			}
			if w.right.c == black && w.left.c == black {
				w.c = red
				x = x.parent
			} else {
				if w.left.c == black {
					w.right.c = black
					w.c = red
					t.leftRotate(w)
					w = x.parent.left
				}
				w.c = black
				x.parent.c = black
				t.rightRotate(x.parent)
				x = t.root
			}
		}
	}
	x.c = black
}
