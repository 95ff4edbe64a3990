package interval

// ResolveNode refreshes a node's cached absolute offsets and stamps them
// with versionID. Offsets are stored absolutely (not parent-relative), so
// resolution is a cheap copy rather than an ancestor walk, and it is done
// on every call: a node can move without a version change (a fresh node
// at version 0, or a DeltaDecorations move between edits).
func (t *Tree) ResolveNode(n *Node, versionID uint64) {
	n.CachedAbsoluteStart = n.Start
	n.CachedAbsoluteEnd = n.End
	n.CachedVersionID = versionID
}

func matchesFilter(n *Node, filterOwnerID string, filterOutValidation bool) bool {
	if filterOwnerID != "" && n.OwnerID != filterOwnerID {
		return false
	}
	if filterOutValidation && n.Validation {
		return false
	}
	return true
}

// IntervalSearch returns every node whose [Start, End], endpoints
// included, overlaps the closed interval [start, end], pruning subtrees
// whose maxEnd cannot reach start.
func (t *Tree) IntervalSearch(start, end int, filterOwnerID string, filterOutValidation bool, versionID uint64) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if t.isNil(n) || n.maxEnd < start {
			return
		}
		if !t.isNil(n.left) {
			walk(n.left)
		}
		if n.Start <= end && n.End >= start && matchesFilter(n, filterOwnerID, filterOutValidation) {
			t.ResolveNode(n, versionID)
			out = append(out, n)
		}
		if n.Start <= end && !t.isNil(n.right) {
			walk(n.right)
		}
	}
	walk(t.root)
	return out
}

// Search performs a full in-order scan, applying the same filters as
// IntervalSearch but without a range bound.
func (t *Tree) Search(filterOwnerID string, filterOutValidation bool, versionID uint64) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if t.isNil(n) {
			return
		}
		walk(n.left)
		if matchesFilter(n, filterOwnerID, filterOutValidation) {
			t.ResolveNode(n, versionID)
			out = append(out, n)
		}
		walk(n.right)
	}
	walk(t.root)
	return out
}

// CollectNodesFromOwner returns every node owned by ownerID, in no
// particular order.
func (t *Tree) CollectNodesFromOwner(ownerID string) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if t.isNil(n) {
			return
		}
		walk(n.left)
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
		walk(n.right)
	}
	walk(t.root)
	return out
}
