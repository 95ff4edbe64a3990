package interval

import "testing"

func TestInsertSearchDelete(t *testing.T) {
	tr := NewTree()
	n1 := NewNode("a", "owner1", 5, 10, false, AlwaysGrowsWhenTypingAtEdges, false)
	n2 := NewNode("b", "owner2", 20, 30, true, NeverGrowsWhenTypingAtEdges, false)
	tr.Insert(n1)
	tr.Insert(n2)

	if tr.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", tr.Size())
	}

	got := tr.IntervalSearch(0, 100, "", false, 1)
	if len(got) != 2 {
		t.Fatalf("IntervalSearch = %d nodes, want 2", len(got))
	}

	got = tr.IntervalSearch(0, 100, "owner1", false, 1)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("IntervalSearch(owner1) = %#v, want [a]", got)
	}

	got = tr.IntervalSearch(12, 18, "", false, 1)
	if len(got) != 0 {
		t.Fatalf("IntervalSearch(12,18) = %#v, want none (gap between intervals)", got)
	}

	tr.Delete(n1)
	if tr.Size() != 1 {
		t.Fatalf("Size() after delete = %d, want 1", tr.Size())
	}
}

func TestInsertManyKeepsSearchConsistent(t *testing.T) {
	tr := NewTree()
	for i := 0; i < 50; i++ {
		tr.Insert(NewNode(string(rune('a'+i%26)), "o", i*2, i*2+1, false, AlwaysGrowsWhenTypingAtEdges, false))
	}
	all := tr.Search("", false, 1)
	if len(all) != 50 {
		t.Fatalf("Search() = %d nodes, want 50", len(all))
	}
}

func TestAcceptReplaceShiftsNodesAfterEdit(t *testing.T) {
	tr := NewTree()
	n := NewNode("a", "o", 20, 25, false, NeverGrowsWhenTypingAtEdges, false)
	tr.Insert(n)

	// Insert 3 units at offset 5, well before the node.
	tr.AcceptReplace(5, 0, 3, false)
	if n.Start != 23 || n.End != 28 {
		t.Fatalf("after insert before: Start=%d End=%d, want 23 28", n.Start, n.End)
	}
}

func TestAcceptReplaceCoversDecorationCollapses(t *testing.T) {
	tr := NewTree()
	n := NewNode("a", "o", 10, 15, false, AlwaysGrowsWhenTypingAtEdges, false)
	tr.Insert(n)

	tr.AcceptReplace(5, 20, 0, false)
	if n.Start != 5 || n.End != 5 {
		t.Fatalf("after covering delete: Start=%d End=%d, want 5 5", n.Start, n.End)
	}
}

func TestAcceptReplaceAlwaysGrowsAbsorbsInsertionAtEdges(t *testing.T) {
	tr := NewTree()
	n := NewNode("a", "o", 10, 15, false, AlwaysGrowsWhenTypingAtEdges, false)
	tr.Insert(n)

	// Insertion exactly at End should be absorbed (End grows right).
	tr.AcceptReplace(15, 0, 4, false)
	if n.Start != 10 || n.End != 19 {
		t.Fatalf("after insert at end (grows): Start=%d End=%d, want 10 19", n.Start, n.End)
	}
}

func TestAcceptReplaceNeverGrowsExcludesInsertionAtEdges(t *testing.T) {
	tr := NewTree()
	n := NewNode("a", "o", 10, 15, false, NeverGrowsWhenTypingAtEdges, false)
	tr.Insert(n)

	tr.AcceptReplace(15, 0, 4, false)
	if n.Start != 10 || n.End != 15 {
		t.Fatalf("after insert at end (never grows): Start=%d End=%d, want 10 15", n.Start, n.End)
	}
}

func TestAcceptReplaceForceMoveMarkersOverridesStickiness(t *testing.T) {
	tr := NewTree()
	n := NewNode("a", "o", 10, 15, false, NeverGrowsWhenTypingAtEdges, false)
	tr.Insert(n)

	tr.AcceptReplace(15, 0, 4, true)
	if n.Start != 10 || n.End != 19 {
		t.Fatalf("after insert at end (forced): Start=%d End=%d, want 10 19", n.Start, n.End)
	}
}

func TestCollectNodesFromOwner(t *testing.T) {
	tr := NewTree()
	tr.Insert(NewNode("a", "owner1", 1, 2, false, AlwaysGrowsWhenTypingAtEdges, false))
	tr.Insert(NewNode("b", "owner1", 3, 4, false, AlwaysGrowsWhenTypingAtEdges, false))
	tr.Insert(NewNode("c", "owner2", 5, 6, false, AlwaysGrowsWhenTypingAtEdges, false))

	got := tr.CollectNodesFromOwner("owner1")
	if len(got) != 2 {
		t.Fatalf("CollectNodesFromOwner(owner1) = %d nodes, want 2", len(got))
	}
}
