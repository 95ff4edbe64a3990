package interval

// Stickiness governs how a node's endpoints move when text is inserted
// exactly at one of them.
type Stickiness int

const (
	// AlwaysGrowsWhenTypingAtEdges absorbs insertions at both edges.
	AlwaysGrowsWhenTypingAtEdges Stickiness = iota
	// NeverGrowsWhenTypingAtEdges excludes insertions at both edges.
	NeverGrowsWhenTypingAtEdges
	// GrowsOnlyWhenTypingBefore absorbs insertions at Start, excludes at End.
	GrowsOnlyWhenTypingBefore
	// GrowsOnlyWhenTypingAfter excludes insertions at Start, absorbs at End.
	GrowsOnlyWhenTypingAfter
)

type color bool

const (
	red   color = true
	black color = false
)

// Node is one tracked interval [Start, End) plus the bookkeeping the
// decorations tracker layers on top of it.
type Node struct {
	left, right, parent *Node
	c                    color

	Start, End int
	maxEnd     int

	ID                 string
	OwnerID            string
	IsForOverviewRuler bool
	Stickiness         Stickiness
	Validation         bool

	CachedVersionID     uint64
	CachedAbsoluteStart int
	CachedAbsoluteEnd   int
}

func newNode(id, ownerID string, start, end int, ruler bool, sticky Stickiness, validation bool) *Node {
	return &Node{
		ID:                 id,
		OwnerID:            ownerID,
		Start:              start,
		End:                end,
		maxEnd:             end,
		IsForOverviewRuler: ruler,
		Stickiness:         sticky,
		Validation:         validation,
	}
}
