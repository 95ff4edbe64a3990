package decoration

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"

	"github.com/quillbuf/coretext/buffer"
	"github.com/quillbuf/coretext/interval"
)

// OverviewRulerLane is the lane a ruler decoration paints in.
type OverviewRulerLane int

const (
	LaneLeft OverviewRulerLane = 1 << iota
	LaneCenter
	LaneRight
)

// OverviewRulerOptions describes the overview-ruler-only rendering of a
// decoration. A zero value (Color == "") means the decoration does not
// appear on the ruler and is stored in the non-ruler tree.
type OverviewRulerOptions struct {
	Color string
	Lane  OverviewRulerLane
}

// Options is the full bundle of options attached to a decoration.
//
// Style is a rendering hint (zero value = none) consumed only by
// cmd/coretext's demo command — core logic never reads it.
type Options struct {
	ClassName     string
	OverviewRuler OverviewRulerOptions
	Stickiness    interval.Stickiness
	IsWholeLine   bool
	Validation    bool
	Style         lipgloss.Style
}

// Decoration is a read view over a tracked range plus its options.
type Decoration struct {
	ID      string
	OwnerID string
	Range   buffer.Range
	Options Options
}

var classNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeClassName strips characters that would not survive into a CSS
// class name equivalent.
func SanitizeClassName(s string) string {
	return classNameSanitizer.ReplaceAllString(s, "")
}

// Tracker owns the two interval trees (ruler T1 / non-ruler T0) and the
// id→node index that lets deltaDecorations and deletion-by-id work without
// a tree scan.
type Tracker struct {
	instanceLetter string
	counter        uint64

	t0 *interval.Tree // non-ruler
	t1 *interval.Tree // ruler

	byID map[string]*trackedNode

	getPositionAt func(offset int) (buffer.Position, bool)
	getOffsetAt   func(pos buffer.Position) (int, bool)
	versionID     func() uint64
}

type trackedNode struct {
	node    *interval.Node
	ruler   bool
	ownerID string
	opts    Options
}

// New constructs an empty Tracker. instanceLetter prefixes every
// allocated id (e.g. "a" → "a;1", "a;2", ...).
func New(instanceLetter string, getOffsetAt func(buffer.Position) (int, bool), getPositionAt func(int) (buffer.Position, bool), versionID func() uint64) *Tracker {
	return &Tracker{
		instanceLetter: instanceLetter,
		t0:             interval.NewTree(),
		t1:             interval.NewTree(),
		byID:           make(map[string]*trackedNode),
		getOffsetAt:    getOffsetAt,
		getPositionAt:  getPositionAt,
		versionID:      versionID,
	}
}

func (t *Tracker) nextID() string {
	t.counter++
	return fmt.Sprintf("%s;%d", t.instanceLetter, t.counter)
}

func isRuler(o Options) bool { return o.OverviewRuler.Color != "" }

// AddDecoration inserts one decoration and returns its allocated id.
func (t *Tracker) AddDecoration(ownerID string, r buffer.Range, opts Options) (string, bool) {
	start, ok := t.getOffsetAt(r.Start)
	if !ok {
		return "", false
	}
	end, ok := t.getOffsetAt(r.End)
	if !ok {
		return "", false
	}

	id := t.nextID()
	ruler := isRuler(opts)
	n := interval.NewNode(id, ownerID, start, end, ruler, opts.Stickiness, opts.Validation)
	tree := t.t0
	if ruler {
		tree = t.t1
	}
	tree.Insert(n)
	t.byID[id] = &trackedNode{node: n, ruler: ruler, ownerID: ownerID, opts: opts}
	return id, true
}

// RemoveDecoration removes a decoration by id. Unknown ids are silently
// ignored, so repeated removal is idempotent.
func (t *Tracker) RemoveDecoration(id string) {
	tn, ok := t.byID[id]
	if !ok {
		return
	}
	delete(t.byID, id)
	if tn.ruler {
		t.t1.Delete(tn.node)
	} else {
		t.t0.Delete(tn.node)
	}
}

// ChangeDecorationOptions replaces a decoration's options in place,
// moving it between trees if ruler membership toggles.
func (t *Tracker) ChangeDecorationOptions(id string, opts Options) bool {
	tn, ok := t.byID[id]
	if !ok {
		return false
	}
	newRuler := isRuler(opts)
	if newRuler == tn.ruler {
		tn.node.Stickiness = opts.Stickiness
		tn.node.Validation = opts.Validation
		tn.opts = opts
		return true
	}

	oldTree, newTree := t.t0, t.t1
	if tn.ruler {
		oldTree, newTree = t.t1, t.t0
	}
	oldTree.Delete(tn.node)
	tn.node.Stickiness = opts.Stickiness
	tn.node.Validation = opts.Validation
	tn.node.IsForOverviewRuler = newRuler
	newTree.Insert(tn.node)
	tn.ruler = newRuler
	tn.opts = opts
	return true
}

// DeltaDecorations is the primary batch API: old ids paired with new
// (range, options) by index. Matched pairs reuse node identity;
// surplus entries are pure inserts or deletes.
func (t *Tracker) DeltaDecorations(ownerID string, oldIDs []string, news []struct {
	Range   buffer.Range
	Options Options
}) []string {
	newIDs := make([]string, len(news))
	i, j := 0, 0
	for i < len(oldIDs) && j < len(news) {
		id := oldIDs[i]
		tn, ok := t.byID[id]
		if !ok {
			i++
			continue
		}
		start, okS := t.getOffsetAt(news[j].Range.Start)
		end, okE := t.getOffsetAt(news[j].Range.End)
		if !okS || !okE {
			i++
			j++
			continue
		}
		ruler := isRuler(news[j].Options)
		if ruler != tn.ruler {
			oldTree, newTree := t.t0, t.t1
			if tn.ruler {
				oldTree, newTree = t.t1, t.t0
			}
			oldTree.Delete(tn.node)
			tn.node.Start, tn.node.End = start, end
			tn.node.Stickiness = news[j].Options.Stickiness
			tn.node.Validation = news[j].Options.Validation
			tn.node.IsForOverviewRuler = ruler
			newTree.Insert(tn.node)
		} else {
			tree := t.t0
			if tn.ruler {
				tree = t.t1
			}
			tree.Delete(tn.node)
			tn.node.Start, tn.node.End = start, end
			tn.node.Stickiness = news[j].Options.Stickiness
			tn.node.Validation = news[j].Options.Validation
			tree.Insert(tn.node)
		}
		tn.ruler = ruler
		tn.ownerID = ownerID
		tn.opts = news[j].Options
		newIDs[j] = id
		i++
		j++
	}
	for ; i < len(oldIDs); i++ {
		t.RemoveDecoration(oldIDs[i])
	}
	for ; j < len(news); j++ {
		id, ok := t.AddDecoration(ownerID, news[j].Range, news[j].Options)
		if ok {
			newIDs[j] = id
		}
	}
	return newIDs
}

// GetDecorationRange rehydrates a decoration's current range from its
// interval-tree node rather than from a stored position.
func (t *Tracker) GetDecorationRange(id string) (buffer.Range, bool) {
	tn, ok := t.byID[id]
	if !ok {
		return buffer.Range{}, false
	}
	tree := t.t0
	if tn.ruler {
		tree = t.t1
	}
	tree.ResolveNode(tn.node, t.versionID())
	start, ok1 := t.getPositionAt(tn.node.CachedAbsoluteStart)
	end, ok2 := t.getPositionAt(tn.node.CachedAbsoluteEnd)
	if !ok1 || !ok2 {
		return buffer.Range{}, false
	}
	return buffer.Range{Start: start, End: end}, true
}

// GetDecoration returns the full Decoration view for an id.
func (t *Tracker) GetDecoration(id string) (Decoration, bool) {
	tn, ok := t.byID[id]
	if !ok {
		return Decoration{}, false
	}
	r, ok := t.GetDecorationRange(id)
	if !ok {
		return Decoration{}, false
	}
	return Decoration{ID: id, OwnerID: tn.ownerID, Range: r, Options: tn.opts}, true
}

// GetDecorationsInRange queries the non-ruler tree only.
func (t *Tracker) GetDecorationsInRange(start, end buffer.Range, ownerID string, filterOutValidation bool) []Decoration {
	return t.queryTree(t.t0, false, start, end, ownerID, filterOutValidation)
}

// GetOverviewRulerDecorations queries the ruler tree only: an ownerID
// filter narrows within T1, it never reaches T0.
func (t *Tracker) GetOverviewRulerDecorations(r buffer.Range, ownerID string) []Decoration {
	return t.queryTree(t.t1, true, r, buffer.Range{}, ownerID, false)
}

// GetAllDecorations returns every decoration across both trees.
func (t *Tracker) GetAllDecorations(ownerID string, filterOutValidation bool) []Decoration {
	out := t.scanTree(t.t0, false, ownerID, filterOutValidation)
	out = append(out, t.scanTree(t.t1, true, ownerID, filterOutValidation)...)
	return out
}

func (t *Tracker) queryTree(tree *interval.Tree, ruler bool, r, unused buffer.Range, ownerID string, filterOutValidation bool) []Decoration {
	start, ok1 := t.getOffsetAt(r.Start)
	end, ok2 := t.getOffsetAt(r.End)
	if !ok1 || !ok2 {
		return nil
	}
	nodes := tree.IntervalSearch(start, end, ownerID, filterOutValidation, t.versionID())
	return t.nodesToDecorations(nodes)
}

func (t *Tracker) scanTree(tree *interval.Tree, ruler bool, ownerID string, filterOutValidation bool) []Decoration {
	nodes := tree.Search(ownerID, filterOutValidation, t.versionID())
	return t.nodesToDecorations(nodes)
}

func (t *Tracker) nodesToDecorations(nodes []*interval.Node) []Decoration {
	out := make([]Decoration, 0, len(nodes))
	for _, n := range nodes {
		tn, ok := t.byID[n.ID]
		if !ok {
			continue
		}
		start, ok1 := t.getPositionAt(n.CachedAbsoluteStart)
		end, ok2 := t.getPositionAt(n.CachedAbsoluteEnd)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, Decoration{
			ID:      n.ID,
			OwnerID: tn.ownerID,
			Range:   buffer.Range{Start: start, End: end},
			Options: tn.opts,
		})
	}
	return out
}

// RemoveAllWithOwnerID removes every decoration owned by ownerID across
// both trees.
func (t *Tracker) RemoveAllWithOwnerID(ownerID string) {
	for _, n := range t.t0.CollectNodesFromOwner(ownerID) {
		t.RemoveDecoration(n.ID)
	}
	for _, n := range t.t1.CollectNodesFromOwner(ownerID) {
		t.RemoveDecoration(n.ID)
	}
}

// AcceptReplace propagates an edit into both trees.
func (t *Tracker) AcceptReplace(offset, length, textLength int, forceMoveMarkers bool) {
	t.t0.AcceptReplace(offset, length, textLength, forceMoveMarkers)
	t.t1.AcceptReplace(offset, length, textLength, forceMoveMarkers)
}
