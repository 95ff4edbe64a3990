package editstack

import "github.com/quillbuf/coretext/buffer"

// Group is one undo boundary: the edits it applied (for redo), their
// inverse (for undo), and the selection state to restore on either side.
type Group struct {
	OriginalEdits     []buffer.TextEdit
	ReverseEdits      []buffer.TextEdit
	BeforeCursorState []buffer.Range
	AfterCursorState  []buffer.Range
	VersionID         uint64
}

// Stack is the edit stack: an explicit group boundary marker plus
// undo/redo history built from reverse edits rather than snapshots.
type Stack struct {
	undo []Group
	redo []Group

	current    *Group
	hasCurrent bool
}

// New constructs an empty stack.
func New() *Stack { return &Stack{} }

// PushStackElement closes whatever group is currently open (moving it
// onto the undo history) so the next pushEditOperation starts a fresh
// group. Calling it with nothing open is a no-op.
func (s *Stack) PushStackElement() {
	s.closeCurrent()
}

func (s *Stack) closeCurrent() {
	if !s.hasCurrent {
		return
	}
	s.undo = append(s.undo, *s.current)
	s.current = nil
	s.hasCurrent = false
	s.redo = nil
}

// PushEditOperation records one edit operation into the currently open
// group, opening a new group first if none is open.
func (s *Stack) PushEditOperation(originalEdits, reverseEdits []buffer.TextEdit, beforeCursorState []buffer.Range, versionID uint64) {
	if !s.hasCurrent {
		s.current = &Group{BeforeCursorState: beforeCursorState}
		s.hasCurrent = true
		s.redo = nil
	}
	s.current.OriginalEdits = append(s.current.OriginalEdits, originalEdits...)
	// Reverse edits must undo in the opposite order they were applied.
	s.current.ReverseEdits = append(reverseEdits, s.current.ReverseEdits...)
	s.current.VersionID = versionID
}

// CanUndo reports whether Undo would return a group.
func (s *Stack) CanUndo() bool {
	return s.hasCurrent || len(s.undo) > 0
}

// CanRedo reports whether Redo would return a group.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// Undo pops the top group (closing an open one first) and returns it for
// the caller to apply ReverseEdits against the buffer while flagging
// isUndoing. Returns ok=false if there is nothing to undo.
func (s *Stack) Undo() (Group, bool) {
	s.closeCurrent()
	if len(s.undo) == 0 {
		return Group{}, false
	}
	i := len(s.undo) - 1
	g := s.undo[i]
	s.undo = s.undo[:i]
	s.redo = append(s.redo, g)
	return g, true
}

// Redo pops the top redo group and returns it for the caller to
// re-apply OriginalEdits while flagging isRedoing. Returns ok=false if
// there is nothing to redo.
func (s *Stack) Redo() (Group, bool) {
	if len(s.redo) == 0 {
		return Group{}, false
	}
	i := len(s.redo) - 1
	g := s.redo[i]
	s.redo = s.redo[:i]
	s.undo = append(s.undo, g)
	return g, true
}

// Depth reports the number of groups on the undo and redo stacks, for
// DebugSnapshot. The undo count includes the open group, if any.
func (s *Stack) Depth() (undoDepth, redoDepth int) {
	n := len(s.undo)
	if s.hasCurrent {
		n++
	}
	return n, len(s.redo)
}
