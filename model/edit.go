package model

import (
	"sort"
	"strings"

	"github.com/quillbuf/coretext/buffer"
	"github.com/quillbuf/coretext/editstack"
	iutf16 "github.com/quillbuf/coretext/internal/utf16"
)

// ApplyEdits applies a batch of edits directly, outside of any undo group,
// and returns the reverse edits that would undo exactly what was applied
// (including any auto-whitespace trim prepended alongside it).
func (m *TextModel) ApplyEdits(ops []buffer.TextEdit) ([]buffer.TextEdit, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return nil, nil
	}
	return m.applyInternal(m.validateOps(ops), m.opts.TrimAutoWhitespace), nil
}

// PushEditOperations applies ops and records them as one entry in the
// currently open undo group (opening a new one if none is open).
// beforeCursorState is the selection state to restore on undo.
func (m *TextModel) PushEditOperations(beforeCursorState []buffer.Range, ops []buffer.TextEdit) ([]buffer.Range, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return m.lastSelections, nil
	}
	validated := m.validateOps(ops)
	reverseEdits := m.applyInternal(validated, m.opts.TrimAutoWhitespace)
	m.stack.PushEditOperation(validated, reverseEdits, beforeCursorState, m.versionID)
	m.lastSelections = beforeCursorState
	return beforeCursorState, nil
}

// PushStackElement closes the currently open undo group, if any.
func (m *TextModel) PushStackElement() error {
	if err := m.checkDisposed(); err != nil {
		return err
	}
	m.stack.PushStackElement()
	return nil
}

// CanUndo reports whether Undo has a group to pop.
func (m *TextModel) CanUndo() bool { return m.stack.CanUndo() }

// CanRedo reports whether Redo has a group to pop.
func (m *TextModel) CanRedo() bool { return m.stack.CanRedo() }

// Undo pops the top undo group and reapplies its reverse edits, returning
// the selection state to restore. ok is false if there was nothing to undo.
func (m *TextModel) Undo() ([]buffer.Range, bool, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, false, err
	}
	g, ok := m.stack.Undo()
	if !ok {
		return nil, false, nil
	}

	m.isUndoing = true
	m.applyInternal(g.ReverseEdits, false)
	m.isUndoing = false
	m.altVersionID = g.VersionID

	return g.BeforeCursorState, true, nil
}

// Redo pops the top redo group and reapplies its original edits, returning
// the group's after-edit selection state. No edit path records that state,
// so the returned selections are always nil. ok is false if there was
// nothing to redo.
func (m *TextModel) Redo() ([]buffer.Range, bool, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, false, err
	}
	g, ok := m.stack.Redo()
	if !ok {
		return nil, false, nil
	}

	m.isRedoing = true
	m.applyInternal(g.OriginalEdits, false)
	m.isRedoing = false
	m.altVersionID = g.VersionID

	return g.AfterCursorState, true, nil
}

func (m *TextModel) validateOps(ops []buffer.TextEdit) []buffer.TextEdit {
	out := make([]buffer.TextEdit, len(ops))
	for i, e := range ops {
		out[i] = buffer.TextEdit{Range: m.ValidateRange(e.Range), Text: e.Text, ForceMoveMarkers: e.ForceMoveMarkers}
	}
	return out
}

// applyInternal runs the common edit pipeline: prepend any due
// auto-whitespace trims, mutate the buffer, reconcile the token store and
// decorations against the resulting deltas, bump the version, and emit the
// raw and atomic content-change events. isUndoing/isRedoing (set by the
// caller before invoking this) flag the emitted ContentChangedEvent and
// gate whether the trim prepend and the alternative-version-id bump run.
func (m *TextModel) applyInternal(ops []buffer.TextEdit, trimAutoWhitespace bool) []buffer.TextEdit {
	if len(ops) == 0 {
		return nil
	}

	allOps := ops
	if !m.isUndoing && !m.isRedoing && len(m.pendingTrimLines) > 0 {
		if trimEdits := editstack.TrimEdits(m.pendingTrimLines, ops, m.lastSelections, m.buf.LineMaxColumn); len(trimEdits) > 0 {
			allOps = append(append([]buffer.TextEdit(nil), trimEdits...), ops...)
		}
		m.pendingTrimLines = nil
	}

	res := m.buf.ApplyEdits(allOps, trimAutoWhitespace)
	if len(res.RawChanges) == 0 {
		return res.ReverseEdits
	}

	m.subs.beginDeferred()
	defer m.subs.endDeferred()

	m.applyTokenUpdates(res.RawChanges)
	m.applyDecorationUpdates(res.Changes)

	m.versionID++
	if !m.isUndoing && !m.isRedoing {
		m.altVersionID = m.versionID
	}

	m.subs.rawContent.Fire(RawContentChangedEvent{Changes: res.RawChanges, VersionID: m.versionID})
	m.subs.content.Fire(ContentChangedEvent{
		Changes:   res.Changes,
		VersionID: m.versionID,
		IsUndoing: m.isUndoing,
		IsRedoing: m.isRedoing,
		EOL:       m.buf.EOL(),
	})

	if len(res.TrimAutoWhitespaceLineNumbers) > 0 {
		m.pendingTrimLines = res.TrimAutoWhitespaceLineNumbers
	}

	m.scheduleTokenization()
	return res.ReverseEdits
}

// applyTokenUpdates replays a batch's raw changes into the token store.
// Each edit contributes one RawLineChanged entry optionally followed by one
// RawLinesInserted or RawLinesDeleted entry; grouping them back together
// recovers the (oldSpan, newLines) pair Store.ApplyEdits expects.
func (m *TextModel) applyTokenUpdates(raw []buffer.RawChange) {
	i := 0
	for i < len(raw) {
		rc := raw[i]
		if rc.Kind != buffer.RawLineChanged {
			i++
			continue
		}
		startLine0 := rc.FromLineNumber - 1
		endLine0 := rc.ToLineNumber - 1
		lineTextsAfter := append([]string(nil), rc.Lines...)
		i++

		if i < len(raw) {
			switch raw[i].Kind {
			case buffer.RawLinesInserted:
				lineTextsAfter = append(lineTextsAfter, raw[i].Lines...)
				i++
			case buffer.RawLinesDeleted:
				endLine0 = raw[i].ToLineNumber - 1
				i++
			}
		}

		m.tokenStore.ApplyEdits(startLine0, endLine0, lineTextsAfter)
	}
}

// applyDecorationUpdates propagates a batch's content changes into the
// decoration trees in ascending-offset order, accumulating the code-unit
// shift earlier changes in the same batch introduce so every AcceptReplace
// call lands at the right absolute offset.
func (m *TextModel) applyDecorationUpdates(changes []buffer.ContentChange) {
	if len(changes) == 0 {
		return
	}
	ordered := append([]buffer.ContentChange(nil), changes...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].RangeOffset < ordered[j].RangeOffset })

	offsetShift := 0
	for _, c := range ordered {
		if c.RangeLength == 0 && c.Text == "" {
			continue
		}
		normalized := strings.ReplaceAll(c.Text, "\r\n", "\n")
		normalized = strings.ReplaceAll(normalized, "\r", "\n")
		textLength := iutf16.Len(normalized)

		m.decorations.AcceptReplace(c.RangeOffset+offsetShift, c.RangeLength, textLength, c.ForceMoveMarkers)
		offsetShift += textLength - c.RangeLength
	}
	m.subs.decorations.Fire()
}
