package model

import (
	"testing"

	"github.com/quillbuf/coretext/buffer"
)

func pos(line, col int) buffer.Position { return buffer.Position{Line: line, Column: col} }

func rng(l1, c1, l2, c2 int) buffer.Range {
	return buffer.Range{Start: pos(l1, c1), End: pos(l2, c2)}
}

func TestNewDefaults(t *testing.T) {
	m := New("hello", Options{})
	defer m.Dispose()

	got, err := m.GetValue()
	if err != nil || got != "hello" {
		t.Fatalf("GetValue() = (%q, %v), want (%q, nil)", got, err, "hello")
	}
	if id := m.ID(); id == "" {
		t.Fatalf("ID() is empty")
	}
	if m.GetLanguageIdentifier() != "plaintext" {
		t.Fatalf("GetLanguageIdentifier() = %q, want plaintext", m.GetLanguageIdentifier())
	}
}

func TestApplyEditsUpdatesValueAndVersion(t *testing.T) {
	m := New("hello world", Options{})
	defer m.Dispose()

	before := m.CurrentVersionID()
	reverse, err := m.ApplyEdits([]buffer.TextEdit{{Range: rng(1, 6, 1, 6), Text: ","}})
	if err != nil {
		t.Fatalf("ApplyEdits: %v", err)
	}
	got, _ := m.GetValue()
	if got != "hello, world" {
		t.Fatalf("GetValue() = %q, want %q", got, "hello, world")
	}
	if m.CurrentVersionID() != before+1 {
		t.Fatalf("CurrentVersionID() = %d, want %d", m.CurrentVersionID(), before+1)
	}
	if len(reverse) != 1 || reverse[0].Text != "" {
		t.Fatalf("ReverseEdits = %#v, want a single deletion", reverse)
	}
}

func TestApplyEditsOnDisposedModel(t *testing.T) {
	m := New("hi", Options{})
	m.Dispose()

	if _, err := m.ApplyEdits([]buffer.TextEdit{{Range: rng(1, 1, 1, 1), Text: "x"}}); err != ErrModelDisposed {
		t.Fatalf("ApplyEdits on disposed model: err = %v, want ErrModelDisposed", err)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	m := New("abc", Options{})
	defer m.Dispose()

	if _, err := m.PushEditOperations(nil, []buffer.TextEdit{{Range: rng(1, 4, 1, 4), Text: "d"}}); err != nil {
		t.Fatalf("PushEditOperations: %v", err)
	}
	got, _ := m.GetValue()
	if got != "abcd" {
		t.Fatalf("after edit, GetValue() = %q, want %q", got, "abcd")
	}

	if !m.CanUndo() {
		t.Fatalf("CanUndo() = false, want true")
	}
	if _, ok, err := m.Undo(); err != nil || !ok {
		t.Fatalf("Undo() = (_, %v, %v), want (_, true, nil)", ok, err)
	}
	got, _ = m.GetValue()
	if got != "abc" {
		t.Fatalf("after undo, GetValue() = %q, want %q", got, "abc")
	}

	if !m.CanRedo() {
		t.Fatalf("CanRedo() = false, want true")
	}
	if _, ok, err := m.Redo(); err != nil || !ok {
		t.Fatalf("Redo() = (_, %v, %v), want (_, true, nil)", ok, err)
	}
	got, _ = m.GetValue()
	if got != "abcd" {
		t.Fatalf("after redo, GetValue() = %q, want %q", got, "abcd")
	}
}

func TestUndoWithEmptyStackReturnsFalse(t *testing.T) {
	m := New("abc", Options{})
	defer m.Dispose()

	_, ok, err := m.Undo()
	if err != nil {
		t.Fatalf("Undo() on empty stack: err = %v, want nil", err)
	}
	if ok {
		t.Fatalf("Undo() on empty stack: ok = true, want false")
	}
}

func TestSetValueResetsUndoStack(t *testing.T) {
	m := New("abc", Options{})
	defer m.Dispose()

	if _, err := m.PushEditOperations(nil, []buffer.TextEdit{{Range: rng(1, 4, 1, 4), Text: "d"}}); err != nil {
		t.Fatalf("PushEditOperations: %v", err)
	}
	if err := m.SetValue("fresh"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if m.CanUndo() {
		t.Fatalf("CanUndo() = true after SetValue, want false")
	}
	got, _ := m.GetValue()
	if got != "fresh" {
		t.Fatalf("GetValue() = %q, want %q", got, "fresh")
	}
}

func TestSetValueNoopWhenUnchanged(t *testing.T) {
	m := New("same", Options{})
	defer m.Dispose()

	before := m.CurrentVersionID()
	if err := m.SetValue("same"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if m.CurrentVersionID() != before {
		t.Fatalf("CurrentVersionID() changed on no-op SetValue")
	}
}

func TestFindMatches(t *testing.T) {
	m := New("the fox jumps over the fox", Options{})
	defer m.Dispose()

	whole := rng(1, 1, 1, 28)
	matches, err := m.FindMatches("fox", whole, false, false, false, 0)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
}

func TestFindMatchesWholeWord(t *testing.T) {
	m := New("cat catalog cat", Options{})
	defer m.Dispose()

	whole := rng(1, 1, 1, 16)
	matches, err := m.FindMatches("cat", whole, false, false, true, 0)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2 (whole-word only)", len(matches))
	}
}

func TestMatchBracket(t *testing.T) {
	m := New("func f() { return }", Options{LanguageID: "go"})
	defer m.Dispose()

	ranges, ok, err := m.MatchBracket(pos(1, 11))
	if err != nil {
		t.Fatalf("MatchBracket: %v", err)
	}
	if !ok || len(ranges) != 2 {
		t.Fatalf("MatchBracket at opening brace: ok=%v ranges=%#v, want a matched pair", ok, ranges)
	}
}

func TestGetWordAtPosition(t *testing.T) {
	m := New("hello world", Options{})
	defer m.Dispose()

	_, word, ok, err := m.GetWordAtPosition(pos(1, 3))
	if err != nil {
		t.Fatalf("GetWordAtPosition: %v", err)
	}
	if !ok || word != "hello" {
		t.Fatalf("GetWordAtPosition(1,3) = (%q, %v), want (%q, true)", word, ok, "hello")
	}
}

func TestDecorationsRoundTrip(t *testing.T) {
	m := New("line one\nline two\nline three", Options{})
	defer m.Dispose()

	ids, err := m.DeltaDecorations("owner-1", nil, []buffer.Range{rng(1, 1, 1, 5)}, nil)
	if err != nil {
		t.Fatalf("DeltaDecorations: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("len(ids) = %d, want 1", len(ids))
	}

	all, err := m.GetAllDecorations("owner-1", false)
	if err != nil {
		t.Fatalf("GetAllDecorations: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len(all) = %d, want 1", len(all))
	}

	if err := m.RemoveAllDecorationsWithOwnerId("owner-1"); err != nil {
		t.Fatalf("RemoveAllDecorationsWithOwnerId: %v", err)
	}
	all, _ = m.GetAllDecorations("owner-1", false)
	if len(all) != 0 {
		t.Fatalf("len(all) = %d after removal, want 0", len(all))
	}
}

func TestChangeDecorationsCallbackPanicRecovered(t *testing.T) {
	m := New("abc", Options{})
	defer m.Dispose()

	err := m.ChangeDecorations("owner-1", func(a *DecorationsAccessor) error {
		panic("boom")
	})
	if err == nil {
		t.Fatalf("ChangeDecorations: err = nil, want a wrapped panic error")
	}
}

func TestForceTokenization(t *testing.T) {
	m := New("package main\n\nfunc main() {}\n", Options{LanguageID: "go"})
	defer m.Dispose()

	if err := m.ForceTokenization(3); err != nil {
		t.Fatalf("ForceTokenization: %v", err)
	}
	tokens, err := m.GetLineTokens(1)
	if err != nil {
		t.Fatalf("GetLineTokens: %v", err)
	}
	if len(tokens.Tokens) == 0 {
		t.Fatalf("GetLineTokens(1) returned no tokens after forced tokenization")
	}
}

func TestDebugSnapshot(t *testing.T) {
	m := New("a\nbb\nccc", Options{})
	defer m.Dispose()

	snap := m.DebugSnapshot()
	if snap.LineCount != 3 {
		t.Fatalf("LineCount = %d, want 3", snap.LineCount)
	}
	if snap.LongestLineLength != 3 {
		t.Fatalf("LongestLineLength = %d, want 3", snap.LongestLineLength)
	}
	if snap.Disposed {
		t.Fatalf("Disposed = true before Dispose()")
	}
}
