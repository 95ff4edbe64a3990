package buffer

import "testing"

func TestApplyEditsSingleInsert(t *testing.T) {
	b := New("hello world", Options{})
	res := b.ApplyEdits([]TextEdit{
		{Range: Range{Start: Position{1, 6}, End: Position{1, 6}}, Text: ","},
	}, false)

	if got := b.Text(); got != "hello, world" {
		t.Fatalf("Text() = %q, want %q", got, "hello, world")
	}
	if len(res.RawChanges) != 1 || res.RawChanges[0].Kind != RawLineChanged {
		t.Fatalf("RawChanges = %#v, want a single LineChanged", res.RawChanges)
	}
	if len(res.Changes) != 1 || res.Changes[0].RangeOffset != 5 {
		t.Fatalf("Changes = %#v, want RangeOffset 5", res.Changes)
	}
	if len(res.ReverseEdits) != 1 || res.ReverseEdits[0].Text != "" {
		t.Fatalf("ReverseEdits = %#v, want a single deletion of the inserted comma", res.ReverseEdits)
	}
}

func TestApplyEditsMultipleNonOverlapping(t *testing.T) {
	b := New("aaa\nbbb\nccc", Options{})
	res := b.ApplyEdits([]TextEdit{
		{Range: Range{Start: Position{3, 1}, End: Position{3, 1}}, Text: "X"},
		{Range: Range{Start: Position{1, 1}, End: Position{1, 1}}, Text: "Y"},
	}, false)

	if got := b.Text(); got != "Yaaa\nbbb\nXccc" {
		t.Fatalf("Text() = %q, want %q", got, "Yaaa\nbbb\nXccc")
	}
	// Changes preserve original input order regardless of application order.
	if res.Changes[0].RangeOffset != 8 {
		t.Fatalf("Changes[0].RangeOffset = %d, want 8 (line 3 in pristine buffer)", res.Changes[0].RangeOffset)
	}
	if res.Changes[1].RangeOffset != 0 {
		t.Fatalf("Changes[1].RangeOffset = %d, want 0", res.Changes[1].RangeOffset)
	}
}

func TestApplyEditsLineInsertionShiftsSubsequentLines(t *testing.T) {
	b := New("one\ntwo\nthree", Options{})
	res := b.ApplyEdits([]TextEdit{
		{Range: Range{Start: Position{1, 4}, End: Position{1, 4}}, Text: "\nONE-B"},
	}, false)

	if got := b.Text(); got != "one\nONE-B\ntwo\nthree" {
		t.Fatalf("Text() = %q, want %q", got, "one\nONE-B\ntwo\nthree")
	}
	found := false
	for _, rc := range res.RawChanges {
		if rc.Kind == RawLinesInserted && rc.FromLineNumber == 2 && rc.ToLineNumber == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("RawChanges = %#v, want a LinesInserted at line 2", res.RawChanges)
	}
}

func TestApplyEditsSameLineOrderIndependent(t *testing.T) {
	b := New("abcdefghij", Options{})
	res := b.ApplyEdits([]TextEdit{
		{Range: Range{Start: Position{1, 3}, End: Position{1, 3}}, Text: "XY"},
		{Range: Range{Start: Position{1, 8}, End: Position{1, 8}}, Text: "Z"},
	}, false)

	if got := b.Text(); got != "abXYcdefgZhij" {
		t.Fatalf("Text() = %q, want %q", got, "abXYcdefgZhij")
	}
	// Changes preserve original input order and pre-batch offsets.
	if res.Changes[0].RangeOffset != 2 {
		t.Fatalf("Changes[0].RangeOffset = %d, want 2", res.Changes[0].RangeOffset)
	}
	if res.Changes[1].RangeOffset != 7 {
		t.Fatalf("Changes[1].RangeOffset = %d, want 7", res.Changes[1].RangeOffset)
	}
	for _, rc := range res.RawChanges {
		for _, line := range rc.Lines {
			if line != "" && line != "abXYcdefgZhij" {
				t.Fatalf("RawChanges carried a stale line snapshot: %q", line)
			}
		}
	}
}

func TestApplyEditsDeletionAcrossLines(t *testing.T) {
	b := New("aaa\nbbb\nccc\nddd", Options{})
	res := b.ApplyEdits([]TextEdit{
		{Range: Range{Start: Position{2, 1}, End: Position{4, 1}}, Text: ""},
	}, false)

	if got := b.Text(); got != "aaa\nddd" {
		t.Fatalf("Text() = %q, want %q", got, "aaa\nddd")
	}
	found := false
	for _, rc := range res.RawChanges {
		if rc.Kind == RawLinesDeleted {
			found = true
		}
	}
	if !found {
		t.Fatalf("RawChanges = %#v, want a LinesDeleted entry", res.RawChanges)
	}
}

func TestApplyEditsNoOpProducesNoChanges(t *testing.T) {
	b := New("hello", Options{})
	res := b.ApplyEdits([]TextEdit{
		{Range: Range{Start: Position{1, 1}, End: Position{1, 1}}, Text: ""},
	}, false)
	if len(res.RawChanges) != 0 {
		t.Fatalf("RawChanges = %#v, want none for a true no-op", res.RawChanges)
	}
}

func TestApplyEditsTrimAutoWhitespace(t *testing.T) {
	b := New("foo\nbar\nbaz", Options{})
	res := b.ApplyEdits([]TextEdit{
		{Range: Range{Start: Position{2, 1}, End: Position{2, 4}}, Text: "  "},
	}, true)
	if len(res.TrimAutoWhitespaceLineNumbers) != 1 || res.TrimAutoWhitespaceLineNumbers[0] != 2 {
		t.Fatalf("TrimAutoWhitespaceLineNumbers = %v, want [2]", res.TrimAutoWhitespaceLineNumbers)
	}
}
