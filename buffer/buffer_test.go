package buffer

import "testing"

func TestNewDetectsEOL(t *testing.T) {
	cases := []struct {
		name string
		text string
		want EOLSequence
	}{
		{"lf", "a\nb\n", LF},
		{"crlf", "a\r\nb\r\n", CRLF},
		{"no eol", "a", LF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(tc.text, Options{})
			if got := b.EOL(); got != tc.want {
				t.Fatalf("EOL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewStripsBOM(t *testing.T) {
	b := New("\uFEFFhello", Options{})
	if !b.BOM() {
		t.Fatalf("BOM() = false, want true")
	}
	if got, _ := b.LineContent(1); got != "hello" {
		t.Fatalf("LineContent(1) = %q, want %q", got, "hello")
	}
}

func TestLineCountAndContent(t *testing.T) {
	b := New("one\ntwo\nthree", Options{})
	if got := b.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}
	if got, ok := b.LineContent(2); !ok || got != "two" {
		t.Fatalf("LineContent(2) = %q, %v, want two, true", got, ok)
	}
	if _, ok := b.LineContent(4); ok {
		t.Fatalf("LineContent(4) ok = true, want false")
	}
}

func TestGetOffsetAtRoundTrip(t *testing.T) {
	b := New("abc\nde\nf", Options{})
	cases := []struct {
		pos    Position
		offset int
	}{
		{Position{1, 1}, 0},
		{Position{1, 4}, 3},
		{Position{2, 1}, 4},
		{Position{2, 3}, 6},
		{Position{3, 1}, 7},
		{Position{3, 2}, 8},
	}
	for _, tc := range cases {
		off, ok := b.GetOffsetAt(tc.pos)
		if !ok || off != tc.offset {
			t.Fatalf("GetOffsetAt(%v) = %d, %v, want %d, true", tc.pos, off, ok, tc.offset)
		}
		pos, ok := b.GetPositionAt(tc.offset)
		if !ok || pos != tc.pos {
			t.Fatalf("GetPositionAt(%d) = %v, %v, want %v, true", tc.offset, pos, ok, tc.pos)
		}
	}
}

func TestGetPositionAtSnapsInsideEOL(t *testing.T) {
	b := New("ab\ncd", Options{})
	// offset 3 is between the CRLF terminator's two code units; force one.
	b.SetEOL(CRLF)
	pos, ok := b.GetPositionAt(3)
	if !ok || pos != (Position{Line: 2, Column: 1}) {
		t.Fatalf("GetPositionAt(3) = %v, %v, want {2 1}, true", pos, ok)
	}
}

func TestGetValueInRangeSingleLine(t *testing.T) {
	b := New("hello world", Options{})
	got, ok := b.GetValueInRange(Range{Start: Position{1, 1}, End: Position{1, 6}}, EOLTextDefined)
	if !ok || got != "hello" {
		t.Fatalf("GetValueInRange = %q, %v, want hello, true", got, ok)
	}
}

func TestGetValueInRangeMultiLine(t *testing.T) {
	b := New("one\ntwo\nthree", Options{})
	got, ok := b.GetValueInRange(Range{Start: Position{1, 2}, End: Position{3, 3}}, EOLPreferenceLF)
	if !ok || got != "ne\ntwo\nth" {
		t.Fatalf("GetValueInRange = %q, %v, want %q, true", got, ok, "ne\ntwo\nth")
	}
}

func TestSetValueReturnsPreviousText(t *testing.T) {
	b := New("old", Options{})
	prev := b.SetValue("new")
	if prev != "old" {
		t.Fatalf("SetValue previous = %q, want old", prev)
	}
	if b.Text() != "new" {
		t.Fatalf("Text() = %q, want new", b.Text())
	}
}

func TestSetEOLNoOpWhenUnchanged(t *testing.T) {
	b := New("a\nb", Options{})
	if b.SetEOL(LF) {
		t.Fatalf("SetEOL(LF) = true, want false (no-op)")
	}
	if !b.SetEOL(CRLF) {
		t.Fatalf("SetEOL(CRLF) = false, want true")
	}
}
