package model

import "testing"

func TestNextGraphemeBoundaryKeepsEmojiSequenceIntact(t *testing.T) {
	// thumbs-up plus a skin-tone modifier: two runes, one grapheme cluster.
	m := New("a\U0001F44D\U0001F3FBb", Options{})
	defer m.Dispose()

	p, err := m.NextGraphemeBoundary(pos(1, 2))
	if err != nil {
		t.Fatalf("NextGraphemeBoundary: %v", err)
	}
	if p.Line != 1 || p.Column <= 2 {
		t.Fatalf("NextGraphemeBoundary(1,2) = %v, want it to skip past the whole cluster", p)
	}

	back, err := m.PrevGraphemeBoundary(p)
	if err != nil {
		t.Fatalf("PrevGraphemeBoundary: %v", err)
	}
	if back != pos(1, 2) {
		t.Fatalf("PrevGraphemeBoundary(%v) = %v, want %v", p, back, pos(1, 2))
	}
}

func TestPrevGraphemeBoundaryCrossesLines(t *testing.T) {
	m := New("ab\ncd", Options{})
	defer m.Dispose()

	p, err := m.PrevGraphemeBoundary(pos(2, 1))
	if err != nil {
		t.Fatalf("PrevGraphemeBoundary: %v", err)
	}
	if p.Line != 1 || p.Column != 3 {
		t.Fatalf("PrevGraphemeBoundary(2,1) = %v, want end of line 1", p)
	}
}

func TestNextGraphemeBoundaryCrossesLines(t *testing.T) {
	m := New("ab\ncd", Options{})
	defer m.Dispose()

	p, err := m.NextGraphemeBoundary(pos(1, 3))
	if err != nil {
		t.Fatalf("NextGraphemeBoundary: %v", err)
	}
	if p.Line != 2 || p.Column != 1 {
		t.Fatalf("NextGraphemeBoundary(1,3) = %v, want start of line 2", p)
	}
}
