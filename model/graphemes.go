package model

import (
	"github.com/quillbuf/coretext/buffer"
	"github.com/quillbuf/coretext/internal/grapheme"
	iutf16 "github.com/quillbuf/coretext/internal/utf16"
)

// graphemeBoundaries returns every valid cursor column on line, in
// ascending order, such that no column splits a grapheme cluster (an
// emoji sequence, a base character plus combining marks, ...).
func graphemeBoundaries(line string) []int {
	clusters := grapheme.Split(line)
	bounds := make([]int, 0, len(clusters)+1)
	col := 1
	bounds = append(bounds, col)
	for _, c := range clusters {
		col += iutf16.Len(c)
		bounds = append(bounds, col)
	}
	return bounds
}

// NextGraphemeBoundary returns the next cursor position after pos that
// does not split a grapheme cluster, crossing to the start of the next
// line at end of line. Unlike ValidatePosition's surrogate-pair-only
// adjustment, this also keeps multi-rune clusters (flag emoji, combining
// accents) intact under left/right cursor movement.
func (m *TextModel) NextGraphemeBoundary(pos buffer.Position) (buffer.Position, error) {
	if err := m.checkDisposed(); err != nil {
		return buffer.Position{}, err
	}
	pos = m.ValidatePosition(pos)
	line, ok := m.buf.LineContent(pos.Line)
	if !ok {
		return pos, nil
	}
	for _, b := range graphemeBoundaries(line) {
		if b > pos.Column {
			return buffer.Position{Line: pos.Line, Column: b}, nil
		}
	}
	if pos.Line < m.buf.LineCount() {
		return buffer.Position{Line: pos.Line + 1, Column: 1}, nil
	}
	return pos, nil
}

// PrevGraphemeBoundary is NextGraphemeBoundary's mirror, crossing to the
// end of the previous line at start of line.
func (m *TextModel) PrevGraphemeBoundary(pos buffer.Position) (buffer.Position, error) {
	if err := m.checkDisposed(); err != nil {
		return buffer.Position{}, err
	}
	pos = m.ValidatePosition(pos)
	if pos.Column == 1 {
		if pos.Line == 1 {
			return pos, nil
		}
		prevLine, ok := m.buf.LineContent(pos.Line - 1)
		if !ok {
			return pos, nil
		}
		bounds := graphemeBoundaries(prevLine)
		return buffer.Position{Line: pos.Line - 1, Column: bounds[len(bounds)-1]}, nil
	}
	line, ok := m.buf.LineContent(pos.Line)
	if !ok {
		return pos, nil
	}
	bounds := graphemeBoundaries(line)
	best := bounds[0]
	for _, b := range bounds {
		if b >= pos.Column {
			break
		}
		best = b
	}
	return buffer.Position{Line: pos.Line, Column: best}, nil
}
