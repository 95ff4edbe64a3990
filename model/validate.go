package model

import (
	"github.com/quillbuf/coretext/buffer"
	iutf16 "github.com/quillbuf/coretext/internal/utf16"
)

// ValidatePosition clamps pos into the buffer and, if the resulting
// column sits immediately after a high surrogate, moves it back by one
// so positions never split a pair.
func (m *TextModel) ValidatePosition(pos buffer.Position) buffer.Position {
	pos = buffer.ClampPosition(pos, m.buf.LineCount(), m.lineLenInt)
	return m.adjustForSurrogate(pos)
}

func (m *TextModel) adjustForSurrogate(pos buffer.Position) buffer.Position {
	line, ok := m.buf.LineContent(pos.Line)
	if !ok {
		return pos
	}
	units := iutf16.Units(line)
	idx := pos.Column - 1
	if iutf16.SplitsSurrogate(units, idx) {
		return buffer.Position{Line: pos.Line, Column: pos.Column - 1}
	}
	return pos
}

// validateRangeRelaxed clamps both endpoints without surrogate-pair
// adjustment, reusing r unchanged if clamping made no difference — the
// hot-path variant used for decoration placement.
func (m *TextModel) validateRangeRelaxed(r buffer.Range) buffer.Range {
	clamped := buffer.ClampRange(r, m.buf.LineCount(), m.lineLenInt)
	return clamped
}

// ValidateRange validates both endpoints via the relaxed position
// validator, then adjusts for surrogate context: if only Start lies
// inside a pair, it moves back by one; only End, it moves forward by
// one; both, the range expands outward; an empty range inside a pair
// shifts left by one rather than expanding.
func (m *TextModel) ValidateRange(r buffer.Range) buffer.Range {
	r = m.validateRangeRelaxed(r)
	r = buffer.NormalizeRange(r)

	startLine, ok := m.buf.LineContent(r.Start.Line)
	if !ok {
		return r
	}
	endLine := startLine
	if r.End.Line != r.Start.Line {
		endLine, ok = m.buf.LineContent(r.End.Line)
		if !ok {
			return r
		}
	}

	startUnits := iutf16.Units(startLine)
	endUnits := iutf16.Units(endLine)
	startSplits := iutf16.SplitsSurrogate(startUnits, r.Start.Column-1)
	endSplits := iutf16.SplitsSurrogate(endUnits, r.End.Column-1)

	if r.IsEmpty() && startSplits {
		shifted := buffer.Position{Line: r.Start.Line, Column: r.Start.Column - 1}
		return buffer.Range{Start: shifted, End: shifted}
	}

	switch {
	case startSplits && endSplits:
		r.Start.Column--
		r.End.Column++
	case startSplits:
		r.Start.Column--
	case endSplits:
		r.End.Column++
	}
	return r
}

func (m *TextModel) lineLenInt(line int) int {
	n, _ := m.buf.LineLength(line)
	return n
}
