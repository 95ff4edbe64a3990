package buffer

import (
	"strings"

	iutf16 "github.com/quillbuf/coretext/internal/utf16"
)

// EOLSequence is the end-of-line sequence used to reconstruct a buffer's raw
// text. A buffer stores exactly one EOLSequence for its whole lifetime
// (until SetEOL is called); line contents never carry their terminator.
type EOLSequence string

const (
	LF   EOLSequence = "\n"
	CRLF EOLSequence = "\r\n"
)

func (e EOLSequence) units() int {
	if e == CRLF {
		return 2
	}
	return 1
}

// EOLPreference selects which line terminator GetValueInRange reconstructs
// with.
type EOLPreference int

const (
	// EOLTextDefined reconstructs using the buffer's own EOL.
	EOLTextDefined EOLPreference = iota
	EOLPreferenceLF
	EOLPreferenceCRLF
)

// Options configures buffer construction.
type Options struct {
	// MaxSyncBytes, when non-zero, is advisory only: neither the buffer
	// nor the model facade enforces it, and the buffer never refuses to
	// hold text.
	MaxSyncBytes int
}

// Buffer is the text buffer: line contents plus a single EOL sequence.
// It has no notion of cursor, selection, or decorations — those are the
// concern of higher components.
type Buffer struct {
	lines []string
	eol   EOLSequence
	bom   bool
}

// New constructs a Buffer from raw text, detecting a leading byte-order-mark
// rune and the predominant EOL sequence (CRLF if any "\r\n" occurs in text,
// LF otherwise).
func New(text string, _ Options) *Buffer {
	bom := false
	if strings.HasPrefix(text, "\uFEFF") {
		bom = true
		text = strings.TrimPrefix(text, "\uFEFF")
	}
	eol := detectEOL(text)
	return &Buffer{lines: splitLines(text), eol: eol, bom: bom}
}

func detectEOL(text string) EOLSequence {
	if strings.Contains(text, "\r\n") {
		return CRLF
	}
	return LF
}

// splitLines normalizes CRLF/CR/LF boundaries into logical lines. The
// buffer's single EOLSequence, not the input's mix of terminators, is used
// on reconstruction.
func splitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Split(normalized, "\n")
}

// LineCount returns the number of lines. Always >= 1.
func (b *Buffer) LineCount() int { return len(b.lines) }

// LineContent returns the content of line (1-based), without its EOL.
func (b *Buffer) LineContent(line int) (string, bool) {
	if line < 1 || line > len(b.lines) {
		return "", false
	}
	return b.lines[line-1], true
}

// LineLength returns the UTF-16 code-unit length of line (1-based).
func (b *Buffer) LineLength(line int) (int, bool) {
	s, ok := b.LineContent(line)
	if !ok {
		return 0, false
	}
	return iutf16.Len(s), true
}

// LineMaxColumn returns LineLength(line)+1, the largest valid column on
// line.
func (b *Buffer) LineMaxColumn(line int) (int, bool) {
	n, ok := b.LineLength(line)
	if !ok {
		return 0, false
	}
	return n + 1, true
}

// EOL returns the buffer's line terminator.
func (b *Buffer) EOL() EOLSequence { return b.eol }

// BOM reports whether the buffer's source text carried a byte-order mark.
func (b *Buffer) BOM() bool { return b.bom }

// SetEOL rewrites the buffer's EOL sequence. It is a NoOp (returns false) if
// eol already matches; otherwise it returns true. Emitting the dedicated
// EOLChanged raw event is the model facade's responsibility.
func (b *Buffer) SetEOL(eol EOLSequence) bool {
	if eol != LF && eol != CRLF {
		return false
	}
	if b.eol == eol {
		return false
	}
	b.eol = eol
	return true
}

// Text returns the full buffer contents, lines joined by the buffer's EOL.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, string(b.eol))
}

// SetValue replaces the buffer wholesale, re-detecting BOM and EOL exactly
// as New does. It returns the previous full text so callers can compute a
// reverse edit.
func (b *Buffer) SetValue(text string) string {
	prev := b.Text()
	bom := false
	if strings.HasPrefix(text, "\uFEFF") {
		bom = true
		text = strings.TrimPrefix(text, "\uFEFF")
	}
	b.lines = splitLines(text)
	b.eol = detectEOL(text)
	b.bom = bom
	return prev
}

// docLength returns the buffer's total length in UTF-16 code units,
// counting EOL sequences between lines.
func (b *Buffer) docLength() int {
	total := 0
	for i, l := range b.lines {
		total += iutf16.Len(l)
		if i < len(b.lines)-1 {
			total += b.eol.units()
		}
	}
	return total
}

// GetOffsetAt maps a valid position to a 0-based UTF-16 code-unit offset
// from the start of the buffer, counting EOL sequences.
func (b *Buffer) GetOffsetAt(pos Position) (int, bool) {
	if pos.Line < 1 || pos.Line > len(b.lines) {
		return 0, false
	}
	maxCol, _ := b.LineMaxColumn(pos.Line)
	if pos.Column < 1 || pos.Column > maxCol {
		return 0, false
	}

	offset := 0
	for l := 1; l < pos.Line; l++ {
		n, _ := b.LineLength(l)
		offset += n + b.eol.units()
	}
	offset += pos.Column - 1
	return offset, true
}

// GetPositionAt maps a 0-based UTF-16 code-unit offset to a position.
func (b *Buffer) GetPositionAt(offset int) (Position, bool) {
	if offset < 0 || offset > b.docLength() {
		return Position{}, false
	}

	remaining := offset
	for l := 1; l <= len(b.lines); l++ {
		lineLen, _ := b.LineLength(l)
		if remaining <= lineLen {
			return Position{Line: l, Column: remaining + 1}, true
		}
		remaining -= lineLen
		if l < len(b.lines) {
			eolUnits := b.eol.units()
			if remaining < eolUnits {
				// Offset lands inside the EOL sequence itself; snap to the
				// start of the next line rather than split the terminator.
				return Position{Line: l + 1, Column: 1}, true
			}
			remaining -= eolUnits
		}
	}
	last := len(b.lines)
	lastLen, _ := b.LineLength(last)
	return Position{Line: last, Column: lastLen + 1}, true
}

// GetRangeAt returns the range spanning length code units starting at
// offset.
func (b *Buffer) GetRangeAt(offset, length int) (Range, bool) {
	start, ok := b.GetPositionAt(offset)
	if !ok {
		return Range{}, false
	}
	end, ok := b.GetPositionAt(offset + length)
	if !ok {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// GetValueInRange returns the text spanned by r, joined with eolPref (or the
// buffer's own EOL under EOLTextDefined).
func (b *Buffer) GetValueInRange(r Range, eolPref EOLPreference) (string, bool) {
	r = NormalizeRange(r)
	if r.Start.Line < 1 || r.End.Line > len(b.lines) {
		return "", false
	}
	if r.IsEmpty() {
		if _, ok := b.GetOffsetAt(r.Start); !ok {
			return "", false
		}
		return "", true
	}

	sep := string(b.eol)
	switch eolPref {
	case EOLPreferenceLF:
		sep = "\n"
	case EOLPreferenceCRLF:
		sep = "\r\n"
	}

	if r.Start.Line == r.End.Line {
		line, ok := b.LineContent(r.Start.Line)
		if !ok {
			return "", false
		}
		maxCol, _ := b.LineMaxColumn(r.Start.Line)
		if r.Start.Column < 1 || r.Start.Column > maxCol || r.End.Column < 1 || r.End.Column > maxCol {
			return "", false
		}
		return iutf16.SliceUnits(line, r.Start.Column-1, r.End.Column-1), true
	}

	var sb strings.Builder
	for line := r.Start.Line; line <= r.End.Line; line++ {
		content, ok := b.LineContent(line)
		if !ok {
			return "", false
		}
		switch line {
		case r.Start.Line:
			sb.WriteString(iutf16.SliceUnits(content, r.Start.Column-1, iutf16.Len(content)))
		case r.End.Line:
			sb.WriteString(iutf16.SliceUnits(content, 0, r.End.Column-1))
		default:
			sb.WriteString(content)
		}
		if line != r.End.Line {
			sb.WriteString(sep)
		}
	}
	return sb.String(), true
}
