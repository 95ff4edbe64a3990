package buffer

import (
	"strings"

	iutf16 "github.com/quillbuf/coretext/internal/utf16"
)

// ContentChange is the atomic delta fed to decorations (C3) and the
// line-tokens store (C4) for one input edit operation, in the coordinates
// of the buffer state immediately before the batch that contains it.
type ContentChange struct {
	Range            Range
	RangeOffset      int
	RangeLength      int
	Text             string
	ForceMoveMarkers bool
}

// replaceRange mutates b.lines in place, replacing the text spanned by r
// with text. It returns the deleted text and the range the inserted text
// now occupies (in the buffer state after this single replacement), or
// changed=false if the edit is a no-op: an empty range with empty text, or
// text equal to the text it replaces.
func (b *Buffer) replaceRange(r Range, text string) (rangeAfter Range, deletedText string, changed bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLenInt))
	if r.IsEmpty() && text == "" {
		return r, "", false
	}

	startLine, startCol := r.Start.Line, r.Start.Column
	endLine, endCol := r.End.Line, r.End.Column

	deletedText, _ = b.GetValueInRange(r, EOLPreferenceLF)
	normalizedText := strings.ReplaceAll(text, "\r\n", "\n")
	normalizedText = strings.ReplaceAll(normalizedText, "\r", "\n")
	if deletedText == normalizedText {
		return r, deletedText, false
	}

	prefixLine := b.lines[startLine-1]
	suffixLine := b.lines[endLine-1]
	prefix := iutf16.SliceUnits(prefixLine, 0, startCol-1)
	suffix := iutf16.SliceUnits(suffixLine, endCol-1, iutf16.Len(suffixLine))

	parts := strings.Split(normalizedText, "\n")

	var repl []string
	var rangeAfterEnd Position
	if len(parts) == 1 {
		repl = []string{prefix + parts[0] + suffix}
		rangeAfterEnd = Position{Line: startLine, Column: startCol + iutf16.Len(parts[0])}
	} else {
		repl = make([]string, 0, len(parts))
		repl = append(repl, prefix+parts[0])
		repl = append(repl, parts[1:len(parts)-1]...)
		last := parts[len(parts)-1]
		repl = append(repl, last+suffix)
		rangeAfterEnd = Position{Line: startLine + len(parts) - 1, Column: iutf16.Len(last) + 1}
	}

	before := append([]string(nil), b.lines[:startLine-1]...)
	after := append([]string(nil), b.lines[endLine:]...)
	out := make([]string, 0, len(before)+len(repl)+len(after))
	out = append(out, before...)
	out = append(out, repl...)
	out = append(out, after...)
	if len(out) == 0 {
		out = []string{""}
	}
	b.lines = out

	return Range{Start: r.Start, End: rangeAfterEnd}, deletedText, true
}

func (b *Buffer) lineLenInt(line int) int {
	n, _ := b.LineLength(line)
	return n
}
