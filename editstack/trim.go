package editstack

import (
	"strings"

	"github.com/quillbuf/coretext/buffer"
)

// NearCursors implements the "near cursors" gate: trimming runs only if,
// for every saved selection, at least one incoming edit's
// line span overlaps that selection's line span. Vacuously true when
// there are no saved selections.
func NearCursors(savedSelections []buffer.Range, incoming []buffer.TextEdit) bool {
	for _, sel := range savedSelections {
		selLo, selHi := lineSpan(sel)
		overlaps := false
		for _, e := range incoming {
			editLo, editHi := lineSpan(e.Range)
			if editLo <= selHi && editHi >= selLo {
				overlaps = true
				break
			}
		}
		if !overlaps {
			return false
		}
	}
	return true
}

func lineSpan(r buffer.Range) (lo, hi int) {
	r = buffer.NormalizeRange(r)
	return r.Start.Line, r.End.Line
}

// TrimEdits computes the edits that should be prepended to an incoming
// batch to clear lines remembered from a prior edit as whitespace-only.
// A remembered line is skipped if an incoming edit overlaps it, unless
// that edit only inserts text starting with a newline at the line's
// column-end.
func TrimEdits(pendingLines []int, incoming []buffer.TextEdit, savedSelections []buffer.Range, lineMaxColumn func(line int) (int, bool)) []buffer.TextEdit {
	if len(pendingLines) == 0 {
		return nil
	}
	if !NearCursors(savedSelections, incoming) {
		return nil
	}

	var out []buffer.TextEdit
	for _, line := range pendingLines {
		maxCol, ok := lineMaxColumn(line)
		if !ok || maxCol <= 1 {
			continue
		}
		if editTouchesLine(line, maxCol, incoming) {
			continue
		}
		out = append(out, buffer.TextEdit{
			Range: buffer.Range{
				Start: buffer.Position{Line: line, Column: 1},
				End:   buffer.Position{Line: line, Column: maxCol},
			},
			Text: "",
		})
	}
	return out
}

func editTouchesLine(line, maxCol int, incoming []buffer.TextEdit) bool {
	for _, e := range incoming {
		lo, hi := lineSpan(e.Range)
		if line < lo || line > hi {
			continue
		}
		// An empty-range insert at this line's column-end whose text
		// starts with a newline does not count as touching it.
		if lo == hi && lo == line && e.Range.Start == e.Range.End && e.Range.Start.Column == maxCol && strings.HasPrefix(e.Text, "\n") {
			continue
		}
		return true
	}
	return false
}
