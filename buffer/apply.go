package buffer

import (
	"sort"
	"strings"
)

// RawChangeKind tags a line-level raw change event.
type RawChangeKind int

const (
	RawLineChanged RawChangeKind = iota
	RawLinesInserted
	RawLinesDeleted
	RawEOLChanged
)

// RawChange is a line-level event suitable for a client mirror that keeps
// its own copy of the buffer's lines: applying the raw changes of a batch,
// in order, reproduces the same line array the real buffer now holds.
//
// FromLineNumber/ToLineNumber are 1-based and inclusive, expressed in the
// line numbering a mirror holds when it reaches that raw change: the
// batch's earlier raw changes applied, its later ones not yet. Since the
// changes are emitted in ascending position order, RawLinesInserted and
// RawLineChanged numbers match the buffer state after the whole batch, and
// RawLinesDeleted numbers match the state just before that edit's lines
// are removed (for a single-edit batch, the state before the batch).
type RawChange struct {
	Kind           RawChangeKind
	FromLineNumber int
	ToLineNumber   int
	Lines          []string // final content, populated for Changed/Inserted only
}

// ApplyResult is the return value of ApplyEdits.
type ApplyResult struct {
	RawChanges                   []RawChange
	Changes                      []ContentChange
	ReverseEdits                 []TextEdit
	TrimAutoWhitespaceLineNumbers []int
}

// ApplyEdits applies a batch of non-overlapping edits. Ranges are
// interpreted against the buffer state before the batch; ops may be
// given in any order. It returns the line-level raw changes, the atomic
// content changes, the reverse edits needed to undo the batch, and the
// lines left as trim-auto-whitespace candidates.
func (b *Buffer) ApplyEdits(ops []TextEdit, trimAutoWhitespace bool) ApplyResult {
	if len(ops) == 0 {
		return ApplyResult{}
	}

	type prepared struct {
		origIndex int
		edit      TextEdit
		offset    int
		length    int
	}

	prep := make([]prepared, len(ops))
	for i, e := range ops {
		r := NormalizeRange(ClampRange(e.Range, b.LineCount(), b.lineLenInt))
		off, _ := b.GetOffsetAt(r.Start)
		endOff, _ := b.GetOffsetAt(r.End)
		prep[i] = prepared{origIndex: i, edit: TextEdit{Range: r, Text: e.Text, ForceMoveMarkers: e.ForceMoveMarkers}, offset: off, length: endOff - off}
	}

	changes := make([]ContentChange, len(ops))
	for _, p := range prep {
		changes[p.origIndex] = ContentChange{
			Range:            p.edit.Range,
			RangeOffset:      p.offset,
			RangeLength:      p.length,
			Text:             p.edit.Text,
			ForceMoveMarkers: p.edit.ForceMoveMarkers,
		}
	}

	// Ascending order is used twice below for bookkeeping, never for
	// mutation: first to compute, for each edit, the cumulative line-count
	// shift contributed by every edit that starts before it (the offset
	// needed to express that edit's raw change in final, whole-batch-applied
	// line coordinates).
	ascending := append([]prepared(nil), prep...)
	sort.SliceStable(ascending, func(i, j int) bool {
		return ComparePosition(ascending[i].edit.Range.Start, ascending[j].edit.Range.Start) < 0
	})

	type span struct{ old, new int }
	spans := make(map[int]span, len(ascending))
	shiftBefore := make(map[int]int, len(ascending))
	cum := 0
	for _, p := range ascending {
		shiftBefore[p.origIndex] = cum
		oldSpan := p.edit.Range.End.Line - p.edit.Range.Start.Line + 1
		newSpan := countLines(p.edit.Text)
		spans[p.origIndex] = span{old: oldSpan, new: newSpan}
		cum += newSpan - oldSpan
	}

	// Mutate descending by range start, so earlier (smaller-position)
	// edits are applied last: every edit still pending when the current
	// one is mutated starts strictly after it, so the current edit's
	// pre-batch range is exactly where the buffer still has it, with no
	// running column/line correction needed.
	descending := append([]prepared(nil), prep...)
	sort.SliceStable(descending, func(i, j int) bool {
		return ComparePosition(descending[i].edit.Range.Start, descending[j].edit.Range.Start) > 0
	})

	type mutated struct {
		rangeAfter  Range
		deletedText string
		changed     bool
	}
	results := make(map[int]mutated, len(descending))
	for _, p := range descending {
		rangeAfter, deletedText, changed := b.replaceRange(p.edit.Range, p.edit.Text)
		results[p.origIndex] = mutated{rangeAfter: rangeAfter, deletedText: deletedText, changed: changed}
	}

	// Build the raw-change/reverse-edit records in ascending order, reading
	// line content only now that every edit in the batch has been applied
	// to the buffer — so a same-line neighbor mutated after this edit (in
	// the descending pass above) is already reflected, and no snapshot is
	// stale.
	var rawChanges []RawChange
	var reverseEdits []TextEdit
	trimSeen := map[int]bool{}
	var trimLines []int

	for _, p := range ascending {
		m := results[p.origIndex]
		if !m.changed {
			continue
		}
		reverseEdits = append(reverseEdits, TextEdit{Range: m.rangeAfter, Text: m.deletedText})

		sp := spans[p.origIndex]
		finalStartLine := p.edit.Range.Start.Line + shiftBefore[p.origIndex]

		finalLines := make([]string, sp.new)
		for i := 0; i < sp.new; i++ {
			finalLines[i], _ = b.LineContent(finalStartLine + i)
		}

		common := sp.old
		if sp.new < common {
			common = sp.new
		}
		rawChanges = append(rawChanges, RawChange{
			Kind:           RawLineChanged,
			FromLineNumber: finalStartLine,
			ToLineNumber:   finalStartLine + common - 1,
			Lines:          append([]string(nil), finalLines[:common]...),
		})
		switch {
		case sp.new > sp.old:
			rawChanges = append(rawChanges, RawChange{
				Kind:           RawLinesInserted,
				FromLineNumber: finalStartLine + common,
				ToLineNumber:   finalStartLine + sp.new - 1,
				Lines:          append([]string(nil), finalLines[common:]...),
			})
		case sp.old > sp.new:
			rawChanges = append(rawChanges, RawChange{
				Kind:           RawLinesDeleted,
				FromLineNumber: finalStartLine + common,
				ToLineNumber:   finalStartLine + sp.old - 1,
			})
		}

		if trimAutoWhitespace {
			for i, content := range finalLines {
				line := finalStartLine + i
				if content != "" && isAllWhitespace(content) && !trimSeen[line] {
					trimSeen[line] = true
					trimLines = append(trimLines, line)
				}
			}
		}
	}

	return ApplyResult{
		RawChanges:                    rawChanges,
		Changes:                       changes,
		ReverseEdits:                  reverseEdits,
		TrimAutoWhitespaceLineNumbers: trimLines,
	}
}

func countLines(text string) int {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Count(normalized, "\n") + 1
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
