package model

import (
	"regexp"
	"strings"

	"github.com/quillbuf/coretext/buffer"
	"github.com/quillbuf/coretext/langconf"
	iutf16 "github.com/quillbuf/coretext/internal/utf16"
)

// defaultMatchLimit is findMatches's result cap when the caller supplies
// none.
const defaultMatchLimit = 999

// maxBracketScanUnits bounds how far matchBracket/findPrevBracket/
// findNextBracket will scan before giving up, so a pathological unmatched
// bracket cannot turn a lookup into a full-buffer walk.
const maxBracketScanUnits = 200_000

// FindMatches searches searchRange for searchString, returning at most
// limit ranges (defaultMatchLimit if limit <= 0).
func (m *TextModel) FindMatches(searchString string, searchRange buffer.Range, isRegex, matchCase, wholeWord bool, limit int) ([]buffer.Range, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, err
	}
	if searchString == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultMatchLimit
	}
	re, err := compileSearch(searchString, isRegex, matchCase, wholeWord)
	if err != nil {
		return nil, invalidArgument("search-pattern", searchString)
	}

	r := m.ValidateRange(searchRange)
	text, _ := m.buf.GetValueInRange(r, buffer.EOLPreferenceLF)
	baseOffset, _ := m.buf.GetOffsetAt(r.Start)

	var out []buffer.Range
	for _, idx := range re.FindAllStringIndex(text, -1) {
		if len(out) >= limit {
			break
		}
		startUnits := iutf16.Len(text[:idx[0]])
		endUnits := iutf16.Len(text[:idx[1]])
		start, ok1 := m.buf.GetPositionAt(baseOffset + startUnits)
		end, ok2 := m.buf.GetPositionAt(baseOffset + endUnits)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, buffer.Range{Start: start, End: end})
	}
	return out, nil
}

func compileSearch(searchString string, isRegex, matchCase, wholeWord bool) (*regexp.Regexp, error) {
	pattern := searchString
	if !isRegex {
		pattern = regexp.QuoteMeta(pattern)
	}
	if wholeWord {
		pattern = `\b(?:` + pattern + `)\b`
	}
	if !matchCase {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// FindNextMatch returns the first match starting at or after fromPosition,
// wrapping around to the start of the buffer if none is found after it.
func (m *TextModel) FindNextMatch(searchString string, fromPosition buffer.Position, isRegex, matchCase, wholeWord bool) (buffer.Range, bool, error) {
	full, err := m.wholeBufferMatches(searchString, isRegex, matchCase, wholeWord)
	if err != nil || len(full) == 0 {
		return buffer.Range{}, false, err
	}
	from := m.ValidatePosition(fromPosition)
	for _, r := range full {
		if buffer.ComparePosition(r.Start, from) >= 0 {
			return r, true, nil
		}
	}
	return full[0], true, nil
}

// FindPreviousMatch returns the first match ending at or before
// fromPosition, scanning backward, wrapping to the last match if none
// precede it.
func (m *TextModel) FindPreviousMatch(searchString string, fromPosition buffer.Position, isRegex, matchCase, wholeWord bool) (buffer.Range, bool, error) {
	full, err := m.wholeBufferMatches(searchString, isRegex, matchCase, wholeWord)
	if err != nil || len(full) == 0 {
		return buffer.Range{}, false, err
	}
	from := m.ValidatePosition(fromPosition)
	for i := len(full) - 1; i >= 0; i-- {
		if buffer.ComparePosition(full[i].End, from) <= 0 {
			return full[i], true, nil
		}
	}
	return full[len(full)-1], true, nil
}

func (m *TextModel) wholeBufferMatches(searchString string, isRegex, matchCase, wholeWord bool) ([]buffer.Range, error) {
	lineCount := m.buf.LineCount()
	maxCol, _ := m.buf.LineMaxColumn(lineCount)
	whole := buffer.Range{Start: buffer.Position{Line: 1, Column: 1}, End: buffer.Position{Line: lineCount, Column: maxCol}}
	return m.FindMatches(searchString, whole, isRegex, matchCase, wholeWord, 0)
}

// BracketInfo is one bracket character found by FindPrevBracket/FindNextBracket.
type BracketInfo struct {
	Range  buffer.Range
	IsOpen bool
}

func matchesAt(units []uint16, idx int, pattern []uint16) bool {
	if idx < 0 || idx+len(pattern) > len(units) {
		return false
	}
	for i, u := range pattern {
		if units[idx+i] != u {
			return false
		}
	}
	return true
}

func (m *TextModel) tokenTypeAt(lineNumber, column int) string {
	lt, err := m.GetLineTokens(lineNumber)
	if err != nil {
		return ""
	}
	typ := ""
	for _, t := range lt.Tokens {
		if t.StartColumn <= column {
			typ = t.Type
		} else {
			break
		}
	}
	return typ
}

func ignoreBracketsInToken(tokenType string) bool {
	return strings.Contains(tokenType, "comment") || strings.Contains(tokenType, "string") || strings.Contains(tokenType, "regex")
}

// MatchBracket finds the bracket at or immediately before pos and returns
// its [open, close] ranges, or ok=false if pos is not on a bracket the
// language configuration recognizes.
func (m *TextModel) MatchBracket(pos buffer.Position) ([]buffer.Range, bool, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, false, err
	}
	pos = m.ValidatePosition(pos)
	cfg, ok := m.langReg.Get(m.languageID)
	if !ok || len(cfg.Brackets) == 0 {
		return nil, false, nil
	}
	lineText, ok := m.buf.LineContent(pos.Line)
	if !ok {
		return nil, false, nil
	}
	units := iutf16.Units(lineText)

	for _, delta := range [2]int{0, -1} {
		idx := pos.Column - 1 + delta
		for _, pair := range cfg.Brackets {
			if r, found := m.tryMatchBracketAt(pos.Line, idx, units, pair); found {
				return r, true, nil
			}
		}
	}
	return nil, false, nil
}

func (m *TextModel) tryMatchBracketAt(line, idx int, units []uint16, pair langconf.BracketPair) ([]buffer.Range, bool) {
	openUnits, closeUnits := iutf16.Units(pair.Open), iutf16.Units(pair.Close)

	if matchesAt(units, idx, openUnits) {
		if ignoreBracketsInToken(m.tokenTypeAt(line, idx+1)) {
			return nil, false
		}
		openRange := buffer.Range{Start: buffer.Position{Line: line, Column: idx + 1}, End: buffer.Position{Line: line, Column: idx + 1 + len(openUnits)}}
		if closeRange, found := m.findMatchingBracketDown(pair, line, idx+len(openUnits)); found {
			return []buffer.Range{openRange, closeRange}, true
		}
		return nil, false
	}
	if matchesAt(units, idx, closeUnits) {
		if ignoreBracketsInToken(m.tokenTypeAt(line, idx+1)) {
			return nil, false
		}
		closeRange := buffer.Range{Start: buffer.Position{Line: line, Column: idx + 1}, End: buffer.Position{Line: line, Column: idx + 1 + len(closeUnits)}}
		if openRange, found := m.findMatchingBracketUp(pair, line, idx); found {
			return []buffer.Range{openRange, closeRange}, true
		}
		return nil, false
	}
	return nil, false
}

func (m *TextModel) findMatchingBracketDown(pair langconf.BracketPair, line, col0 int) (buffer.Range, bool) {
	openUnits, closeUnits := iutf16.Units(pair.Open), iutf16.Units(pair.Close)
	depth := 1
	scanned := 0
	for l, lineCount := line, m.buf.LineCount(); l <= lineCount; l++ {
		text, ok := m.buf.LineContent(l)
		if !ok {
			break
		}
		units := iutf16.Units(text)
		start := 0
		if l == line {
			start = col0
		}
		for i := start; i < len(units); i++ {
			scanned++
			if scanned > maxBracketScanUnits {
				return buffer.Range{}, false
			}
			switch {
			case matchesAt(units, i, openUnits) && !ignoreBracketsInToken(m.tokenTypeAt(l, i+1)):
				depth++
				i += len(openUnits) - 1
			case matchesAt(units, i, closeUnits) && !ignoreBracketsInToken(m.tokenTypeAt(l, i+1)):
				depth--
				if depth == 0 {
					return buffer.Range{Start: buffer.Position{Line: l, Column: i + 1}, End: buffer.Position{Line: l, Column: i + 1 + len(closeUnits)}}, true
				}
				i += len(closeUnits) - 1
			}
		}
	}
	return buffer.Range{}, false
}

func (m *TextModel) findMatchingBracketUp(pair langconf.BracketPair, line, col0 int) (buffer.Range, bool) {
	openUnits, closeUnits := iutf16.Units(pair.Open), iutf16.Units(pair.Close)
	depth := 1
	scanned := 0
	for l := line; l >= 1; l-- {
		text, ok := m.buf.LineContent(l)
		if !ok {
			break
		}
		units := iutf16.Units(text)
		end := len(units)
		if l == line {
			end = col0
		}
		for i := end - 1; i >= 0; i-- {
			scanned++
			if scanned > maxBracketScanUnits {
				return buffer.Range{}, false
			}
			switch {
			case matchesAt(units, i, closeUnits) && !ignoreBracketsInToken(m.tokenTypeAt(l, i+1)):
				depth++
			case matchesAt(units, i, openUnits) && !ignoreBracketsInToken(m.tokenTypeAt(l, i+1)):
				depth--
				if depth == 0 {
					return buffer.Range{Start: buffer.Position{Line: l, Column: i + 1}, End: buffer.Position{Line: l, Column: i + 1 + len(openUnits)}}, true
				}
			}
		}
	}
	return buffer.Range{}, false
}

// FindNextBracket returns the first bracket character at or after pos,
// regardless of whether it has a match.
func (m *TextModel) FindNextBracket(pos buffer.Position) (BracketInfo, bool, error) {
	if err := m.checkDisposed(); err != nil {
		return BracketInfo{}, false, err
	}
	pos = m.ValidatePosition(pos)
	cfg, ok := m.langReg.Get(m.languageID)
	if !ok || len(cfg.Brackets) == 0 {
		return BracketInfo{}, false, nil
	}
	scanned := 0
	for l, lineCount := pos.Line, m.buf.LineCount(); l <= lineCount; l++ {
		text, ok := m.buf.LineContent(l)
		if !ok {
			break
		}
		units := iutf16.Units(text)
		start := 0
		if l == pos.Line {
			start = pos.Column - 1
		}
		for i := start; i < len(units); i++ {
			scanned++
			if scanned > maxBracketScanUnits {
				return BracketInfo{}, false, nil
			}
			if info, found := matchAnyBracketAt(m, cfg, l, i, units); found {
				return info, true, nil
			}
		}
	}
	return BracketInfo{}, false, nil
}

// FindPrevBracket returns the first bracket character at or before pos,
// scanning backward, regardless of whether it has a match.
func (m *TextModel) FindPrevBracket(pos buffer.Position) (BracketInfo, bool, error) {
	if err := m.checkDisposed(); err != nil {
		return BracketInfo{}, false, err
	}
	pos = m.ValidatePosition(pos)
	cfg, ok := m.langReg.Get(m.languageID)
	if !ok || len(cfg.Brackets) == 0 {
		return BracketInfo{}, false, nil
	}
	scanned := 0
	for l := pos.Line; l >= 1; l-- {
		text, ok := m.buf.LineContent(l)
		if !ok {
			break
		}
		units := iutf16.Units(text)
		end := len(units)
		if l == pos.Line {
			end = pos.Column - 1
		}
		for i := end - 1; i >= 0; i-- {
			scanned++
			if scanned > maxBracketScanUnits {
				return BracketInfo{}, false, nil
			}
			if info, found := matchAnyBracketAt(m, cfg, l, i, units); found {
				return info, true, nil
			}
		}
	}
	return BracketInfo{}, false, nil
}

func matchAnyBracketAt(m *TextModel, cfg langconf.Config, line, idx int, units []uint16) (BracketInfo, bool) {
	if ignoreBracketsInToken(m.tokenTypeAt(line, idx+1)) {
		return BracketInfo{}, false
	}
	for _, pair := range cfg.Brackets {
		openUnits, closeUnits := iutf16.Units(pair.Open), iutf16.Units(pair.Close)
		if matchesAt(units, idx, openUnits) {
			return BracketInfo{Range: buffer.Range{Start: buffer.Position{Line: line, Column: idx + 1}, End: buffer.Position{Line: line, Column: idx + 1 + len(openUnits)}}, IsOpen: true}, true
		}
		if matchesAt(units, idx, closeUnits) {
			return BracketInfo{Range: buffer.Range{Start: buffer.Position{Line: line, Column: idx + 1}, End: buffer.Position{Line: line, Column: idx + 1 + len(closeUnits)}}, IsOpen: false}, true
		}
	}
	return BracketInfo{}, false
}

// GetWordAtPosition returns the word regex match covering pos's column, if
// any. The language-configured word regex runs against the whole line,
// since this store tracks a single language id per model rather than
// per-token language spans.
func (m *TextModel) GetWordAtPosition(pos buffer.Position) (buffer.Range, string, bool, error) {
	if err := m.checkDisposed(); err != nil {
		return buffer.Range{}, "", false, err
	}
	pos = m.ValidatePosition(pos)
	cfg, ok := m.langReg.Get(m.languageID)
	if !ok || cfg.WordRegex == nil {
		return buffer.Range{}, "", false, nil
	}
	lineText, ok := m.buf.LineContent(pos.Line)
	if !ok {
		return buffer.Range{}, "", false, nil
	}
	col0 := pos.Column - 1

	for _, idx := range cfg.WordRegex.FindAllStringIndex(lineText, -1) {
		startUnits := iutf16.Len(lineText[:idx[0]])
		endUnits := iutf16.Len(lineText[:idx[1]])
		if startUnits <= col0 && col0 <= endUnits {
			word := lineText[idx[0]:idx[1]]
			r := buffer.Range{Start: buffer.Position{Line: pos.Line, Column: startUnits + 1}, End: buffer.Position{Line: pos.Line, Column: endUnits + 1}}
			return r, word, true, nil
		}
	}
	return buffer.Range{}, "", false, nil
}

// GetWordUntilPosition is GetWordAtPosition truncated to end at pos.
func (m *TextModel) GetWordUntilPosition(pos buffer.Position) (buffer.Range, string, error) {
	r, word, ok, err := m.GetWordAtPosition(pos)
	if err != nil || !ok {
		return buffer.Range{}, "", err
	}
	pos = m.ValidatePosition(pos)
	if buffer.ComparePosition(pos, r.End) < 0 {
		rel := pos.Column - r.Start.Column
		word = iutf16.SliceUnits(word, 0, rel)
		r.End = pos
	}
	return r, word, nil
}

// GetLinesIndentGuides computes one indent-guide level per line in
// [startLine, endLine]. Blank lines inherit a guide by sandwiching between
// the nearest non-blank lines above and below; a language marked OffSide
// derives a blank line's guide from the line below alone.
func (m *TextModel) GetLinesIndentGuides(startLine, endLine int) ([]int, error) {
	if err := m.checkDisposed(); err != nil {
		return nil, err
	}
	lineCount := m.buf.LineCount()
	if startLine < 1 || endLine < startLine || endLine > lineCount {
		return nil, invalidArgument("line-range", [2]int{startLine, endLine})
	}

	offSide := false
	if cfg, ok := m.langReg.Get(m.languageID); ok {
		offSide = cfg.OffSide
	}
	tabSize := m.opts.TabSize

	out := make([]int, endLine-startLine+1)
	for line := startLine; line <= endLine; line++ {
		level, _, blank := m.lineIndent(line, tabSize)
		if !blank {
			out[line-startLine] = level
			continue
		}

		aboveLevel, haveAbove := -1, false
		for l := line - 1; l >= 1; l-- {
			lvl, _, b := m.lineIndent(l, tabSize)
			if !b {
				aboveLevel, haveAbove = lvl, true
				break
			}
		}
		belowLevel, belowExpanded, haveBelow := -1, 0, false
		for l := line + 1; l <= lineCount; l++ {
			lvl, exp, b := m.lineIndent(l, tabSize)
			if !b {
				belowLevel, belowExpanded, haveBelow = lvl, exp, true
				break
			}
		}

		switch {
		case !haveAbove && !haveBelow:
			out[line-startLine] = 0
		case !haveAbove:
			out[line-startLine] = belowLevel
		case !haveBelow:
			out[line-startLine] = aboveLevel
		case offSide:
			out[line-startLine] = ceilDiv(belowExpanded, tabSize)
		default:
			out[line-startLine] = minInt(aboveLevel, belowLevel)
		}
	}
	return out, nil
}

func (m *TextModel) lineIndent(line, tabSize int) (level, expanded int, blank bool) {
	text, _ := m.buf.LineContent(line)
	if strings.TrimSpace(text) == "" {
		return 0, 0, true
	}
	for _, r := range text {
		switch r {
		case ' ':
			expanded++
		case '\t':
			expanded += tabSize - (expanded % tabSize)
		default:
			return expanded / tabSize, expanded, false
		}
	}
	return expanded / tabSize, expanded, false
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
