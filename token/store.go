package token

// PlaceholderTokenType is the single token type returned by GetTokens for
// a line that hasn't been tokenized yet.
const PlaceholderTokenType = "source"

type cachedLine struct {
	tokens []Token
	state  State
	valid  bool
}

// Store is the line-tokens store: a per-line cache tokenized lazily and
// incrementally from a monotone invalidation frontier.
type Store struct {
	languageID string
	tokenizer  Tokenizer

	lines []cachedLine

	// invalidLineStartIndex is the 0-based index of the first line whose
	// tokens are stale (or len(lines) if none are).
	invalidLineStartIndex int

	tooLarge bool
}

// NewStore constructs a store for a buffer of lineCount lines and
// totalBytes size, applying the too-large guard at construction time
// using the package default thresholds.
func NewStore(languageID string, tokenizer Tokenizer, lineCount, totalBytes int) *Store {
	return NewStoreWithLimits(languageID, tokenizer, lineCount, totalBytes, tooLargeBytes, tooLargeLines)
}

// NewStoreWithLimits is NewStore with caller-supplied too-large thresholds,
// used by the facade to apply its own configured construction limits
// instead of the package defaults.
func NewStoreWithLimits(languageID string, tokenizer Tokenizer, lineCount, totalBytes, tooLargeBytesLimit, tooLargeLinesLimit int) *Store {
	s := &Store{
		languageID: languageID,
		tokenizer:  tokenizer,
		tooLarge:   totalBytes > tooLargeBytesLimit || lineCount > tooLargeLinesLimit,
	}
	s.reset(lineCount)
	return s
}

func (s *Store) reset(lineCount int) {
	s.lines = make([]cachedLine, lineCount)
	if s.tooLarge {
		s.invalidLineStartIndex = lineCount
		return
	}
	s.invalidLineStartIndex = 0
}

// TooLarge reports whether tokenization is permanently disabled for this
// store's buffer.
func (s *Store) TooLarge() bool { return s.tooLarge }

// FrontierLine returns the 0-based index of the first line whose tokens
// are stale, used by the facade to report the range a tokenization pass
// just covered.
func (s *Store) FrontierLine() int { return s.invalidLineStartIndex }

// HasLinesToTokenize reports whether any line still needs tokenizing.
func (s *Store) HasLinesToTokenize(lineCount int) bool {
	if s.tooLarge {
		return false
	}
	return s.invalidLineStartIndex < lineCount
}

// IsCheapToTokenize reports whether line (0-based) sits close enough to
// the invalidation frontier to tokenize synchronously on the read path.
func (s *Store) IsCheapToTokenize(line int) bool {
	if s.tooLarge {
		return false
	}
	return line-s.invalidLineStartIndex <= cheapWindow
}

// ApplyEdits reconciles the cache with a single atomic content change
// spanning [startLine, endLine] (0-based, inclusive) replaced by
// lineTextsAfter, marking everything from startLine onward invalid.
func (s *Store) ApplyEdits(startLine, endLine int, lineTextsAfter []string) {
	if s.tooLarge {
		return
	}
	inserted := len(lineTextsAfter)

	blanks := make([]cachedLine, inserted)
	tail := append([]cachedLine(nil), s.lines[endLine+1:]...)
	s.lines = append(s.lines[:startLine], append(blanks, tail...)...)

	// At or after the frontier every line is already stale, so the
	// frontier only ever moves back to startLine.
	if startLine < s.invalidLineStartIndex {
		s.invalidLineStartIndex = startLine
	}
}

// TokenizeOneLine tokenizes the line at the invalidation frontier, if
// any, using getLine to fetch line text. It returns false if there was
// nothing to do.
func (s *Store) TokenizeOneLine(getLine func(lineIndex int) string, lineCount int) bool {
	if !s.HasLinesToTokenize(lineCount) {
		return false
	}
	idx := s.invalidLineStartIndex
	state := s.tokenizer.InitialState(s.languageID)
	if idx > 0 && s.lines[idx-1].valid {
		state = s.lines[idx-1].state
	}
	toks, endState := s.tokenizer.LineTokens(s.languageID, getLine(idx), state)
	s.lines[idx] = cachedLine{tokens: toks, state: endState, valid: true}
	s.invalidLineStartIndex++

	// If the next line was already valid and its carried-in state hasn't
	// changed, the frontier can stop advancing early — but only when the
	// next line actually recorded what state it started from being
	// unaffected; conservatively this still requires re-tokenization once
	// the frontier reaches it rather than attempting speculative reuse.
	return true
}

// UpdateTokensUntilLine synchronously tokenizes every line up to and
// including lineNumber (0-based), used by forced tokenization.
func (s *Store) UpdateTokensUntilLine(getLine func(int) string, lineCount, lineNumber int) {
	if s.tooLarge {
		return
	}
	if lineNumber >= lineCount {
		lineNumber = lineCount - 1
	}
	for s.invalidLineStartIndex <= lineNumber && s.HasLinesToTokenize(lineCount) {
		s.TokenizeOneLine(getLine, lineCount)
	}
}

// GetTokens returns cached tokens for lineIndex (0-based) if valid,
// otherwise a single placeholder token spanning the whole line.
func (s *Store) GetTokens(lineIndex int, lineText string) LineTokens {
	if s.tooLarge || lineIndex < 0 || lineIndex >= len(s.lines) || !s.lines[lineIndex].valid {
		return LineTokens{Tokens: []Token{{StartColumn: 1, Type: PlaceholderTokenType}}}
	}
	return LineTokens{Tokens: append([]Token(nil), s.lines[lineIndex].tokens...)}
}

// SetLanguage discards and rebuilds the store for a new language id,
// invalidating every cached line. It returns the [1, lineCount] range a
// tokens-changed event should cover.
func (s *Store) SetLanguage(languageID string, tokenizer Tokenizer, lineCount int) (fromLine, toLine int) {
	s.languageID = languageID
	s.tokenizer = tokenizer
	s.reset(lineCount)
	return 1, lineCount
}

// WarmUpLimit returns how many lines the initial background pass should
// tokenize before yielding to normal scheduling.
func WarmUpLimit() int { return warmUpLines }
