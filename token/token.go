package token

// Token is one classified span within a line, starting at StartColumn
// (1-based, UTF-16 code units) and running to the next token's
// StartColumn or the line's end.
type Token struct {
	StartColumn int
	Type        string
}

// LineTokens is the tokenization result for a single line.
type LineTokens struct {
	Tokens []Token
}

// State is opaque per-tokenizer state carried from the end of one line
// into the start of the next (e.g. "inside a block comment").
type State interface {
	// Equals reports whether two states are semantically identical. Store
	// does not call it: every line from the invalidation frontier onward
	// is retokenized.
	Equals(other State) bool
}

// Tokenizer is the pluggable grammar engine the store drives. Line
// tokenization is assumed cheap enough to run synchronously within the
// store's time-budgeted background task.
type Tokenizer interface {
	// LineTokens tokenizes one line given the state carried in from the
	// previous line, returning the line's tokens and the state to carry
	// into the next line.
	LineTokens(languageID, lineText string, state State) ([]Token, State)
	// InitialState returns the state a fresh (line 1, no predecessor)
	// tokenization run starts from.
	InitialState(languageID string) State
}

const (
	tooLargeBytes = 20 * 1000 * 1000
	tooLargeLines = 300000

	// warmUpLines caps how many lines the model's synchronous warm-up pass
	// tokenizes before yielding to its normal 20ms scheduling; the pass is
	// itself bounded by the same 20ms budget.
	warmUpLines = 100

	// cheapWindow bounds how far ahead of the invalidation frontier a
	// line can sit and still be considered "cheap to tokenize" on demand.
	cheapWindow = 20
)
