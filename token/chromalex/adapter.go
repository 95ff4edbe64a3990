package chromalex

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	iutf16 "github.com/quillbuf/coretext/internal/utf16"
	"github.com/quillbuf/coretext/token"
)

// lineState is a placeholder token.State: chroma does not expose a
// resumable per-line lexer state for arbitrary lexers (most rely on an
// internal stack the public API doesn't let a caller snapshot), so
// Adapter tokenizes each line independently rather than threading real
// state through. Highlighting that depends on multi-line state
// (unterminated block comments, heredocs) is therefore not carried from
// one line to the next: every line is lexed as if it started fresh.
type lineState struct{}

func (lineState) Equals(other token.State) bool {
	_, ok := other.(lineState)
	return ok
}

// Adapter implements token.Tokenizer over chroma/v2 lexers.
type Adapter struct{}

// New constructs a chroma-backed Tokenizer.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) InitialState(languageID string) token.State { return lineState{} }

func (a *Adapter) LineTokens(languageID, lineText string, _ token.State) ([]token.Token, token.State) {
	lexer := lexers.Get(languageID)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, lineText)
	if err != nil {
		return []token.Token{{StartColumn: 1, Type: token.PlaceholderTokenType}}, lineState{}
	}

	var out []token.Token
	column := 1
	for _, tok := range iter.Tokens() {
		if tok.Value == "" {
			continue
		}
		out = append(out, token.Token{StartColumn: column, Type: tok.Type.String()})
		column += iutf16.Len(tok.Value)
	}
	if len(out) == 0 {
		out = append(out, token.Token{StartColumn: 1, Type: token.PlaceholderTokenType})
	}
	return out, lineState{}
}
