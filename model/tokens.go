package model

import (
	"time"

	"github.com/quillbuf/coretext/buffer"
	"github.com/quillbuf/coretext/token"
)

// tokenizeBudget bounds how long one background tokenization tick may run
// before yielding back to the scheduler.
const tokenizeBudget = 20 * time.Millisecond

func (m *TextModel) tokenLineGetter(lineIndex int) string {
	s, _ := m.buf.LineContent(lineIndex + 1)
	return s
}

// scheduleTokenization arranges for the remaining stale lines to be
// tokenized while at least one view is attached; with none attached it
// does nothing. The first call on an attached model (and the first after
// SetMode) runs a synchronous warm-up pass over the next
// token.WarmUpLimit lines, bounded by tokenizeBudget, before falling back
// to the budgeted background scheduler for the rest.
func (m *TextModel) scheduleTokenization() {
	if m.disposed || !m.IsAttachedToEditor() {
		return
	}
	lineCount := m.buf.LineCount()
	if !m.tokenStore.HasLinesToTokenize(lineCount) {
		return
	}

	if !m.warmedUp {
		m.warmedUp = true
		fromLine0 := m.tokenStore.FrontierLine()
		target := fromLine0 + token.WarmUpLimit()
		deadline := time.Now().Add(tokenizeBudget)
		for m.tokenStore.FrontierLine() < target && time.Now().Before(deadline) {
			if !m.tokenStore.TokenizeOneLine(m.tokenLineGetter, lineCount) {
				break
			}
		}
		m.fireTokensChanged(fromLine0)
		if !m.tokenStore.HasLinesToTokenize(lineCount) {
			return
		}
	}

	if m.tokenizeScheduled {
		return
	}
	m.tokenizeScheduled = true
	timer := time.AfterFunc(time.Millisecond, m.tokenizeTick)
	m.cancelScheduled = func() { timer.Stop() }
}

func (m *TextModel) tokenizeTick() {
	m.tokenizeScheduled = false
	if m.disposed {
		return
	}
	lineCount := m.buf.LineCount()
	fromLine0 := m.tokenStore.FrontierLine()
	deadline := time.Now().Add(tokenizeBudget)
	for m.tokenStore.HasLinesToTokenize(lineCount) && time.Now().Before(deadline) {
		if !m.tokenStore.TokenizeOneLine(m.tokenLineGetter, lineCount) {
			break
		}
	}
	m.fireTokensChanged(fromLine0)

	if m.tokenStore.HasLinesToTokenize(lineCount) {
		m.scheduleTokenization()
	}
}

func (m *TextModel) tokenizeUpTo(lineNumber0 int) {
	fromLine0 := m.tokenStore.FrontierLine()
	m.tokenStore.UpdateTokensUntilLine(m.tokenLineGetter, m.buf.LineCount(), lineNumber0)
	m.fireTokensChanged(fromLine0)
}

func (m *TextModel) fireTokensChanged(fromLine0 int) {
	toLine0 := m.tokenStore.FrontierLine() - 1
	if toLine0 < fromLine0 {
		return
	}
	m.subs.tokens.Fire(TokensChangedEvent{FromLine: fromLine0 + 1, ToLine: toLine0 + 1})
}

// ForceTokenization synchronously tokenizes every line up to and including
// lineNumber (1-based).
func (m *TextModel) ForceTokenization(lineNumber int) error {
	if err := m.checkDisposed(); err != nil {
		return err
	}
	m.tokenizeUpTo(lineNumber - 1)
	return nil
}

// IsCheapToTokenize reports whether lineNumber (1-based) is close enough to
// the invalidation frontier to tokenize synchronously on a read path.
func (m *TextModel) IsCheapToTokenize(lineNumber int) bool {
	return m.tokenStore.IsCheapToTokenize(lineNumber - 1)
}

// TokenizeIfCheap tokenizes lineNumber synchronously if IsCheapToTokenize,
// reporting whether it did.
func (m *TextModel) TokenizeIfCheap(lineNumber int) bool {
	if !m.IsCheapToTokenize(lineNumber) {
		return false
	}
	m.ForceTokenization(lineNumber)
	return true
}

// GetLineTokens returns the tokens cached for lineNumber (1-based),
// tokenizing it first if that happens to be cheap.
func (m *TextModel) GetLineTokens(lineNumber int) (token.LineTokens, error) {
	if err := m.checkDisposed(); err != nil {
		return token.LineTokens{}, err
	}
	text, ok := m.buf.LineContent(lineNumber)
	if !ok {
		return token.LineTokens{}, invalidArgument("line", lineNumber)
	}
	m.TokenizeIfCheap(lineNumber)
	return m.tokenStore.GetTokens(lineNumber-1, text), nil
}

// GetLanguageIdentifier returns the model's current language id.
func (m *TextModel) GetLanguageIdentifier() string { return m.languageID }

// GetLanguageIdAtPosition returns the language id in effect at pos. This
// store has no embedded-grammar support, so it is always the model's
// single language id once pos is validated into bounds.
func (m *TextModel) GetLanguageIdAtPosition(pos buffer.Position) (string, error) {
	if err := m.checkDisposed(); err != nil {
		return "", err
	}
	m.ValidatePosition(pos)
	return m.languageID, nil
}

// SetMode switches the model's language id and tokenizer, invalidating
// every cached line. A nil tokenizer keeps the current one.
func (m *TextModel) SetMode(languageID string, tokenizer token.Tokenizer) error {
	if err := m.checkDisposed(); err != nil {
		return err
	}
	if languageID == m.languageID {
		return nil
	}
	if tokenizer == nil {
		tokenizer = m.opts.Tokenizer
	}

	from, to := m.tokenStore.SetLanguage(languageID, tokenizer, m.buf.LineCount())
	m.languageID = languageID
	m.opts.Tokenizer = tokenizer
	m.warmedUp = false

	m.subs.language.Fire(languageID)
	m.subs.tokens.Fire(TokensChangedEvent{FromLine: from, ToLine: to})
	m.scheduleTokenization()
	return nil
}
