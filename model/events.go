package model

import (
	"github.com/quillbuf/coretext/buffer"
	"github.com/quillbuf/coretext/event"
)

// ContentChangedEvent is the payload of onDidChangeContent: the atomic
// changes produced by one applyEdits batch, plus the undo/redo/flush
// flags the spec requires observers be able to distinguish.
type ContentChangedEvent struct {
	Changes     []buffer.ContentChange
	VersionID   uint64
	IsUndoing   bool
	IsRedoing   bool
	IsFlush     bool
	EOL         buffer.EOLSequence
}

// RawContentChangedEvent is the payload of onDidChangeRawContent: the
// line-level raw changes of one applyEdits batch.
type RawContentChangedEvent struct {
	Changes   []buffer.RawChange
	VersionID uint64
}

// TokensChangedEvent is the payload of onDidChangeTokens: the inclusive
// 1-based line range whose cached tokens changed.
type TokensChangedEvent struct {
	FromLine int
	ToLine   int
}

// subscription groups the model's emitters. Each is exposed as an
// OnXxx(func(...)) method on TextModel returning an unsubscribe func.
type subscriptions struct {
	content       *event.ChangeEmitter[ContentChangedEvent]
	rawContent    *event.ChangeEmitter[RawContentChangedEvent]
	decorations   *event.FlagEmitter
	tokens        *event.ChangeEmitter[TokensChangedEvent]
	language      *event.ChangeEmitter[string]
	langConfig    *event.FlagEmitter
	options       *event.FlagEmitter
	willDispose   *event.FlagEmitter
}

func newSubscriptions() *subscriptions {
	return &subscriptions{
		content:     event.NewChangeEmitter[ContentChangedEvent](),
		rawContent:  event.NewChangeEmitter[RawContentChangedEvent](),
		decorations: event.NewFlagEmitter(),
		tokens:      event.NewChangeEmitter[TokensChangedEvent](),
		language:    event.NewChangeEmitter[string](),
		langConfig:  event.NewFlagEmitter(),
		options:     event.NewFlagEmitter(),
		willDispose: event.NewFlagEmitter(),
	}
}

func (s *subscriptions) beginDeferred() {
	s.content.BeginDeferred()
	s.rawContent.BeginDeferred()
	s.decorations.BeginDeferred()
}

func (s *subscriptions) endDeferred() {
	s.rawContent.EndDeferred()
	s.content.EndDeferred()
	s.decorations.EndDeferred()
}

// OnDidChangeContent subscribes to atomic content-change events.
func (m *TextModel) OnDidChangeContent(fn func(ContentChangedEvent)) func() {
	return m.subs.content.Subscribe(fn)
}

// OnDidChangeRawContent subscribes to line-level raw-change events.
func (m *TextModel) OnDidChangeRawContent(fn func(RawContentChangedEvent)) func() {
	return m.subs.rawContent.Subscribe(fn)
}

// OnDidChangeDecorations subscribes to the coalesced decorations-changed
// flag event.
func (m *TextModel) OnDidChangeDecorations(fn func()) func() {
	return m.subs.decorations.Subscribe(fn)
}

// OnDidChangeTokens subscribes to tokens-changed range events.
func (m *TextModel) OnDidChangeTokens(fn func(TokensChangedEvent)) func() {
	return m.subs.tokens.Subscribe(fn)
}

// OnDidChangeLanguage subscribes to language-id changes.
func (m *TextModel) OnDidChangeLanguage(fn func(string)) func() {
	return m.subs.language.Subscribe(fn)
}

// OnDidChangeLanguageConfiguration subscribes to language-configuration
// registry changes affecting this model's language.
func (m *TextModel) OnDidChangeLanguageConfiguration(fn func()) func() {
	return m.subs.langConfig.Subscribe(fn)
}

// OnDidChangeOptions subscribes to UpdateOptions changes.
func (m *TextModel) OnDidChangeOptions(fn func()) func() {
	return m.subs.options.Subscribe(fn)
}

// OnWillDispose subscribes to the will-dispose event, fired once at the
// start of Dispose/Close before any internal state is torn down.
func (m *TextModel) OnWillDispose(fn func()) func() {
	return m.subs.willDispose.Subscribe(fn)
}
