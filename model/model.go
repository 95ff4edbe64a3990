package model

import (
	"log/slog"

	"github.com/quillbuf/coretext/buffer"
	"github.com/quillbuf/coretext/decoration"
	"github.com/quillbuf/coretext/editstack"
	"github.com/quillbuf/coretext/langconf"
	"github.com/quillbuf/coretext/token"
)

// TextModel is the text model facade: it owns a buffer, a decorations
// tracker, a line-tokens store, and an edit stack, and sequences every
// mutation across all four so observers only ever see consistent
// snapshots. It is not safe for concurrent use from multiple goroutines,
// matching its single-threaded, cooperative execution model.
type TextModel struct {
	id  string
	seq uint64
	uri string

	buf         *buffer.Buffer
	decorations *decoration.Tracker
	tokenStore  *token.Store
	stack       *editstack.Stack
	langReg     langconf.Registry

	opts       Options
	languageID string

	versionID    uint64
	altVersionID uint64

	disposed    bool
	isDisposing bool
	isUndoing   bool
	isRedoing   bool

	attachedCount int

	pendingTrimLines []int
	lastSelections   []buffer.Range

	subs   *subscriptions
	logger *slog.Logger

	tokenizeScheduled bool
	warmedUp          bool
	cancelScheduled   func()
}

// New constructs a model over the given initial text.
func New(text string, opts Options) *TextModel {
	opts = opts.withDefaults()

	id, seq := nextModelID()
	uri := opts.URI
	if uri == "" {
		uri = defaultURI(seq)
	}

	buf := buffer.New(text, buffer.Options{MaxSyncBytes: opts.MaxSyncBytes})

	m := &TextModel{
		id:         id,
		seq:        seq,
		uri:        uri,
		buf:        buf,
		stack:      editstack.New(),
		langReg:    opts.LangRegistry,
		opts:       opts,
		languageID: opts.LanguageID,
		subs:       newSubscriptions(),
		logger:     opts.Logger,
	}
	m.decorations = decoration.New(instanceLetterFor(seq), m.getOffsetAt, m.getPositionAt, m.CurrentVersionID)
	m.tokenStore = token.NewStoreWithLimits(m.languageID, opts.Tokenizer, buf.LineCount(), len(text), opts.TooLargeBytes, opts.TooLargeLines)

	return m
}

// instanceLetterFor cycles a..zA..Z to discourage cross-model decoration
// id reuse, matching the spec's instanceLetter scheme.
func instanceLetterFor(seq uint64) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idx := int((seq - 1) % uint64(len(letters)))
	return string(letters[idx])
}

// ID returns the model's stable opaque id, e.g. "$model3".
func (m *TextModel) ID() string { return m.id }

// URI returns the model's associated URI.
func (m *TextModel) URI() string { return m.uri }

// Equals reports whether m and other refer to the same model instance.
func (m *TextModel) Equals(other *TextModel) bool {
	return other != nil && m.id == other.id
}

// CurrentVersionID returns the current content version id, used as the
// decorations tracker's staleness check.
func (m *TextModel) CurrentVersionID() uint64 { return m.versionID }

// AlternativeVersionID returns the alternative version id: equal to
// VersionID after a forward edit, but set by undo/redo to the version id
// the edit originally produced.
func (m *TextModel) AlternativeVersionID() uint64 { return m.altVersionID }

func (m *TextModel) checkDisposed() error {
	if m.disposed {
		return ErrModelDisposed
	}
	return nil
}

func (m *TextModel) getOffsetAt(pos buffer.Position) (int, bool) {
	return m.buf.GetOffsetAt(pos)
}

func (m *TextModel) getPositionAt(offset int) (buffer.Position, bool) {
	return m.buf.GetPositionAt(offset)
}

// GetValue returns the full buffer text.
func (m *TextModel) GetValue() (string, error) {
	if err := m.checkDisposed(); err != nil {
		return "", err
	}
	return m.buf.Text(), nil
}

// SetValue replaces the buffer wholesale. A value equal to the current
// text is a NoOp: nothing is emitted.
func (m *TextModel) SetValue(text string) error {
	if err := m.checkDisposed(); err != nil {
		return err
	}
	if text == m.buf.Text() {
		return nil
	}

	m.subs.beginDeferred()
	defer m.subs.endDeferred()

	m.buf.SetValue(text)
	m.stack = editstack.New()
	m.pendingTrimLines = nil

	m.tokenStore = token.NewStoreWithLimits(m.languageID, m.opts.Tokenizer, m.buf.LineCount(), len(text), m.opts.TooLargeBytes, m.opts.TooLargeLines)
	m.decorations = decoration.New(instanceLetterFor(m.seq), m.getOffsetAt, m.getPositionAt, m.CurrentVersionID)

	m.versionID++
	m.altVersionID = m.versionID

	m.subs.rawContent.Fire(RawContentChangedEvent{
		Changes: []buffer.RawChange{{
			Kind:           buffer.RawLineChanged,
			FromLineNumber: 1,
			ToLineNumber:   m.buf.LineCount(),
		}},
		VersionID: m.versionID,
	})
	m.subs.content.Fire(ContentChangedEvent{VersionID: m.versionID, IsFlush: true, EOL: m.buf.EOL()})

	m.scheduleTokenization()
	return nil
}

// GetValueInRange returns the text spanned by r.
func (m *TextModel) GetValueInRange(r buffer.Range, eolPref buffer.EOLPreference) (string, error) {
	if err := m.checkDisposed(); err != nil {
		return "", err
	}
	r = m.ValidateRange(r)
	s, _ := m.buf.GetValueInRange(r, eolPref)
	return s, nil
}

// GetLineContent returns the content of line n (1-based).
func (m *TextModel) GetLineContent(n int) (string, error) {
	if err := m.checkDisposed(); err != nil {
		return "", err
	}
	s, ok := m.buf.LineContent(n)
	if !ok {
		return "", invalidArgument("line", n)
	}
	return s, nil
}

// GetLineCount returns the number of lines.
func (m *TextModel) GetLineCount() (int, error) {
	if err := m.checkDisposed(); err != nil {
		return 0, err
	}
	return m.buf.LineCount(), nil
}

// GetLineMaxColumn returns the largest valid column on line n.
func (m *TextModel) GetLineMaxColumn(n int) (int, error) {
	if err := m.checkDisposed(); err != nil {
		return 0, err
	}
	c, ok := m.buf.LineMaxColumn(n)
	if !ok {
		return 0, invalidArgument("line", n)
	}
	return c, nil
}

// GetOffsetAt maps a validated position to a code-unit offset.
func (m *TextModel) GetOffsetAt(pos buffer.Position) (int, error) {
	if err := m.checkDisposed(); err != nil {
		return 0, err
	}
	pos = m.ValidatePosition(pos)
	off, _ := m.buf.GetOffsetAt(pos)
	return off, nil
}

// GetPositionAt maps an offset to a position.
func (m *TextModel) GetPositionAt(offset int) (buffer.Position, error) {
	if err := m.checkDisposed(); err != nil {
		return buffer.Position{}, err
	}
	pos, ok := m.buf.GetPositionAt(offset)
	if !ok {
		return buffer.Position{}, invalidArgument("offset", offset)
	}
	return pos, nil
}

// GetEOL returns the buffer's line terminator.
func (m *TextModel) GetEOL() (buffer.EOLSequence, error) {
	if err := m.checkDisposed(); err != nil {
		return "", err
	}
	return m.buf.EOL(), nil
}

// SetEOL rewrites the line terminator. A no-op (current EOL) emits
// nothing.
func (m *TextModel) SetEOL(eol buffer.EOLSequence) error {
	if err := m.checkDisposed(); err != nil {
		return err
	}
	if !m.buf.SetEOL(eol) {
		return nil
	}

	m.subs.beginDeferred()
	defer m.subs.endDeferred()

	m.versionID++
	m.altVersionID = m.versionID
	m.subs.rawContent.Fire(RawContentChangedEvent{
		Changes:   []buffer.RawChange{{Kind: buffer.RawEOLChanged}},
		VersionID: m.versionID,
	})
	m.subs.content.Fire(ContentChangedEvent{VersionID: m.versionID, EOL: eol})
	return nil
}

// GetOptions returns the current options.
func (m *TextModel) GetOptions() Options { return m.opts }

// UpdateOptions updates tabSize/insertSpaces/trimAutoWhitespace. Values
// equal to the current ones are a NoOp.
func (m *TextModel) UpdateOptions(tabSize int, insertSpaces, trimAutoWhitespace bool) error {
	if err := m.checkDisposed(); err != nil {
		return err
	}
	if tabSize <= 0 {
		tabSize = m.opts.TabSize
	}
	if tabSize == m.opts.TabSize && insertSpaces == m.opts.InsertSpaces && trimAutoWhitespace == m.opts.TrimAutoWhitespace {
		return nil
	}
	m.opts.TabSize = tabSize
	m.opts.InsertSpaces = insertSpaces
	m.opts.TrimAutoWhitespace = trimAutoWhitespace
	m.subs.options.Fire()
	return nil
}

// IsAttachedToEditor reports whether at least one view is attached.
func (m *TextModel) IsAttachedToEditor() bool { return m.attachedCount > 0 }

// OnBeforeAttached records a new view attaching, scheduling the warm-up
// tokenization pass on the first attach.
func (m *TextModel) OnBeforeAttached() {
	m.attachedCount++
	if m.attachedCount == 1 {
		m.scheduleTokenization()
	}
}

// OnBeforeDetached records a view detaching.
func (m *TextModel) OnBeforeDetached() {
	if m.attachedCount > 0 {
		m.attachedCount--
	}
}

// SetLogger overrides the model's diagnostic logger.
func (m *TextModel) SetLogger(l *slog.Logger) {
	if l != nil {
		m.logger = l
	}
}

// Dispose fires will-dispose, cancels background tokenization, and marks
// the model disposed. Any subsequent public call fails with
// ErrModelDisposed.
func (m *TextModel) Dispose() {
	if m.disposed {
		return
	}
	m.isDisposing = true
	m.subs.willDispose.Fire()
	if m.cancelScheduled != nil {
		m.cancelScheduled()
		m.cancelScheduled = nil
	}
	m.disposed = true
	m.isDisposing = false
}

// Close is an error-returning alias of Dispose for callers that prefer
// defer m.Close().
func (m *TextModel) Close() error {
	m.Dispose()
	return nil
}
