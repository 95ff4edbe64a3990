package model

import (
	"log/slog"

	"github.com/quillbuf/coretext/langconf"
	"github.com/quillbuf/coretext/token"
	"github.com/quillbuf/coretext/token/chromalex"
)

// Options configures a TextModel at construction and via UpdateOptions.
// The recognized keys for UpdateOptions are TabSize, InsertSpaces, and
// TrimAutoWhitespace; the remaining fields are construction-only.
type Options struct {
	TabSize            int
	InsertSpaces       bool
	TrimAutoWhitespace bool

	// MaxSyncBytes is the advisory synced-to-worker cap.
	MaxSyncBytes int
	// TooLargeBytes/TooLargeLines gate tokenization permanently at
	// construction time.
	TooLargeBytes int
	TooLargeLines int
	// LongLineThreshold is the code-unit length above which a line counts
	// as "long". It is stored only: nothing in the model reads it, and
	// DebugSnapshot reports the longest line's length without comparing
	// it to this threshold.
	LongLineThreshold int

	// URI overrides the default inmemory:// URI.
	URI string
	// LanguageID is the initial language identifier.
	LanguageID string
	// Tokenizer overrides the default chromalex.Adapter.
	Tokenizer token.Tokenizer
	// LangRegistry overrides the default langconf.Static.
	LangRegistry langconf.Registry
	// Logger overrides slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the default option set. New fills each zero,
// nil or empty numeric, string and collaborator field of its Options from
// it; InsertSpaces and TrimAutoWhitespace are taken as given, so a zero
// Options leaves both false.
func DefaultOptions() Options {
	return Options{
		TabSize:            4,
		InsertSpaces:       true,
		TrimAutoWhitespace: true,
		MaxSyncBytes:       50 * 1000 * 1000,
		TooLargeBytes:      20 * 1000 * 1000,
		TooLargeLines:      300000,
		LongLineThreshold:  10000,
		LanguageID:         "plaintext",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TabSize <= 0 {
		o.TabSize = d.TabSize
	}
	if o.TooLargeBytes <= 0 {
		o.TooLargeBytes = d.TooLargeBytes
	}
	if o.TooLargeLines <= 0 {
		o.TooLargeLines = d.TooLargeLines
	}
	if o.LongLineThreshold <= 0 {
		o.LongLineThreshold = d.LongLineThreshold
	}
	if o.MaxSyncBytes <= 0 {
		o.MaxSyncBytes = d.MaxSyncBytes
	}
	if o.LanguageID == "" {
		o.LanguageID = d.LanguageID
	}
	if o.Tokenizer == nil {
		o.Tokenizer = chromalex.New()
	}
	if o.LangRegistry == nil {
		o.LangRegistry = langconf.NewStatic()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
