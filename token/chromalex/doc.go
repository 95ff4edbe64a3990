// Package chromalex adapts github.com/alecthomas/chroma/v2 lexers into
// the token.Tokenizer interface, serving as coretext's default grammar
// engine.
package chromalex
