// Package token implements the line-tokens store: a per-line token cache
// with a monotone invalidation frontier, tokenized lazily and
// incrementally by whatever Tokenizer the model is configured with.
package token
