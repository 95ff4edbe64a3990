// Package buffer implements the text buffer at the heart of the text model:
// line-oriented storage with an explicit end-of-line sequence, offset↔
// position mapping addressed in UTF-16 code units, and batched edit
// application that reports line-level and atomic change deltas alongside
// their inverse.
//
// Positions are 1-based (line, column) pairs; column N+1 denotes the end of
// a line of N code units. The buffer never interprets or renders text — it
// is the single source of truth the rest of the model derives its indexes
// from.
package buffer
