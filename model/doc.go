// Package model implements the text model facade: the component that
// sequences validation, buffer edits, decoration and token patching, and
// event emission so observers always see a consistent snapshot. It is
// the single entry point a host (editor UI, language server, CLI) talks
// to; buffer, interval, decoration, token, editstack, and event are all
// private implementation detail behind it.
package model
