// Package editstack implements the edit stack: grouped undo history
// recorded as reverse edits plus the selection state to restore,
// and the auto-whitespace trim heuristic that runs between edits.
package editstack
