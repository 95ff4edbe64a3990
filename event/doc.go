// Package event implements two deferred-emit coalescers: a FIFO
// content-change queue and a decorations-changed flag that
// collapses any number of fires into at most one event per deferred
// scope. Scopes nest via a counter; only the outermost exit flushes.
package event
