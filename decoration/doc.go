// Package decoration implements the decorations tracker: a pair of
// interval trees — one for decorations on the overview ruler, one
// for everything else — addressed by id, with ranges rehydrated from the
// interval tree rather than stored directly so they survive arbitrary
// edits.
package decoration
