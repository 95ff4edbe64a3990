// Package interval implements the augmented red-black tree that backs the
// decorations tracker: each node is keyed by a left endpoint, augmented
// with the maximum end offset in its subtree, and survives arbitrary text
// edits through acceptReplace rather than being rebuilt.
//
// Offsets inside the tree are stored as absolute values: AcceptReplace
// walks every node on each replacement, and ResolveNode copies a node's
// offsets into its cached fields stamped with the caller's version id.
package interval
