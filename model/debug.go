package model

// DebugInfo is a point-in-time snapshot of internal state, for a host's
// diagnostics panel rather than for any part of the edit pipeline.
type DebugInfo struct {
	VersionID            uint64
	AlternativeVersionID uint64
	LineCount            int
	TokenizedThroughLine int
	TokensPending        bool
	TooLargeForTokens    bool
	LongestLineLength    int
	UndoDepth            int
	RedoDepth            int
	Disposed             bool
}

// DebugSnapshot reports the model's internal state for diagnostics.
func (m *TextModel) DebugSnapshot() DebugInfo {
	lineCount := m.buf.LineCount()
	undoDepth, redoDepth := m.stack.Depth()

	longest := 0
	for l := 1; l <= lineCount; l++ {
		n, ok := m.buf.LineLength(l)
		if ok && n > longest {
			longest = n
		}
	}

	return DebugInfo{
		VersionID:            m.versionID,
		AlternativeVersionID: m.altVersionID,
		LineCount:            lineCount,
		TokenizedThroughLine: m.tokenStore.FrontierLine(),
		TokensPending:        m.tokenStore.HasLinesToTokenize(lineCount),
		TooLargeForTokens:    m.tokenStore.TooLarge(),
		LongestLineLength:    longest,
		UndoDepth:            undoDepth,
		RedoDepth:            redoDepth,
		Disposed:             m.disposed,
	}
}
