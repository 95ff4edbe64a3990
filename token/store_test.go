package token

import "testing"

type fakeState struct{ n int }

func (f fakeState) Equals(other State) bool {
	o, ok := other.(fakeState)
	return ok && o.n == f.n
}

type fakeTokenizer struct{ calls int }

func (f *fakeTokenizer) InitialState(languageID string) State { return fakeState{} }

func (f *fakeTokenizer) LineTokens(languageID, lineText string, state State) ([]Token, State) {
	f.calls++
	return []Token{{StartColumn: 1, Type: "text"}}, fakeState{n: len(lineText)}
}

func linesOf(text []string) func(int) string {
	return func(i int) string { return text[i] }
}

func TestNewStoreStartsFullyInvalid(t *testing.T) {
	s := NewStore("go", &fakeTokenizer{}, 3, 30)
	if !s.HasLinesToTokenize(3) {
		t.Fatalf("HasLinesToTokenize = false, want true for a fresh store")
	}
	if s.TooLarge() {
		t.Fatalf("TooLarge() = true, want false")
	}
}

func TestTooLargeGuardDisablesTokenization(t *testing.T) {
	s := NewStore("go", &fakeTokenizer{}, 400000, 30)
	if !s.TooLarge() {
		t.Fatalf("TooLarge() = false, want true above the line-count guard")
	}
	if s.HasLinesToTokenize(400000) {
		t.Fatalf("HasLinesToTokenize = true, want false when too large")
	}
	got := s.GetTokens(0, "anything")
	if len(got.Tokens) != 1 || got.Tokens[0].Type != PlaceholderTokenType {
		t.Fatalf("GetTokens = %#v, want a single placeholder", got)
	}
}

func TestTokenizeOneLineAdvancesFrontier(t *testing.T) {
	lines := []string{"a", "b", "c"}
	tz := &fakeTokenizer{}
	s := NewStore("go", tz, len(lines), 3)

	for i := 0; i < len(lines); i++ {
		if !s.TokenizeOneLine(linesOf(lines), len(lines)) {
			t.Fatalf("TokenizeOneLine(%d) = false, want true", i)
		}
	}
	if s.HasLinesToTokenize(len(lines)) {
		t.Fatalf("HasLinesToTokenize = true after tokenizing every line")
	}
	if tz.calls != 3 {
		t.Fatalf("tokenizer called %d times, want 3", tz.calls)
	}
}

func TestGetTokensReturnsPlaceholderBeforeTokenized(t *testing.T) {
	s := NewStore("go", &fakeTokenizer{}, 2, 2)
	got := s.GetTokens(1, "b")
	if len(got.Tokens) != 1 || got.Tokens[0].Type != PlaceholderTokenType {
		t.Fatalf("GetTokens(1) = %#v, want placeholder before tokenizing", got)
	}
}

func TestApplyEditsInvalidatesFromStartLine(t *testing.T) {
	lines := []string{"a", "b", "c"}
	s := NewStore("go", &fakeTokenizer{}, len(lines), 3)
	s.UpdateTokensUntilLine(linesOf(lines), len(lines), 2)
	if s.HasLinesToTokenize(len(lines)) {
		t.Fatalf("expected fully tokenized before edit")
	}

	s.ApplyEdits(1, 1, []string{"B", "B2"})
	if s.invalidLineStartIndex != 1 {
		t.Fatalf("invalidLineStartIndex = %d, want 1", s.invalidLineStartIndex)
	}
	if len(s.lines) != 4 {
		t.Fatalf("len(lines) = %d, want 4 after inserting one extra line", len(s.lines))
	}
}

func TestIsCheapToTokenize(t *testing.T) {
	s := NewStore("go", &fakeTokenizer{}, 100, 100)
	if !s.IsCheapToTokenize(0) {
		t.Fatalf("IsCheapToTokenize(0) = false, want true at the frontier")
	}
	if s.IsCheapToTokenize(50) {
		t.Fatalf("IsCheapToTokenize(50) = true, want false far from the frontier")
	}
}
