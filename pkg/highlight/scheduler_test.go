package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yaklabco/pyhl/pkg/syntax"
)

func plainDocument(n int) Lines {
	lines := make(Lines, n)
	for i := range lines {
		lines[i] = "x = 1"
	}
	return lines
}

func updatedLines(updates []LineUpdate) []int {
	out := make([]int, len(updates))
	for i, u := range updates {
		out[i] = u.Line
	}
	return out
}

func TestScheduler_Load(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil)
	updates := s.Load(Lines{"x = '''", "still inside", "end '''", "y = 1"})

	require.Len(t, updates, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, updatedLines(updates))
	assert.Equal(t, []syntax.LineState{
		syntax.StateTripleSingle, syntax.StateTripleSingle, syntax.StateNormal, syntax.StateNormal,
	}, s.States())
	assert.Equal(t, syntax.StateNormal, s.FinalState())

	stats := s.Stats()
	assert.Equal(t, 1, stats.Loads)
	assert.Equal(t, 4, stats.LastRetokenized)
}

func TestScheduler_EditInsideStringKeepsLaterLines(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil)
	s.Load(Lines{"x = '''", "still inside", "end '''", "y = 1"})

	updates, err := s.OnEdit(ReplaceLine(1, "still inside, edited"))
	require.NoError(t, err)

	assert.Equal(t, []int{1}, updatedLines(updates))
	assert.Equal(t, 1, s.Stats().LastRetokenized)

	tokens, err := s.Tokens(1)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, syntax.KindString, tokens[0].Kind)
}

func TestScheduler_EditInsideOrdinaryLineTouchesOnlyThatLine(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil)
	s.Load(plainDocument(10))

	updates, err := s.OnEdit(ReplaceLine(5, "y = 2"))
	require.NoError(t, err)

	assert.Equal(t, []int{5}, updatedLines(updates))
	assert.Equal(t, 1, s.Stats().LastRetokenized)
	assert.Equal(t, 11, s.Stats().Retokenized)

	tokens, err := s.Tokens(5)
	require.NoError(t, err)
	assert.Equal(t, 5, tokens[0].Line)
}

func TestScheduler_OpeningAndClosingTripleQuote(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil)
	s.Load(plainDocument(6))

	updates, err := s.OnEdit(ReplaceLine(2, "s = '''"))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 5}, updatedLines(updates))

	for _, u := range updates[1:] {
		require.Len(t, u.Tokens, 1)
		assert.Equal(t, syntax.KindString, u.Tokens[0].Kind)
	}
	assert.Equal(t, syntax.StateTripleSingle, s.FinalState())

	updates, err = s.OnEdit(ReplaceLine(4, "'''"))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, updatedLines(updates))
	assert.Equal(t, syntax.StateNormal, s.FinalState())

	tokens, err := s.Tokens(5)
	require.NoError(t, err)
	assert.Equal(t, syntax.KindIdentifier, tokens[0].Kind)
}

func TestScheduler_EditHealsAfterStringRegion(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil)
	s.Load(Lines{"a = 1", "b = 2", "c = 3", "d = 4", "e = 5"})

	// Replacing line 1 with a complete triple-quoted string leaves its outgoing state normal.
	updates, err := s.OnEdit(ReplaceLine(1, `b = """doc"""`))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, updatedLines(updates))

	// Inserting an opener and a closer repaints only the inserted lines.
	updates, err = s.OnEdit(InsertLines(3, `"""`, "text", `"""`))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4, 5}, updatedLines(updates))
	assert.Equal(t, 8, s.LineCount())
}

func TestScheduler_DeleteLines(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil)
	s.Load(Lines{"x = '''", "inside", "'''", "y = 1"})

	updates, err := s.OnEdit(DeleteLines(0, 1))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, updatedLines(updates))
	assert.Equal(t, 3, s.LineCount())

	want, _ := syntax.NewTokenizer(nil).TokenizeLines(s.Text())
	assert.Equal(t, want, s.Lines())
}

func TestScheduler_InsertedText(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil)
	s.Load(Lines{})

	updates, err := s.OnEdit(EditRange{StartLine: 0, EndLine: 0, InsertedText: "def f():\n    return 1"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, updatedLines(updates))
	assert.Equal(t, []string{"def f():", "    return 1"}, s.Text())
}

func TestScheduler_NoopEdit(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil)
	s.Load(plainDocument(3))

	updates, err := s.OnEdit(EditRange{StartLine: 1, EndLine: 1})
	require.NoError(t, err)
	assert.Empty(t, updates)
	assert.Equal(t, 0, s.Stats().Edits)
}

func TestScheduler_OutOfRange(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil)
	s.Load(plainDocument(3))

	tests := []struct {
		name string
		edit EditRange
	}{
		{"negative start", EditRange{StartLine: -1, EndLine: 0}},
		{"end before start", EditRange{StartLine: 2, EndLine: 1}},
		{"end past document", ReplaceLine(3, "z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := s.OnEdit(tt.edit)
			require.ErrorIs(t, err, ErrOutOfRange)
		})
	}

	_, err := s.Tokens(3)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = s.State(-1)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = s.Line(7)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestScheduler_Styles(t *testing.T) {
	t.Parallel()

	keyword := Style{Foreground: "#FF00FF", Bold: true}
	s := NewScheduler(nil, Palette{syntax.KindKeyword: keyword})

	updates := s.Load(Lines{"def f(): pass"})
	require.Len(t, updates, 1)
	assert.Equal(t, []StyleInstruction{
		{Start: 0, End: 3, Kind: syntax.KindKeyword, Style: keyword},
		{Start: 9, End: 13, Kind: syntax.KindKeyword, Style: keyword},
	}, updates[0].Styles)

	restyled := s.SetTheme(ThemeFunc(func(syntax.Kind) Style { return Style{} }))
	require.Len(t, restyled, 1)
	assert.Empty(t, restyled[0].Styles)
	assert.Equal(t, 1, s.Stats().Retokenized, "restyling does not retokenize")
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Lines{"a", "b", ""}, SplitLines("a\r\nb\n"))
	assert.Equal(t, Lines{""}, SplitLines(""))
}

func TestEditRange_NewLines(t *testing.T) {
	t.Parallel()

	assert.Nil(t, EditRange{}.NewLines())
	assert.True(t, EditRange{StartLine: 2, EndLine: 2}.IsNoop())
	assert.False(t, DeleteLines(0, 1).IsNoop())
	assert.Equal(t, []string{"a", ""}, EditRange{InsertedText: "a\n"}.NewLines())
	assert.Equal(t, []string{""}, ReplaceLine(0, "").NewLines())
}

//nolint:gochecknoglobals // Read-only generator alphabet.
var fragments = []string{"x", " ", "=", "1", "def", "'''", `"""`, "'", `"`, "#", "(", ")", "\\"}

func genLine() *rapid.Generator[string] {
	return rapid.Custom(func(rt *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(fragments), 0, 6).Draw(rt, "parts")
		return strings.Join(parts, "")
	})
}

func TestScheduler_EditsMatchFullRetokenization(t *testing.T) {
	tz := syntax.NewTokenizer(nil)

	rapid.Check(t, func(rt *rapid.T) {
		s := NewScheduler(tz, nil)
		s.Load(Lines(rapid.SliceOfN(genLine(), 0, 10).Draw(rt, "doc")))

		edits := rapid.IntRange(1, 8).Draw(rt, "edits")
		for range edits {
			n := s.LineCount()
			start := rapid.IntRange(0, n).Draw(rt, "start")
			end := rapid.IntRange(start, n).Draw(rt, "end")
			lines := rapid.SliceOfN(genLine(), 0, 3).Draw(rt, "lines")

			if _, err := s.OnEdit(EditRange{StartLine: start, EndLine: end, Lines: lines}); err != nil {
				rt.Fatalf("edit [%d, %d): %v", start, end, err)
			}

			wantTokens, wantStates := tz.TokenizeLines(s.Text())
			gotTokens := s.Lines()
			gotStates := s.States()
			for i := range wantTokens {
				if gotStates[i] != wantStates[i] {
					rt.Fatalf("line %d: state %v, want %v", i, gotStates[i], wantStates[i])
				}
				if len(gotTokens[i]) != len(wantTokens[i]) {
					rt.Fatalf("line %d: %d tokens, want %d", i, len(gotTokens[i]), len(wantTokens[i]))
				}
				for j := range wantTokens[i] {
					if gotTokens[i][j] != wantTokens[i][j] {
						rt.Fatalf("line %d token %d: %+v, want %+v", i, j, gotTokens[i][j], wantTokens[i][j])
					}
				}
			}
		}
	})
}
