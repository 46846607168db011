package document

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyhl/pkg/brackets"
	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/syntax"
)

func at(line, col int) syntax.Position {
	return syntax.Position{Line: line, Column: col}
}

func TestDocument_EditKeepsBracketsCurrent(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(Options{})
	doc, res := ws.Open("calc.py", highlight.Lines{"x = (1,", "  2)"})
	assert.Equal(t, uint64(1), res.Version)
	assert.Len(t, res.Updates, 2)
	assert.Empty(t, res.Problems)

	m, err := doc.MatchFor(at(0, 4))
	require.NoError(t, err)
	require.True(t, m.Found)
	assert.Equal(t, at(1, 3), m.Partner.Position())

	res, err = doc.Edit(highlight.ReplaceLine(1, "  2"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.Version)
	require.Len(t, res.Updates, 1)
	assert.Equal(t, 1, res.Updates[0].Line)
	require.Len(t, res.Problems, 1)
	assert.Equal(t, Problem{Kind: ProblemUnclosedBracket, Pos: at(0, 4), Message: `unclosed bracket '('`}, res.Problems[0])

	m, err = doc.MatchFor(at(0, 4))
	require.NoError(t, err)
	assert.False(t, m.Found)
	require.NotNil(t, m.Diagnostic)
	assert.Equal(t, brackets.DiagUnclosed, m.Diagnostic.Kind)
}

func TestDocument_EditErrors(t *testing.T) {
	t.Parallel()

	doc := NewDocument("x.py", Options{})
	doc.Load(highlight.Lines{"a"})

	_, err := doc.Edit(highlight.ReplaceLine(3, "b"))
	require.ErrorIs(t, err, highlight.ErrOutOfRange)
	assert.Equal(t, uint64(1), doc.Version())

	res, err := doc.Edit(highlight.EditRange{StartLine: 1, EndLine: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Version, "no-op keeps the version")
}

func TestDocument_Replace(t *testing.T) {
	t.Parallel()

	doc := NewDocument("x.py", Options{})
	doc.Load(highlight.Lines{"a = 1", "b = 2", "c = 3"})

	res, err := doc.Replace([]string{"a = 1", "b = 'two'", "c = 3"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.Version)
	require.Len(t, res.Updates, 1)
	assert.Equal(t, 1, res.Updates[0].Line)

	res, err = doc.Replace([]string{"a = 1", "b = 'two'", "c = 3"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), res.Version)
	assert.Empty(t, res.Updates)

	assert.Equal(t, []string{"a = 1", "b = 'two'", "c = 3"}, doc.Snapshot().Lines)
}

func TestDocument_AutoClose(t *testing.T) {
	t.Parallel()

	off := NewDocument("off.py", Options{})
	off.Load(highlight.Lines{"print"})
	_, _, ok, err := off.AutoClose('(', at(0, 5))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"print"}, off.Snapshot().Lines)

	doc := NewDocument("on.py", Options{AutoClose: true})
	doc.Load(highlight.Lines{"print", "x"})

	res, ins, ok, err := doc.AutoClose('(', at(0, 5))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, at(0, 6), ins.Cursor)
	require.Len(t, res.Updates, 1)
	assert.Equal(t, []string{"print()", "x"}, doc.Snapshot().Lines)
	assert.Empty(t, doc.Problems())

	_, _, ok, err = doc.AutoClose('a', at(0, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, _, err = doc.AutoClose('[', at(5, 0))
	require.ErrorIs(t, err, highlight.ErrOutOfRange)
}

func TestDocument_SuggestAndAccept(t *testing.T) {
	t.Parallel()

	doc := NewDocument("loop.py", Options{})
	doc.Load(highlight.Lines{"x = 1", "    whi x"})

	q, got, err := doc.Suggest(at(1, 7))
	require.NoError(t, err)
	require.Equal(t, []string{"while"}, got)

	res, r, err := doc.Accept(q, got[0])
	require.NoError(t, err)
	assert.Equal(t, at(1, 9), r.Cursor)
	require.Len(t, res.Updates, 1)
	assert.Equal(t, syntax.KindKeyword, res.Updates[0].Tokens[1].Kind)
	assert.Equal(t, "    while x", doc.Snapshot().Lines[1])

	_, _, err = doc.Suggest(at(9, 0))
	require.ErrorIs(t, err, highlight.ErrOutOfRange)
}

func TestDocument_Problems(t *testing.T) {
	t.Parallel()

	doc := NewDocument("bad.py", Options{})
	res := doc.Load(highlight.Lines{
		"x = 'abc",
		"y = [1, 2",
		`s = """doc`,
		"more ]",
	})

	kinds := make([]ProblemKind, len(res.Problems))
	positions := make([]syntax.Position, len(res.Problems))
	for i, p := range res.Problems {
		kinds[i] = p.Kind
		positions[i] = p.Pos
	}
	assert.Equal(t, []ProblemKind{ProblemUnterminatedString, ProblemUnclosedBracket, ProblemUnterminatedTriple}, kinds)
	assert.Equal(t, []syntax.Position{at(0, 4), at(1, 4), at(2, 4)}, positions)
	assert.Equal(t, "unterminated triple-quoted string (triple-double)", res.Problems[2].Message)

	res, err := doc.Edit(highlight.ReplaceLine(3, `more """ ]`))
	require.NoError(t, err)
	require.Len(t, res.Problems, 1, "closing the string exposes the ] that closes line 1")
	assert.Equal(t, ProblemUnterminatedString, res.Problems[0].Kind)
}

func TestDocument_MismatchCarriesRelatedBracket(t *testing.T) {
	t.Parallel()

	doc := NewDocument("pair.py", Options{})
	res := doc.Load(highlight.Lines{"f(a", "  b]"})

	require.Len(t, res.Problems, 2)
	open, closer := res.Problems[0], res.Problems[1]

	assert.Equal(t, ProblemMismatchedBracket, open.Kind)
	assert.Equal(t, at(0, 1), open.Pos)
	require.NotNil(t, open.Related)
	assert.Equal(t, at(1, 3), *open.Related)
	assert.Equal(t, "mismatched bracket '(' pairs with ']' at 2:4", open.Detail())

	require.NotNil(t, closer.Related)
	assert.Equal(t, at(0, 1), *closer.Related)
	assert.Equal(t, "mismatched bracket ']' pairs with '('", closer.Message)
}

func TestDocument_ThemeAndSnapshot(t *testing.T) {
	t.Parallel()

	doc := NewDocument("t.py", Options{})
	doc.Load(highlight.Lines{"if x:"})

	res := doc.SetTheme(highlight.Palette{syntax.KindKeyword: {Foreground: "#FF00FF"}})
	require.Len(t, res.Updates, 1)
	require.Len(t, res.Updates[0].Styles, 1)
	assert.Equal(t, syntax.KindKeyword, res.Updates[0].Styles[0].Kind)

	snap := doc.Snapshot()
	assert.Equal(t, doc.Handle(), snap.Handle)
	assert.Equal(t, "t.py", snap.Name)
	assert.Equal(t, []syntax.LineState{syntax.StateNormal}, snap.States)
	assert.Equal(t, 1, snap.Stats.Loads)
	require.Len(t, snap.Tokens, 1)
	assert.Equal(t, syntax.KindKeyword, snap.Tokens[0][0].Kind)
}

func TestWorkspace_Lifecycle(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(Options{})
	b, _ := ws.Open("b.py", highlight.Lines{"b"})
	a, _ := ws.Open("a.py", highlight.Lines{"a"})
	assert.Equal(t, 2, ws.Len())
	assert.NotEqual(t, a.Handle(), b.Handle())

	got, err := ws.Get(a.Handle())
	require.NoError(t, err)
	assert.Same(t, a, got)

	docs := ws.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, "a.py", docs[0].Name())

	found, ok := ws.Lookup("b.py")
	require.True(t, ok)
	assert.Same(t, b, found)

	require.NoError(t, ws.Close(a.Handle()))
	require.ErrorIs(t, ws.Close(a.Handle()), ErrUnknownDocument)
	_, err = ws.Get(a.Handle())
	require.ErrorIs(t, err, ErrUnknownDocument)
	_, ok = ws.Lookup("a.py")
	assert.False(t, ok)
	assert.Equal(t, 1, ws.Len())
}

func TestHandle_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHandle()
	parsed, err := ParseHandle(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	text, err := h.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, h.String(), string(text))

	_, err = ParseHandle("not-a-uuid")
	require.Error(t, err)
}

func TestWorkspace_ConcurrentEdits(t *testing.T) {
	t.Parallel()

	ws := NewWorkspace(Options{})
	shared, _ := ws.Open("shared.py", highlight.Lines{""})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			own, _ := ws.Open(fmt.Sprintf("own%d.py", i), highlight.Lines{"x"})
			for j := range 20 {
				_, err := own.Edit(highlight.ReplaceLine(0, fmt.Sprintf("x = (%d)", j)))
				assert.NoError(t, err)
				_, err = shared.Edit(highlight.InsertLines(0, "y = [1]"))
				assert.NoError(t, err)
				_, err = shared.MatchFor(at(0, 0))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 9, ws.Len())
	assert.Equal(t, uint64(1+8*20), shared.Version())
	assert.Len(t, shared.Snapshot().Lines, 1+8*20)
	assert.Empty(t, shared.Problems())
}
