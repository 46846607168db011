package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pyhl/pkg/syntax"
	"github.com/yaklabco/pyhl/pkg/vocab"
)

func TestSuggest_KeywordsBeforeBuiltins(t *testing.T) {
	t.Parallel()

	e := New(vocab.New([]string{"def", "del"}, []string{"delattr"}), Options{})

	assert.Equal(t, []string{"def", "del", "delattr"}, e.Suggest("de"))
	assert.Equal(t, []string{"del", "delattr"}, e.Suggest("del"))
	assert.Empty(t, e.Suggest(""))
	assert.Empty(t, e.Suggest("De"), "matching is case-sensitive")
	assert.Empty(t, e.Suggest("x"))
}

func TestSuggest_Python(t *testing.T) {
	t.Parallel()

	e := New(nil, Options{})

	got := e.Suggest("pr")
	assert.Equal(t, []string{"print", "property"}, got)

	got = e.Suggest("i")
	require.NotEmpty(t, got)
	assert.Equal(t, []string{"if", "import", "in", "is"}, got[:4])
	assert.Contains(t, got, "isinstance")
}

func TestSuggest_Options(t *testing.T) {
	t.Parallel()

	v := vocab.New([]string{"def", "del"}, []string{"delattr", "dir"})

	e := New(v, Options{MinPrefix: 2})
	assert.Empty(t, e.Suggest("d"))
	assert.Len(t, e.Suggest("de"), 3)

	e = New(v, Options{MaxResults: 2})
	assert.Equal(t, []string{"def", "del"}, e.Suggest("d"))

	e = New(v, Options{MinPrefix: -3, MaxResults: -1})
	assert.Equal(t, Options{MinPrefix: DefaultMinPrefix}, e.Options())
	assert.Len(t, e.Suggest("d"), 4)
}

func TestQueryAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		col    int
		prefix string
	}{
		{"end of word", "x = pri", 7, "pri"},
		{"middle of word", "x = print", 6, "pr"},
		{"after space", "x = ", 4, ""},
		{"start of line", "def", 0, ""},
		{"underscores and digits", "a = my_var2", 11, "my_var2"},
		{"after dot", "os.pa", 5, "pa"},
		{"unicode", "é = ñan", 9, "ñan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := QueryAt(tt.line, syntax.Position{Line: 3, Column: tt.col})
			require.NoError(t, err)
			assert.Equal(t, tt.prefix, q.Prefix)
			assert.Equal(t, tt.col-len(tt.prefix), q.Start().Column)
		})
	}

	_, err := QueryAt("abc", syntax.Position{Column: 4})
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestAccept(t *testing.T) {
	t.Parallel()

	e := New(nil, Options{})
	line := "    whi x"

	q, suggestions, err := e.SuggestAt(line, syntax.Position{Line: 2, Column: 7})
	require.NoError(t, err)
	require.Equal(t, []string{"while"}, suggestions)

	r := Accept(q, suggestions[0])
	assert.Equal(t, Replacement{
		Line:   2,
		Start:  4,
		End:    7,
		Text:   "while",
		Cursor: syntax.Position{Line: 2, Column: 9},
	}, r)

	got, err := r.Apply(line)
	require.NoError(t, err)
	assert.Equal(t, "    while x", got)

	edit, err := r.Edit(line)
	require.NoError(t, err)
	assert.Equal(t, 2, edit.StartLine)
	assert.Equal(t, []string{"    while x"}, edit.NewLines())

	_, err = r.Apply("ab")
	require.ErrorIs(t, err, ErrOutOfRange)
}
