package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexWordsAndFlags(t *testing.T) {
	tokens, err := Lex("resize ./img -w 100")
	require.NoError(t, err)

	assert.Equal(t, []Token{
		{Kind: Word, Text: "resize", Pos: 0},
		{Kind: Word, Text: "./img", Pos: 7},
		{Kind: Flag, Text: "-w", Pos: 13},
		{Kind: Word, Text: "100", Pos: 16},
	}, tokens)
}

func TestLexOperatorsWithoutWhitespace(t *testing.T) {
	tokens, err := Lex("(a|b),c")
	require.NoError(t, err)

	var kinds []TokenKind
	var texts []string
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []TokenKind{LParen, Word, Pipe, Word, RParen, Comma, Word}, kinds)
	assert.Equal(t, []string{"(", "a", "|", "b", ")", ",", "c"}, texts)
}

func TestLexQuotes(t *testing.T) {
	tokens, err := Lex(`convert 'my file.png' -o "out dir"`)
	require.NoError(t, err)

	require.Len(t, tokens, 4)
	assert.Equal(t, Token{Kind: Word, Text: "convert", Pos: 0}, tokens[0])
	assert.Equal(t, Token{Kind: Word, Text: "my file.png", Pos: 8}, tokens[1])
	assert.Equal(t, Token{Kind: Flag, Text: "-o", Pos: 22}, tokens[2])
	assert.Equal(t, Token{Kind: Word, Text: "out dir", Pos: 25}, tokens[3])
}

func TestLexQuotedDashIsWord(t *testing.T) {
	tokens, err := Lex(`grep '-v'`)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, Word, tokens[1].Kind)
	assert.Equal(t, "-v", tokens[1].Text)
}

func TestLexEscapeInsideQuotes(t *testing.T) {
	tokens, err := Lex(`echo 'it\'s'`)
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, "it's", tokens[1].Text)
}

func TestLexUnterminatedQuote(t *testing.T) {
	_, err := Lex(`convert 'broken`)
	require.Error(t, err)

	lexErr, ok := err.(*LexError)
	require.True(t, ok, "expected *LexError, got %T", err)
	assert.Equal(t, 8, lexErr.Pos)
}

func TestLexEmptyLine(t *testing.T) {
	tokens, err := Lex("   \t ")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}
