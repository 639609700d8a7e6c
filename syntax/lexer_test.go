package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigerc/report"
)

// tokenize lexes source fully, converting raised errors into a return value.
func tokenize(src string) (toks []*Token, err error) {
	defer report.Catch(&err)
	return NewLexer(src).Tokenize(), nil
}

func kinds(toks []*Token) []int {
	result := make([]int, len(toks))
	for i, tok := range toks {
		result[i] = tok.Kind
	}
	return result
}

func TestLexKeywordsAndIdents(t *testing.T) {
	toks, err := tokenize("let var x := 5 in x end")
	require.NoError(t, err)

	assert.Equal(t, []int{
		TOK_LET, TOK_VAR, TOK_IDENT, TOK_ASSIGN, TOK_INTLIT, TOK_IN, TOK_IDENT, TOK_END, TOK_EOF,
	}, kinds(toks))

	assert.Equal(t, "x", toks[2].Value)
	assert.Equal(t, 5, toks[4].IntValue)
}

func TestLexOperators(t *testing.T) {
	toks, err := tokenize("+ - * / = <> < <= > >= & | := : ; , . ( ) [ ] { }")
	require.NoError(t, err)

	assert.Equal(t, []int{
		TOK_PLUS, TOK_MINUS, TOK_STAR, TOK_DIV,
		TOK_EQ, TOK_NEQ, TOK_LT, TOK_LTEQ, TOK_GT, TOK_GTEQ,
		TOK_AMP, TOK_PIPE, TOK_ASSIGN, TOK_COLON, TOK_SEMI, TOK_COMMA, TOK_DOT,
		TOK_LPAREN, TOK_RPAREN, TOK_LBRACKET, TOK_RBRACKET, TOK_LBRACE, TOK_RBRACE,
		TOK_EOF,
	}, kinds(toks))
}

func TestLexStringEscapes(t *testing.T) {
	toks, err := tokenize(`"a\nb\tc\\d\"e\qf"`)
	require.NoError(t, err)

	require.Equal(t, TOK_STRINGLIT, toks[0].Kind)
	assert.Equal(t, "a\nb\tc\\d\"eqf", toks[0].Value)
}

func TestLexNestedComments(t *testing.T) {
	toks, err := tokenize("1 /* outer /* inner */ still outer */ 2")
	require.NoError(t, err)

	assert.Equal(t, []int{TOK_INTLIT, TOK_INTLIT, TOK_EOF}, kinds(toks))
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := tokenize(`"never closed`)
	require.Error(t, err)

	var lexErr *report.LexicalError
	require.ErrorAs(t, err, &lexErr)
	assert.Contains(t, lexErr.Message, "unterminated string")
}

func TestLexUnterminatedComment(t *testing.T) {
	_, err := tokenize("/* no end")
	require.Error(t, err)

	var lexErr *report.LexicalError
	require.ErrorAs(t, err, &lexErr)
}

func TestLexUnexpectedCharacter(t *testing.T) {
	_, err := tokenize("x # y")
	require.Error(t, err)

	var lexErr *report.LexicalError
	require.ErrorAs(t, err, &lexErr)
}

func TestLexPositions(t *testing.T) {
	toks, err := tokenize("x\n  y")
	require.NoError(t, err)

	assert.Equal(t, 1, toks[0].Span.StartLine)
	assert.Equal(t, 1, toks[0].Span.StartCol)
	assert.Equal(t, 2, toks[1].Span.StartLine)
	assert.Equal(t, 3, toks[1].Span.StartCol)
}

func TestLexDivisionVsComment(t *testing.T) {
	toks, err := tokenize("6 / 2")
	require.NoError(t, err)

	assert.Equal(t, []int{TOK_INTLIT, TOK_DIV, TOK_INTLIT, TOK_EOF}, kinds(toks))
}
