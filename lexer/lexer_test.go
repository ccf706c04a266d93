package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skx/tinyc/compileerr"
	"github.com/skx/tinyc/token"
)

func allTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestPunctuationAndOperators(t *testing.T) {
	toks := allTokens(t, "{}();=+-*/<>")
	types := make([]token.Type, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []token.Type{
		token.LBRACE, token.RBRACE, token.LPAREN, token.RPAREN, token.SEMI,
		token.ASSIGN, token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
		token.LT, token.GT, token.EOF,
	}, types)
}

func TestReservedWords(t *testing.T) {
	toks := allTokens(t, "do else if while void return int")
	var types []token.Type
	for _, tok := range toks[:len(toks)-1] {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []token.Type{
		token.DO, token.ELSE, token.IF, token.WHILE, token.VOID, token.RETURN, token.INT,
	}, types)
}

func TestNumber(t *testing.T) {
	toks := allTokens(t, "0 127 128 32767 32768 100000")
	want := []int{0, 127, 128, 32767, 32768, 100000}
	require.Len(t, toks, len(want)+1)
	for i, w := range want {
		assert.Equal(t, token.NUMBER, toks[i].Type)
		assert.Equal(t, w, toks[i].IntVal)
	}
}

func TestIdentifier(t *testing.T) {
	toks := allTokens(t, "counter _tmp a1")
	require.Len(t, toks, 4)
	for i, name := range []string{"counter", "_tmp", "a1"} {
		assert.Equal(t, token.IDENT, toks[i].Type)
		assert.Equal(t, name, toks[i].Name)
	}
}

func TestFuncCallCollapsesToSingleToken(t *testing.T) {
	toks := allTokens(t, "inc();")
	require.Len(t, toks, 3)
	assert.Equal(t, token.FUNC, toks[0].Type)
	assert.Equal(t, "inc", toks[0].Name)
	assert.Equal(t, token.SEMI, toks[1].Type)
}

func TestLineComment(t *testing.T) {
	toks := allTokens(t, "1 // this is a comment\n+ 2")
	require.Len(t, toks, 4)
	assert.Equal(t, token.NUMBER, toks[0].Type)
	assert.Equal(t, token.PLUS, toks[1].Type)
	assert.Equal(t, token.NUMBER, toks[2].Type)
}

func TestUnexpectedCharacterIsLexError(t *testing.T) {
	l := New("$")
	_, err := l.NextToken()
	require.Error(t, err)
	var lexErr *compileerr.LexError
	assert.ErrorAs(t, err, &lexErr)
}

func TestMissingCloseParenAfterCallIsSyntaxError(t *testing.T) {
	l := New("inc(")
	_, err := l.NextToken()
	require.Error(t, err)
	var synErr *compileerr.SyntaxError
	assert.ErrorAs(t, err, &synErr)
}

func TestLongIdentifierIsTruncated(t *testing.T) {
	name := strings.Repeat("a", 100)
	l := New(name + " ")
	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Len(t, tok.Name, MaxIdentLen)
}
