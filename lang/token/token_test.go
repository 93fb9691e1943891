package token_test

import (
	"testing"

	"github.com/lumenforge/lumen/lang/token"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		ident string
		want  token.Kind
	}{
		{"class", token.CLASS},
		{"super", token.SUPER},
		{"this", token.THIS},
		{"nil", token.NIL},
		{"import", token.IMPORT},
		{"notakeyword", token.IDENTIFIER},
		{"classy", token.IDENTIFIER},
	}
	for _, c := range cases {
		require.Equal(t, c.want, token.Lookup(c.ident), c.ident)
	}
}

func TestKindString(t *testing.T) {
	require.Equal(t, "(", token.LEFT_PAREN.String())
	require.Equal(t, "end of file", token.EOF.String())
}

func TestLexeme(t *testing.T) {
	src := []byte(`print "hi";`)
	tok := token.Token{Kind: token.STRING, Start: 6, Length: 4, Line: 1}
	require.Equal(t, `"hi"`, tok.Lexeme(src))
}
