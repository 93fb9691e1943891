package scanner_test

import (
	"testing"

	"github.com/lumenforge/lumen/lang/scanner"
	"github.com/lumenforge/lumen/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]token.Token, *scanner.Scanner) {
	t.Helper()
	s := scanner.New([]byte(src))
	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, s
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks, _ := scanAll(t, "(){},.-+;:*/!!====<<=>>=")
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.COLON,
		token.STAR, token.SLASH, token.BANG, token.BANG_EQUAL, token.EQUAL_EQUAL,
		token.EQUAL, token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
		token.EOF,
	}, kinds)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks, s := scanAll(t, "class super this x1 _y while")
	kinds := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{
		token.CLASS, token.SUPER, token.THIS, token.IDENTIFIER, token.IDENTIFIER,
		token.WHILE, token.EOF,
	}, kinds)
	require.Equal(t, "x1", s.Lexeme(toks[3]))
	require.Equal(t, "_y", s.Lexeme(toks[4]))
}

func TestScanNumbers(t *testing.T) {
	toks, s := scanAll(t, "123 3.14 1.method()")
	require.Equal(t, token.NUMBER, toks[0].Kind)
	require.Equal(t, "123", s.Lexeme(toks[0]))
	require.Equal(t, token.NUMBER, toks[1].Kind)
	require.Equal(t, "3.14", s.Lexeme(toks[1]))
	// "1" then "." then "method" - the dot is not absorbed without a
	// trailing digit.
	require.Equal(t, token.NUMBER, toks[2].Kind)
	require.Equal(t, "1", s.Lexeme(toks[2]))
	require.Equal(t, token.DOT, toks[3].Kind)
}

func TestScanStrings(t *testing.T) {
	toks, s := scanAll(t, "\"hello\\nworld\" \"multi\nline\"")
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, `"hello\nworld"`, s.Lexeme(toks[0]))
	require.Equal(t, token.STRING, toks[1].Kind)
	require.Equal(t, 2, toks[1].Line)
}

func TestUnterminatedString(t *testing.T) {
	toks, s := scanAll(t, `"no closing quote`)
	require.Equal(t, token.ERROR, toks[0].Kind)
	require.Equal(t, "Unterminated string.", s.Lexeme(toks[0]))
}

func TestLineCounting(t *testing.T) {
	toks, _ := scanAll(t, "var a = 1;\nvar b = 2;\nprint a + b;")
	// find the final PRINT token's line
	for _, tok := range toks {
		if tok.Kind == token.PRINT {
			require.Equal(t, 3, tok.Line)
		}
	}
}

func TestComments(t *testing.T) {
	toks, _ := scanAll(t, "// a comment\nvar a = 1; // trailing\n")
	require.Equal(t, token.VAR, toks[0].Kind)
}
