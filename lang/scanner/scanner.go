// Package scanner turns Lumen source text into a lazy stream of tokens for
// the compiler's single-pass Pratt parser.
package scanner

import (
	"github.com/lumenforge/lumen/lang/token"
)

// Scanner is a single-pass, zero-copy tokenizer. It looks at most two bytes
// ahead (peek and peekNext, the latter for "//" comments and the digit after
// a decimal point); the compiler drives it one token at a time.
type Scanner struct {
	src     []byte
	start   int // start of the lexeme currently being scanned
	current int // offset of the next unread byte
	line    int

	// errBuf accumulates the text of synthesized error messages. Error tokens
	// carry a (start, length) pair that indexes into errBuf rather than src,
	// the same trick the scanner uses to avoid allocating a token body for
	// ordinary lexemes.
	errBuf []byte
}

// New returns a Scanner positioned at the start of src.
func New(src []byte) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Lexeme returns the literal text covered by tok. It resolves error tokens
// against the scanner's internal message buffer and all other tokens
// against the original source.
func (s *Scanner) Lexeme(tok token.Token) string {
	if tok.Kind == token.ERROR {
		return string(s.errBuf[tok.Start : tok.Start+tok.Length])
	}
	return string(s.src[tok.Start : tok.Start+tok.Length])
}

// Scan returns the next token in the source.
func (s *Scanner) Scan() token.Token {
	s.skipWhitespaceAndComments()
	s.start = s.current

	if s.atEnd() {
		return s.make(token.EOF)
	}

	c := s.advance()
	if isAlpha(c) {
		return s.identifier()
	}
	if isDigit(c) {
		return s.number()
	}

	switch c {
	case '(':
		return s.make(token.LEFT_PAREN)
	case ')':
		return s.make(token.RIGHT_PAREN)
	case '{':
		return s.make(token.LEFT_BRACE)
	case '}':
		return s.make(token.RIGHT_BRACE)
	case ',':
		return s.make(token.COMMA)
	case '.':
		return s.make(token.DOT)
	case '-':
		return s.make(token.MINUS)
	case '+':
		return s.make(token.PLUS)
	case ';':
		return s.make(token.SEMICOLON)
	case ':':
		return s.make(token.COLON)
	case '*':
		return s.make(token.STAR)
	case '/':
		return s.make(token.SLASH)
	case '!':
		if s.match('=') {
			return s.make(token.BANG_EQUAL)
		}
		return s.make(token.BANG)
	case '=':
		if s.match('=') {
			return s.make(token.EQUAL_EQUAL)
		}
		return s.make(token.EQUAL)
	case '<':
		if s.match('=') {
			return s.make(token.LESS_EQUAL)
		}
		return s.make(token.LESS)
	case '>':
		if s.match('=') {
			return s.make(token.GREATER_EQUAL)
		}
		return s.make(token.GREATER)
	case '"':
		return s.string()
	}

	return s.errorToken("Unexpected character.")
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *Scanner) match(want byte) bool {
	if s.atEnd() || s.src[s.current] != want {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.advance()
		case '\n':
			s.line++
			s.advance()
		case '/':
			if s.peekNext() == '/' {
				for s.peek() != '\n' && !s.atEnd() {
					s.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) make(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Start: s.start, Length: s.current - s.start, Line: s.line}
}

func (s *Scanner) errorToken(msg string) token.Token {
	start := len(s.errBuf)
	s.errBuf = append(s.errBuf, msg...)
	return token.Token{Kind: token.ERROR, Start: start, Length: len(msg), Line: s.line}
}

func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	lit := string(s.src[s.start:s.current])
	return s.make(token.Lookup(lit))
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
