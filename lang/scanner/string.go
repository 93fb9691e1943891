package scanner

import "github.com/lumenforge/lumen/lang/token"

// string scans a STRING token. The opening quote has already been consumed.
// Strings may span multiple lines; an unterminated string yields an error
// token rather than panicking or silently truncating.
func (s *Scanner) string() token.Token {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		return s.errorToken("Unterminated string.")
	}

	s.advance() // the closing quote
	return s.make(token.STRING)
}
