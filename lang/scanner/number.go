package scanner

import "github.com/lumenforge/lumen/lang/token"

// number scans a NUMBER token: a run of digits, optionally followed by a
// single '.' and a further run of digits. The '.' is only consumed as part
// of the number if it is followed by a digit, so that a bare "1.method()"
// parses as property access on the integer 1.
func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume the '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	return s.make(token.NUMBER)
}
