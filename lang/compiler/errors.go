package compiler

import (
	"fmt"

	"github.com/lumenforge/lumen/lang/token"
)

// Diagnostic is a single compile-time error report: a source line plus
// enough context to reproduce the reference engine's
// "[line N] Error at '<lexeme>': <msg>" format.
type Diagnostic struct {
	Line    int
	Where   string // "", "at end", or "at '<lexeme>'"
	Message string
}

func (d Diagnostic) String() string {
	if d.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", d.Line, d.Where, d.Message)
}

// errorAt reports a diagnostic anchored at tok, unless the parser is
// already in panic mode - panic mode suppresses cascading errors until
// synchronize() finds a statement boundary to resume at.
func (p *Parser) errorAt(tok token.Token, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	var where string
	switch {
	case tok.Kind == token.EOF:
		where = "at end"
	case tok.Kind == token.ERROR:
		where = ""
	default:
		where = fmt.Sprintf("at '%s'", p.lexeme(tok))
	}
	p.diags = append(p.diags, Diagnostic{Line: tok.Line, Where: where, Message: msg})
}

// errorAtCurrent reports a diagnostic anchored at the current token.
func (p *Parser) errorAtCurrent(msg string) { p.errorAt(p.current, msg) }

// errorAtPrevious reports a diagnostic anchored at the token just consumed.
func (p *Parser) errorAtPrevious(msg string) { p.errorAt(p.previous, msg) }

// synchronize discards tokens until it reaches what looks like a statement
// boundary: a semicolon, or a keyword that starts a new declaration. This
// keeps a single syntax error from producing a cascade of spurious ones.
func (p *Parser) synchronize() {
	p.panicMode = false

	for p.current.Kind != token.EOF {
		if p.previous.Kind == token.SEMICOLON {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR,
			token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
