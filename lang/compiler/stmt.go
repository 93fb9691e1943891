package compiler

import (
	"github.com/lumenforge/lumen/lang/token"
	"github.com/lumenforge/lumen/lang/value"
)

// declaration compiles one top-level-or-block-level declaration and
// resynchronizes after a parse error so a single bad statement doesn't
// cascade into spurious follow-on errors.
func (c *Compiler) declaration() {
	switch {
	case c.parser.match(token.CLASS):
		c.classDeclaration()
	case c.parser.match(token.FUN):
		c.funDeclaration()
	case c.parser.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}

	if c.parser.panicMode {
		c.parser.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.parser.match(token.EQUAL) {
		c.expression()
	} else {
		c.emitOp(value.OpNil)
	}
	c.parser.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

func (c *Compiler) statement() {
	switch {
	case c.parser.match(token.PRINT):
		c.printStatement()
	case c.parser.match(token.IMPORT):
		// Reserved but non-functional: accepted syntactically, no code is
		// emitted; reserved for the host, not yet functional.
		c.parser.consume(token.STRING, "Expect module path after 'import'.")
		c.parser.consume(token.SEMICOLON, "Expect ';' after import.")
	case c.parser.match(token.IF):
		c.ifStatement()
	case c.parser.match(token.RETURN):
		c.returnStatement()
	case c.parser.match(token.WHILE):
		c.whileStatement()
	case c.parser.match(token.FOR):
		c.forStatement()
	case c.parser.match(token.LEFT_BRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.parser.consume(token.SEMICOLON, "Expect ';' after value.")
	c.emitOp(value.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.parser.consume(token.SEMICOLON, "Expect ';' after expression.")
	c.emitOp(value.OpPop)
}

func (c *Compiler) block() {
	for !c.parser.check(token.RIGHT_BRACE) && !c.parser.check(token.EOF) {
		c.declaration()
	}
	c.parser.consume(token.RIGHT_BRACE, "Expect '}' after block.")
}

func (c *Compiler) ifStatement() {
	c.parser.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	c.expression()
	c.parser.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	thenJump := c.emitJump(value.OpJumpIfFalse)
	c.emitOp(value.OpPop)
	c.statement()

	elseJump := c.emitJump(value.OpJump)
	c.patchJump(thenJump)
	c.emitOp(value.OpPop)

	if c.parser.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.curChunk().Code)
	c.parser.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	c.expression()
	c.parser.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	exitJump := c.emitJump(value.OpJumpIfFalse)
	c.emitOp(value.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(value.OpPop)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.parser.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	switch {
	case c.parser.match(token.SEMICOLON):
		// no initializer
	case c.parser.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.curChunk().Code)
	exitJump := -1
	if !c.parser.match(token.SEMICOLON) {
		c.expression()
		c.parser.consume(token.SEMICOLON, "Expect ';' after loop condition.")
		exitJump = c.emitJump(value.OpJumpIfFalse)
		c.emitOp(value.OpPop)
	}

	if !c.parser.check(token.RIGHT_PAREN) {
		bodyJump := c.emitJump(value.OpJump)
		incrementStart := len(c.curChunk().Code)
		c.expression()
		c.emitOp(value.OpPop)
		c.parser.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	} else {
		c.parser.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(value.OpPop)
	}

	c.endScope()
}

func (c *Compiler) returnStatement() {
	if c.current.fnType == typeScript {
		c.parser.errorAtPrevious("Can't return from top-level code.")
	}

	if c.parser.match(token.SEMICOLON) {
		c.emitReturn()
		return
	}

	if c.current.fnType == typeInitializer {
		c.parser.errorAtPrevious("Can't return a value from an initializer.")
	}
	c.expression()
	c.parser.consume(token.SEMICOLON, "Expect ';' after return value.")
	c.emitOp(value.OpReturn)
}
