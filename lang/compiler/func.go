package compiler

import (
	"github.com/lumenforge/lumen/lang/token"
	"github.com/lumenforge/lumen/lang/value"
)

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(typeFunction)
	c.defineVariable(global)
}

// function compiles one function body - parameter list plus a brace
// block - into its own Function/Chunk, then emits OP_CLOSURE in the
// *enclosing* chunk followed by one (isLocal, index) byte pair per
// upvalue the new function captures.
func (c *Compiler) function(fnType funcType) {
	name := c.parser.lexeme(c.parser.previous)
	c.beginFunction(fnType, name)
	c.beginScope()

	c.parser.consume(token.LEFT_PAREN, "Expect '(' after function name.")
	if !c.parser.check(token.RIGHT_PAREN) {
		for {
			c.current.fn.Arity++
			if c.current.fn.Arity > maxArgs {
				c.parser.errorAtCurrent("Can't have more than 255 parameters.")
			}
			constant := c.parseVariable("Expect parameter name.")
			c.defineVariable(constant)
			if !c.parser.match(token.COMMA) {
				break
			}
		}
	}
	c.parser.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")
	c.parser.consume(token.LEFT_BRACE, "Expect '{' before function body.")
	c.block()

	upvalues := c.current.upvalues
	fn := c.endFunction()

	c.emitOpByte(value.OpClosure, c.makeConstant(value.FromObj(fn)))
	for _, up := range upvalues {
		var isLocal byte
		if up.isLocal {
			isLocal = 1
		}
		c.emitByte(isLocal)
		c.emitByte(up.index)
	}
}
