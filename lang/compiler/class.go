package compiler

import (
	"github.com/lumenforge/lumen/lang/token"
	"github.com/lumenforge/lumen/lang/value"
)

// classDeclaration compiles `class Name [: Base] { ... }`. It emits
// OP_CLASS, then - if there is a superclass - opens a scope holding the
// synthetic "super" local and emits OP_INHERIT, then one OP_METHOD per
// method declaration.
func (c *Compiler) classDeclaration() {
	c.parser.consume(token.IDENTIFIER, "Expect class name.")
	nameTok := c.parser.previous
	nameConstant := c.identifierConstant(nameTok)
	c.declareVariable()

	c.emitOpByte(value.OpClass, nameConstant)
	c.defineVariable(nameConstant)

	cc := &classCompiler{enclosing: c.class}
	c.class = cc

	if c.parser.match(token.COLON) {
		c.parser.consume(token.IDENTIFIER, "Expect superclass name.")
		c.variable(false)
		if c.parser.lexeme(nameTok) == c.parser.lexeme(c.parser.previous) {
			c.parser.errorAtPrevious("A class can't inherit from itself.")
		}

		c.beginScope()
		c.addLocal("super")
		c.defineVariable(0)

		c.namedVariable(nameTok, false)
		c.emitOp(value.OpInherit)
		cc.hasSuperclass = true
	}

	c.namedVariable(nameTok, false)
	c.parser.consume(token.LEFT_BRACE, "Expect '{' before class body.")
	for !c.parser.check(token.RIGHT_BRACE) && !c.parser.check(token.EOF) {
		c.method()
	}
	c.parser.consume(token.RIGHT_BRACE, "Expect '}' after class body.")
	c.emitOp(value.OpPop) // pop the class value pushed for method-decl lookups

	if cc.hasSuperclass {
		c.endScope()
	}
	c.class = cc.enclosing
}

func (c *Compiler) method() {
	c.parser.consume(token.IDENTIFIER, "Expect method name.")
	nameTok := c.parser.previous
	constant := c.identifierConstant(nameTok)

	fnType := typeMethod
	if c.parser.lexeme(nameTok) == "init" {
		fnType = typeInitializer
	}
	c.function(fnType)
	c.emitOpByte(value.OpMethod, constant)
}
