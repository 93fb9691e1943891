package compiler

import (
	"strconv"

	"github.com/lumenforge/lumen/lang/token"
	"github.com/lumenforge/lumen/lang/value"
)

// precedence is the engine's operator precedence ladder, ascending: a
// token's infix rule is applied while the next token's precedence is at
// least as high as the precedence parsePrecedence was called with.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

var rules map[token.Kind]rule

func init() {
	rules = map[token.Kind]rule{
		token.LEFT_PAREN:    {prefix: (*Compiler).grouping, infix: (*Compiler).call, precedence: precCall},
		token.DOT:           {infix: (*Compiler).dot, precedence: precCall},
		token.MINUS:         {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm},
		token.PLUS:          {infix: (*Compiler).binary, precedence: precTerm},
		token.SLASH:         {infix: (*Compiler).binary, precedence: precFactor},
		token.STAR:          {infix: (*Compiler).binary, precedence: precFactor},
		token.BANG:          {prefix: (*Compiler).unary},
		token.BANG_EQUAL:    {infix: (*Compiler).binary, precedence: precEquality},
		token.EQUAL_EQUAL:   {infix: (*Compiler).binary, precedence: precEquality},
		token.GREATER:       {infix: (*Compiler).binary, precedence: precComparison},
		token.GREATER_EQUAL: {infix: (*Compiler).binary, precedence: precComparison},
		token.LESS:          {infix: (*Compiler).binary, precedence: precComparison},
		token.LESS_EQUAL:    {infix: (*Compiler).binary, precedence: precComparison},
		token.IDENTIFIER:    {prefix: (*Compiler).variable},
		token.STRING:        {prefix: (*Compiler).stringLiteral},
		token.NUMBER:        {prefix: (*Compiler).number},
		token.AND:           {infix: (*Compiler).and_, precedence: precAnd},
		token.OR:            {infix: (*Compiler).or_, precedence: precOr},
		token.FALSE:         {prefix: (*Compiler).literal},
		token.TRUE:          {prefix: (*Compiler).literal},
		token.NIL:           {prefix: (*Compiler).literal},
		token.THIS:          {prefix: (*Compiler).this_},
		token.SUPER:         {prefix: (*Compiler).super_},
	}
}

func getRule(kind token.Kind) rule { return rules[kind] }

// expression parses and compiles a single expression at precAssignment,
// the lowest precedence that still excludes bare statement separators.
func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

// parsePrecedence consumes a prefix expression and then repeatedly applies
// infix rules while the next token's precedence is at least prec - the
// heart of the engine's precedence-climbing Pratt parser.
func (c *Compiler) parsePrecedence(prec precedence) {
	c.parser.advance()
	prefixRule := getRule(c.parser.previous.Kind).prefix
	if prefixRule == nil {
		c.parser.errorAtPrevious("Expect expression.")
		return
	}

	canAssign := prec <= precAssignment
	prefixRule(c, canAssign)

	for prec <= getRule(c.parser.current.Kind).precedence {
		c.parser.advance()
		infixRule := getRule(c.parser.previous.Kind).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.parser.match(token.EQUAL) {
		c.parser.errorAtPrevious("Invalid assignment target.")
	}
}

func (c *Compiler) number(canAssign bool) {
	lit := c.parser.lexeme(c.parser.previous)
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		c.parser.errorAtPrevious("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

// stringLiteral strips the surrounding quotes and interns the remaining
// bytes as a String constant. Lumen strings have no escape sequences -
// a literal backslash is just a backslash.
func (c *Compiler) stringLiteral(canAssign bool) {
	lit := c.parser.lexeme(c.parser.previous)
	raw := lit[1 : len(lit)-1]
	s := c.alloc.InternString(raw)
	c.emitConstant(value.FromObj(s))
}

func (c *Compiler) literal(canAssign bool) {
	switch c.parser.previous.Kind {
	case token.FALSE:
		c.emitOp(value.OpFalse)
	case token.TRUE:
		c.emitOp(value.OpTrue)
	case token.NIL:
		c.emitOp(value.OpNil)
	}
}

func (c *Compiler) grouping(canAssign bool) {
	c.expression()
	c.parser.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
}

func (c *Compiler) unary(canAssign bool) {
	opKind := c.parser.previous.Kind
	c.parsePrecedence(precUnary)
	switch opKind {
	case token.MINUS:
		c.emitOp(value.OpNegate)
	case token.BANG:
		c.emitOp(value.OpNot)
	}
}

func (c *Compiler) binary(canAssign bool) {
	opKind := c.parser.previous.Kind
	r := getRule(opKind)
	c.parsePrecedence(r.precedence + 1)

	switch opKind {
	case token.BANG_EQUAL:
		c.emitOp(value.OpEqual)
		c.emitOp(value.OpNot)
	case token.EQUAL_EQUAL:
		c.emitOp(value.OpEqual)
	case token.GREATER:
		c.emitOp(value.OpGreater)
	case token.GREATER_EQUAL:
		c.emitOp(value.OpLess)
		c.emitOp(value.OpNot)
	case token.LESS:
		c.emitOp(value.OpLess)
	case token.LESS_EQUAL:
		c.emitOp(value.OpGreater)
		c.emitOp(value.OpNot)
	case token.PLUS:
		c.emitOp(value.OpAdd)
	case token.MINUS:
		c.emitOp(value.OpSubtract)
	case token.STAR:
		c.emitOp(value.OpMultiply)
	case token.SLASH:
		c.emitOp(value.OpDivide)
	}
}

// and_ short-circuits: if the left operand is falsey, jump over the right
// operand entirely, leaving the falsey value as the result.
func (c *Compiler) and_(canAssign bool) {
	endJump := c.emitJump(value.OpJumpIfFalse)
	c.emitOp(value.OpPop)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

// or_ short-circuits: if the left operand is truthy, jump over the right
// operand entirely, leaving the truthy value as the result.
func (c *Compiler) or_(canAssign bool) {
	elseJump := c.emitJump(value.OpJumpIfFalse)
	endJump := c.emitJump(value.OpJump)
	c.patchJump(elseJump)
	c.emitOp(value.OpPop)
	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) argumentList() byte {
	argCount := 0
	if !c.parser.check(token.RIGHT_PAREN) {
		for {
			c.expression()
			if argCount == maxArgs {
				c.parser.errorAtPrevious("Can't have more than 255 arguments.")
			}
			argCount++
			if !c.parser.match(token.COMMA) {
				break
			}
		}
	}
	c.parser.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return byte(argCount)
}

func (c *Compiler) call(canAssign bool) {
	argCount := c.argumentList()
	c.emitOpByte(value.OpCall, argCount)
}

// dot compiles property access and, when immediately followed by a call,
// fuses it into OP_INVOKE rather than OP_GET_PROPERTY + OP_CALL.
func (c *Compiler) dot(canAssign bool) {
	c.parser.consume(token.IDENTIFIER, "Expect property name after '.'.")
	name := c.identifierConstant(c.parser.previous)

	switch {
	case canAssign && c.parser.match(token.EQUAL):
		c.expression()
		c.emitOpByte(value.OpSetProperty, name)
	case c.parser.match(token.LEFT_PAREN):
		argCount := c.argumentList()
		c.emitOpByte(value.OpInvoke, name)
		c.emitByte(argCount)
	default:
		c.emitOpByte(value.OpGetProperty, name)
	}
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.parser.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp value.Opcode
	arg := c.resolveLocal(c.current, c.parser.lexeme(name))
	if arg != -1 {
		getOp, setOp = value.OpGetLocal, value.OpSetLocal
	} else if arg = c.resolveUpvalue(c.current, c.parser.lexeme(name)); arg != -1 {
		getOp, setOp = value.OpGetUpvalue, value.OpSetUpvalue
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = value.OpGetGlobal, value.OpSetGlobal
	}

	if canAssign && c.parser.match(token.EQUAL) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}

// this_ compiles a "this" expression by resolving the "this" token through
// namedVariable exactly like a user-written identifier: it names slot 0 of
// a method or initializer, or an upvalue capturing it in a nested closure.
func (c *Compiler) this_(canAssign bool) {
	if c.class == nil {
		c.parser.errorAtPrevious("Can't use 'this' outside of a class.")
		return
	}
	c.namedVariable(c.parser.previous, false)
}

func (c *Compiler) super_(canAssign bool) {
	switch {
	case c.class == nil:
		c.parser.errorAtPrevious("Can't use 'super' outside of a class.")
	case !c.class.hasSuperclass:
		c.parser.errorAtPrevious("Can't use 'super' in a class with no superclass.")
	}

	c.parser.consume(token.DOT, "Expect '.' after 'super'.")
	c.parser.consume(token.IDENTIFIER, "Expect superclass method name.")
	name := c.identifierConstant(c.parser.previous)

	c.namedVariableString("this")
	if c.parser.match(token.LEFT_PAREN) {
		argCount := c.argumentList()
		c.namedVariableString("super")
		c.emitOpByte(value.OpSuperInvoke, name)
		c.emitByte(argCount)
	} else {
		c.namedVariableString("super")
		c.emitOpByte(value.OpGetSuper, name)
	}
}

// namedVariableString resolves and emits a get for a compiler-synthesized
// identifier (the "this" local beginFunction reserves for methods and the
// "super" local classDeclaration installs), since
// those never appear as a literal token.Token pointing into real source.
func (c *Compiler) namedVariableString(name string) {
	var getOp value.Opcode
	arg := c.resolveLocal(c.current, name)
	if arg != -1 {
		getOp = value.OpGetLocal
	} else if arg = c.resolveUpvalue(c.current, name); arg != -1 {
		getOp = value.OpGetUpvalue
	}
	c.emitOpByte(getOp, byte(arg))
}
