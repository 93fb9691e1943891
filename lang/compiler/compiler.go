package compiler

import (
	"github.com/lumenforge/lumen/lang/scanner"
	"github.com/lumenforge/lumen/lang/token"
	"github.com/lumenforge/lumen/lang/value"
)

const maxLocals = 256
const maxArgs = 255

// Parser holds the scanner-facing parsing state: the two-token lookahead
// window the Pratt parser needs, and the panic-mode error bookkeeping
// described below.
type Parser struct {
	sc       *scanner.Scanner
	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	diags     []Diagnostic
}

func (p *Parser) lexeme(tok token.Token) string { return p.sc.Lexeme(tok) }

func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.sc.Scan()
		if p.current.Kind != token.ERROR {
			break
		}
		p.errorAtCurrent(p.lexeme(p.current))
	}
}

func (p *Parser) check(kind token.Kind) bool { return p.current.Kind == kind }

func (p *Parser) match(kind token.Kind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(kind token.Kind, msg string) {
	if p.current.Kind == kind {
		p.advance()
		return
	}
	p.errorAtCurrent(msg)
}

// funcType distinguishes the four contexts a compiled function body can be
// compiled under, each of which affects what "return" and the implicit
// trailing return are allowed to do.
type funcType int

const (
	typeFunction funcType = iota
	typeInitializer
	typeMethod
	typeScript
)

// local is one entry in a frame's fixed-capacity local-variable table. A
// depth of -1 marks a local that has been declared but not yet initialized
// - referencing it is a compile error.
type local struct {
	name       string
	depth      int
	isCaptured bool
}

// upvalueDesc records how a function's closures capture one free variable:
// either directly from a local slot in the immediately enclosing frame
// (IsLocal true) or by forwarding an upvalue the enclosing frame already
// captured (IsLocal false).
type upvalueDesc struct {
	index   uint8
	isLocal bool
}

// frame is one entry in the compiler's stack of enclosing functions, one
// per function currently being compiled. It owns the locals/upvalues
// tables a function compilation needs and the in-progress Function/Chunk that
// code is being emitted into.
type frame struct {
	enclosing *frame
	fn        *value.Function
	fnType    funcType

	locals     []local
	upvalues   []upvalueDesc
	scopeDepth int
}

// classCompiler is one entry in the compiler's stack of enclosing class
// declarations, tracked so that "this"/"super" and inheritance can be
// validated without a separate resolution pass.
type classCompiler struct {
	enclosing     *classCompiler
	hasSuperclass bool
}

// Compiler drives a single Compile call: one Parser, the current chain of
// function frames, and the current chain of enclosing class declarations.
type Compiler struct {
	parser *Parser
	alloc  Allocator

	current *frame
	class   *classCompiler
}

// Compile parses src as a complete script and emits its top-level Function.
// On any compile error it returns (nil, diagnostics); otherwise it returns
// the compiled Function and a nil diagnostic slice.
func Compile(src []byte, alloc Allocator) (*value.Function, []Diagnostic) {
	p := &Parser{sc: scanner.New(src)}
	c := &Compiler{parser: p, alloc: alloc}

	c.beginFunction(typeScript, "")
	p.advance()
	for !p.match(token.EOF) {
		c.declaration()
	}
	fn := c.endFunction()

	if p.hadError {
		return nil, p.diags
	}
	return fn, nil
}

func (c *Compiler) curChunk() *value.Chunk { return &c.current.fn.Chunk }

func (c *Compiler) emitByte(b byte) {
	c.curChunk().Write(b, c.line())
}

func (c *Compiler) emitOp(op value.Opcode) {
	c.curChunk().WriteOpcode(op, c.line())
}

func (c *Compiler) emitOpByte(op value.Opcode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

func (c *Compiler) line() int {
	if c.parser.previous.Line != 0 {
		return c.parser.previous.Line
	}
	return 1
}

// emitConstant interns v into the current chunk's constant pool and emits
// OP_CONSTANT for it.
func (c *Compiler) emitConstant(v value.Value) {
	idx := c.makeConstant(v)
	c.emitOpByte(value.OpConstant, idx)
}

func (c *Compiler) makeConstant(v value.Value) byte {
	idx, err := c.curChunk().AddConstant(v)
	if err != nil {
		c.parser.errorAtPrevious("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

// identifierConstant interns name's lexeme as a String and adds it to the
// constant pool, returning its index - the representation GetGlobal,
// SetGlobal, DefineGlobal, GetProperty, SetProperty, GetSuper and Method
// all use to name what they operate on.
func (c *Compiler) identifierConstant(tok token.Token) byte {
	s := c.alloc.InternString(c.parser.lexeme(tok))
	return c.makeConstant(value.FromObj(s))
}

// emitJump emits a two-operand jump opcode with a placeholder 16-bit offset
// and returns the offset of the first placeholder byte, to be filled in
// later by patchJump.
func (c *Compiler) emitJump(op value.Opcode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.curChunk().Code) - 2
}

// patchJump rewrites the placeholder emitted at offset so that it jumps to
// the current end of the chunk.
func (c *Compiler) patchJump(offset int) {
	jump := len(c.curChunk().Code) - offset - 2
	if jump > 0xffff {
		c.parser.errorAtPrevious("Too much code to jump over.")
	}
	c.curChunk().Code[offset] = byte(uint16(jump) >> 8)
	c.curChunk().Code[offset+1] = byte(uint16(jump))
}

// emitLoop emits OP_LOOP with a backward 16-bit offset to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(value.OpLoop)
	offset := len(c.curChunk().Code) - loopStart + 2
	if offset > 0xffff {
		c.parser.errorAtPrevious("Loop body too large.")
	}
	c.emitByte(byte(uint16(offset) >> 8))
	c.emitByte(byte(uint16(offset)))
}

// emitReturn emits the implicit trailing return every function body gets:
// "this" for initializers (so that `var p = P();` style construction
// returns the new instance even without an explicit return), nil otherwise.
func (c *Compiler) emitReturn() {
	if c.current.fnType == typeInitializer {
		c.emitOpByte(value.OpGetLocal, 0)
	} else {
		c.emitOp(value.OpNil)
	}
	c.emitOp(value.OpReturn)
}

func (c *Compiler) beginScope() { c.current.scopeDepth++ }

// endScope closes the innermost scope, popping its locals off the runtime
// stack - emitting OP_CLOSE_UPVALUE instead of OP_POP for any local that
// was captured by a nested closure.
func (c *Compiler) endScope() {
	c.current.scopeDepth--
	locals := c.current.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.current.scopeDepth {
		if locals[len(locals)-1].isCaptured {
			c.emitOp(value.OpCloseUpvalue)
		} else {
			c.emitOp(value.OpPop)
		}
		locals = locals[:len(locals)-1]
	}
	c.current.locals = locals
}

// beginFunction pushes a new frame for a function named name (empty for
// the implicit top-level script) and registers it as a GC root for the
// duration of its compilation.
func (c *Compiler) beginFunction(fnType funcType, name string) {
	fn := c.alloc.NewFunction()
	if name != "" {
		fn.Name = c.alloc.InternString(name)
	}
	c.alloc.PushCompilerRoot(fn)

	fr := &frame{enclosing: c.current, fn: fn, fnType: fnType}
	// Slot 0 is reserved: the receiver for methods/initializers, or an
	// unnamed slot for plain functions and the top-level script, exactly
	// matching CallFrame.slotsBase+0 at runtime. Giving it the synthetic
	// name "this" for methods lets nested closures inside a method capture
	// the receiver as an upvalue the same way they capture any other local.
	recvName := ""
	if fnType == typeMethod || fnType == typeInitializer {
		recvName = "this"
	}
	fr.locals = append(fr.locals, local{name: recvName, depth: 0})
	c.current = fr
}

// endFunction closes out the current frame, emits its implicit return, and
// returns the finished Function, restoring the enclosing frame (if any) as
// current.
func (c *Compiler) endFunction() *value.Function {
	c.emitReturn()
	fn := c.current.fn
	c.alloc.PopCompilerRoot()
	c.current = c.current.enclosing
	return fn
}
