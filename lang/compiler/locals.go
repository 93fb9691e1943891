package compiler

import (
	"github.com/lumenforge/lumen/lang/token"
	"github.com/lumenforge/lumen/lang/value"
)

// parseVariable consumes an identifier, declares it (as a local if inside
// a scope) and returns the constant-pool index to use with
// OP_DEFINE_GLOBAL if it turns out to be a global; the index is unused for
// locals.
func (c *Compiler) parseVariable(errMsg string) byte {
	c.parser.consume(token.IDENTIFIER, errMsg)
	c.declareVariable()
	if c.current.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.parser.previous)
}

// declareVariable registers the just-consumed identifier token as a new
// local in the current scope. At global scope this is a no-op: globals are
// resolved by name at runtime, not by slot.
func (c *Compiler) declareVariable() {
	if c.current.scopeDepth == 0 {
		return
	}
	name := c.parser.lexeme(c.parser.previous)
	for i := len(c.current.locals) - 1; i >= 0; i-- {
		l := c.current.locals[i]
		if l.depth != -1 && l.depth < c.current.scopeDepth {
			break
		}
		if l.name == name {
			c.parser.errorAtPrevious("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name string) {
	if len(c.current.locals) >= maxLocals {
		c.parser.errorAtPrevious("Too many local variables in function.")
		return
	}
	c.current.locals = append(c.current.locals, local{name: name, depth: -1})
}

// markInitialized finalizes the most recently declared local's depth, so
// it becomes legal to reference; for a global (scopeDepth == 0 at
// function-top-level) there is no local slot to finalize.
func (c *Compiler) markInitialized() {
	if c.current.scopeDepth == 0 {
		return
	}
	c.current.locals[len(c.current.locals)-1].depth = c.current.scopeDepth
}

// defineVariable finishes a variable declaration: locals need no runtime
// instruction (the value is already sitting in its slot on the stack),
// globals emit OP_DEFINE_GLOBAL against the name constant global returned
// by parseVariable.
func (c *Compiler) defineVariable(global byte) {
	if c.current.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(value.OpDefineGlobal, global)
}

// resolveLocal searches fr's locals top-down (innermost scope first) for
// name, returning its slot index or -1 if not found. A local whose depth
// is still -1 has been declared but not yet initialized; referencing it in
// its own initializer is a compile error.
func (c *Compiler) resolveLocal(fr *frame, name string) int {
	for i := len(fr.locals) - 1; i >= 0; i-- {
		l := fr.locals[i]
		if l.name != name {
			continue
		}
		if l.depth == -1 {
			c.parser.errorAtPrevious("Can't read local variable in its own initializer.")
		}
		return i
	}
	return -1
}

// resolveUpvalue recursively searches enclosing frames for name, adding an
// upvalue descriptor to every frame between the one that owns the local
// and fr, deduplicating repeated captures of the same variable.
func (c *Compiler) resolveUpvalue(fr *frame, name string) int {
	if fr.enclosing == nil {
		return -1
	}
	if local := c.resolveLocal(fr.enclosing, name); local != -1 {
		fr.enclosing.locals[local].isCaptured = true
		return c.addUpvalue(fr, uint8(local), true)
	}
	if up := c.resolveUpvalue(fr.enclosing, name); up != -1 {
		return c.addUpvalue(fr, uint8(up), false)
	}
	return -1
}

func (c *Compiler) addUpvalue(fr *frame, index uint8, isLocal bool) int {
	for i, up := range fr.upvalues {
		if up.index == index && up.isLocal == isLocal {
			return i
		}
	}
	if len(fr.upvalues) >= maxLocals {
		c.parser.errorAtPrevious("Too many closure variables in function.")
		return 0
	}
	fr.upvalues = append(fr.upvalues, upvalueDesc{index: index, isLocal: isLocal})
	fr.fn.Upvalues = append(fr.fn.Upvalues, value.UpvalueDesc{Index: index, IsLocal: isLocal})
	fr.fn.UpvalueCount = len(fr.upvalues)
	return len(fr.upvalues) - 1
}
