// Package machine implements the virtual machine that executes compiled
// Lumen bytecode: a stack-based interpreter with call frames, closures,
// class dispatch, and a precise mark-sweep garbage collector over the
// shared object heap.
package machine

import "github.com/lumenforge/lumen/lang/value"

// maxFrames bounds the VM's call-frame array; exceeding it is a runtime
// "Stack overflow." error rather than an unbounded Go call stack.
const maxFrames = 64

// stackMax is sized so that every frame could in principle use a full
// 256-slot operand window, matching the one-byte GetLocal/SetLocal operand
// encoding.
const stackMax = maxFrames * 256

// CallFrame is a per-active-call record: the Closure being executed, an
// instruction cursor into its Chunk, and the base index into the VM's
// value stack where slot 0 (the callee, or "this" for methods) begins.
type CallFrame struct {
	closure   *value.Closure
	ip        int
	slotsBase int
}

func (fr *CallFrame) chunk() *value.Chunk { return &fr.closure.Function.Chunk }

func (fr *CallFrame) readByte() byte {
	b := fr.chunk().Code[fr.ip]
	fr.ip++
	return b
}

func (fr *CallFrame) readShort() uint16 {
	hi := fr.readByte()
	lo := fr.readByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (fr *CallFrame) readConstant() value.Value {
	return fr.chunk().Constants[fr.readByte()]
}

func (fr *CallFrame) readString() *value.String {
	return fr.readConstant().AsObj().(*value.String)
}

// line returns the source line of the instruction just read, used for
// error reporting - Lines[ip-1] because ip has already advanced past it.
func (fr *CallFrame) line() int {
	return int(fr.chunk().Lines[fr.ip-1])
}

// displayName renders the frame's function for a stack trace: "<name>()"
// or "script" for the implicit top-level frame.
func (fr *CallFrame) displayName() string {
	if fr.closure.Function.Name == nil {
		return "script"
	}
	return fr.closure.Function.Name.Chars + "()"
}
