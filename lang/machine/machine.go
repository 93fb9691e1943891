package machine

import (
	"fmt"
	"io"
	"os"

	"github.com/dolthub/swiss"
	"github.com/lumenforge/lumen/lang/compiler"
	"github.com/lumenforge/lumen/lang/value"
)

// Outcome is the three-state result of a top-level Interpret call.
type Outcome int

const (
	Ok Outcome = iota
	CompileError
	RuntimeError
)

func (o Outcome) String() string {
	switch o {
	case Ok:
		return "ok"
	case CompileError:
		return "compile error"
	case RuntimeError:
		return "runtime error"
	default:
		return "unknown outcome"
	}
}

// initialNextGC is the heap-size threshold (bytes_allocated, per the
// engine's own object-size accounting, not real process RSS) at which the
// very first collection runs.
const initialNextGC = 1 << 20

// VM is the engine's single module-scope interpreter instance. It owns
// every piece of process-wide mutable interpreter state: the
// globals table, the string intern table, the "all objects" list, and the
// gray stack, all created by New. Reentrancy from a
// native function back into Interpret is not supported; use a fresh VM per
// top-level script if concurrent interpretation is needed.
type VM struct {
	frames     [maxFrames]CallFrame
	frameCount int

	stack    [stackMax]value.Value
	stackTop int

	globals *value.Table
	strings *swiss.Map[string, *value.String]

	initString *value.String

	openUpvalues *value.Upvalue

	objects        value.Obj
	bytesAllocated int
	nextGC         int
	grayStack      []value.Obj

	compilerRoots []*value.Function

	// StressGC forces a collection before every tracked allocation,
	// exercising the mark/sweep/remove-white-strings invariants far more
	// often than bytesAllocated > nextGC would trigger on its own.
	StressGC bool

	Stdout io.Writer
	Stderr io.Writer
}

// New returns a freshly initialized VM, ready to Interpret scripts. The
// returned VM owns its state until garbage collected by the host's Go
// runtime - there is no explicit Close, since all of its state is ordinary
// Go-GC-managed memory underneath the engine's own accounting layer.
func New() *VM {
	vm := &VM{
		globals: value.NewTable(8),
		strings: swiss.NewMap[string, *value.String](64),
		nextGC:  initialNextGC,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	vm.initString = vm.InternString("init")
	return vm
}

// Interpret compiles source as a complete script and, if it compiles
// cleanly, runs it to completion. Compile diagnostics and runtime error
// stack traces are written to vm.Stderr as a side effect; the return value
// is only the three-state Outcome.
func (vm *VM) Interpret(source []byte) Outcome {
	fn, diags := compiler.Compile(source, vm)
	if fn == nil {
		for _, d := range diags {
			fmt.Fprintln(vm.Stderr, d.String())
		}
		return CompileError
	}

	closure := vm.newClosure(fn)
	vm.push(value.FromObj(closure))
	if err := vm.callValue(value.FromObj(closure), 0); err != nil {
		return RuntimeError
	}

	if err := vm.run(); err != nil {
		return RuntimeError
	}
	return Ok
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
}

// Push and Pop are the host-facing half of the native bridge:
// a Native's NativeFunc body receives its arguments directly, but natives
// that need to manipulate the stack like any other opcode (rather than
// just returning a value) use these.
func (vm *VM) Push(v value.Value) { vm.push(v) }
func (vm *VM) Pop() value.Value   { return vm.pop() }
