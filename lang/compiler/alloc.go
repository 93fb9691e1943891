// Package compiler implements the single-pass Pratt-parsing compiler: it
// consumes a token.Token stream from the scanner and emits a value.Chunk
// plus a value.Function for each nested function, resolving locals and
// upvalues as it goes rather than in a separate pass.
package compiler

import "github.com/lumenforge/lumen/lang/value"

// Allocator is the allocation surface the compiler needs from the engine's
// GC-aware memory manager. String and Function literals created while
// compiling are GC-owned objects like any runtime value, so the compiler
// never allocates them directly with value.NewString/&value.Function{} -
// it goes through this interface, which machine.VM implements
// against the live VM, and tests implement against a plain in-memory
// stand-in.
type Allocator interface {
	// InternString returns the canonical *value.String for s, allocating
	// and recording a new one if this is the first time s has been seen.
	InternString(s string) *value.String

	// NewFunction allocates a fresh, empty Function object for a nested
	// function the compiler is about to start compiling.
	NewFunction() *value.Function

	// PushCompilerRoot and PopCompilerRoot bracket the lifetime of a single
	// nested function's compilation. The memory manager keeps the chain of
	// pushed functions reachable as GC roots, since a collection can run
	// while the compiler is still allocating string constants partway
	// through compiling an enclosing function.
	PushCompilerRoot(fn *value.Function)
	PopCompilerRoot()
}
