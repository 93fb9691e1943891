package value

import "fmt"

// Function is a compiled function prototype: its arity, how many upvalues
// its closures must capture, the bytecode body, and an optional name (nil
// for the implicit top-level script function).
type Function struct {
	Header
	Arity        int
	UpvalueCount int
	Upvalues     []UpvalueDesc
	Chunk        Chunk
	Name         *String
}

func (f *Function) Kind() ObjKind { return ObjKindFunction }
func (f *Function) Size() int     { return 64 + len(f.Chunk.Code)*5 }

func (f *Function) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name.Chars)
}

// UpvalueDesc is a single (isLocal, index) descriptor recorded by the
// compiler for each variable a Function's closures must capture from an
// enclosing frame. It is not itself a heap object - see the Upvalue Obj
// kind in upvalue.go for the runtime cell.
type UpvalueDesc struct {
	Index   uint8
	IsLocal bool
}
