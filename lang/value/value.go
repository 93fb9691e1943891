// Package value defines the engine's uniform Value slot and the heap Object
// kinds it can reference. Every Value is either nil, a boolean, a
// double-precision number, or a reference to a garbage-collected Obj.
//
// Go offers no safe way to bit-pun a pointer into the mantissa of a float64
// the way a NaN-boxed C implementation would: hiding a heap pointer inside a
// uint64 defeats the runtime's garbage collector, which would not see it as
// a live reference and could reclaim the object out from under the
// interpreter. So Value is a small tagged struct instead - the portable
// fallback the engine design anticipates for platforms where bit-punning
// doubles is awkward.
package value

import "fmt"

// Kind discriminates the four slot shapes a Value can hold.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObj
)

// Value is the uniform representation passed around the compiler and VM:
// every stack slot, local, global, upvalue and constant-pool entry is one of
// these.
type Value struct {
	kind Kind
	num  float64 // also doubles as the 0/1 encoding of a bool
	obj  Obj
}

// Nil is the singular nil value.
var Nil = Value{kind: KindNil}

// Bool returns the Value for a boolean.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool, num: 0}
}

// Number returns the Value for a float64.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// FromObj returns the Value referencing a heap object.
func FromObj(o Obj) Value { return Value{kind: KindObj, obj: o} }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObj() bool    { return v.kind == KindObj }

// AsBool returns the boolean payload. The caller must have checked IsBool.
func (v Value) AsBool() bool { return v.num != 0 }

// AsNumber returns the float64 payload. The caller must have checked
// IsNumber.
func (v Value) AsNumber() float64 { return v.num }

// AsObj returns the Obj payload. The caller must have checked IsObj.
func (v Value) AsObj() Obj { return v.obj }

// Is reports whether v holds an object of the given kind.
func (v Value) Is(kind ObjKind) bool {
	return v.kind == KindObj && v.obj.Kind() == kind
}

// IsFalsey implements Lumen's truthiness rule: nil and the boolean false are
// falsey, every other value (including 0 and the empty string) is truthy.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// Equal implements Value equality: numbers compare by IEEE-754 equality,
// other kinds compare by kind plus payload bits. Object equality is
// reference identity, except that interned strings are guaranteed identical
// references when their contents are equal, so reference comparison
// correctly implements content equality for strings too.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.num == b.num
	case KindNumber:
		return a.num == b.num
	case KindObj:
		return a.obj == b.obj
	default:
		return false
	}
}

// String renders v in the engine's canonical textual form, as produced by
// the print statement: numbers via default formatting, nil, booleans as
// true/false, and objects via their own String method.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.num)
	case KindObj:
		return v.obj.String()
	default:
		return "<invalid value>"
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}

// ObjKind discriminates the heap object kinds sharing the GC-owned object
// graph.
type ObjKind uint8

const (
	ObjKindString ObjKind = iota
	ObjKindFunction
	ObjKindClosure
	ObjKindUpvalue
	ObjKindClass
	ObjKindInstance
	ObjKindBoundMethod
	ObjKindNative
)

func (k ObjKind) String() string {
	switch k {
	case ObjKindString:
		return "string"
	case ObjKindFunction:
		return "function"
	case ObjKindClosure:
		return "closure"
	case ObjKindUpvalue:
		return "upvalue"
	case ObjKindClass:
		return "class"
	case ObjKindInstance:
		return "instance"
	case ObjKindBoundMethod:
		return "bound method"
	case ObjKindNative:
		return "native"
	default:
		return "unknown"
	}
}

// Header is embedded in every concrete Obj type. It carries the GC's mark
// bit and the intrusive link to the next object in the VM's "all objects"
// list, populated by the allocator at allocation time.
type Header struct {
	Marked bool
	Next   Obj
}

// GCHeader returns h itself; it lets embedding types satisfy Obj without
// repeating the boilerplate.
func (h *Header) GCHeader() *Header { return h }

// Obj is implemented by every heap object kind. Size is the number of bytes
// the object counts against the GC's bytes_allocated/next_gc accounting;
// each kind reports an approximation of its own footprint.
type Obj interface {
	Kind() ObjKind
	String() string
	GCHeader() *Header
	Size() int
}
