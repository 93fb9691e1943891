package machine

import "github.com/lumenforge/lumen/lang/value"

var _ compilerAllocator = (*VM)(nil)

// compilerAllocator is a local alias for compiler.Allocator so this file's
// var assertion doesn't need to import the compiler package just for the
// interface name; Go structural typing makes the assertion meaningful
// regardless.
type compilerAllocator = interface {
	InternString(s string) *value.String
	NewFunction() *value.Function
	PushCompilerRoot(fn *value.Function)
	PopCompilerRoot()
}

// track links obj into the "all objects" list and charges its Size against
// bytesAllocated, running a collection first if StressGC is set or the
// heap has grown past nextGC.
func (vm *VM) track(obj value.Obj) {
	if vm.StressGC || vm.bytesAllocated > vm.nextGC {
		vm.collectGarbage()
	}
	h := obj.GCHeader()
	h.Next = vm.objects
	h.Marked = false
	vm.objects = obj
	vm.bytesAllocated += obj.Size()
}

// InternString returns the canonical *value.String for s, implementing
// compiler.Allocator and also used internally by the VM (string
// concatenation, identifier constants, register_native). The new string is
// pushed onto the value stack for the duration of the allocation and the
// table insert so a collection triggered by either cannot reclaim it
// in-flight.
func (vm *VM) InternString(s string) *value.String {
	if existing, ok := vm.strings.Get(s); ok {
		return existing
	}
	str := value.NewString(s)
	vm.push(value.FromObj(str))
	vm.track(str)
	vm.strings.Put(s, str)
	vm.pop()
	return str
}

// NewFunction allocates an empty Function object for the compiler to fill
// in as it compiles one nested function body.
func (vm *VM) NewFunction() *value.Function {
	fn := &value.Function{}
	vm.push(value.FromObj(fn))
	vm.track(fn)
	vm.pop()
	return fn
}

// PushCompilerRoot and PopCompilerRoot maintain the chain of in-progress
// compiler function objects that markRoots walks.
func (vm *VM) PushCompilerRoot(fn *value.Function) {
	vm.compilerRoots = append(vm.compilerRoots, fn)
}

func (vm *VM) PopCompilerRoot() {
	vm.compilerRoots = vm.compilerRoots[:len(vm.compilerRoots)-1]
}

func (vm *VM) newClosure(fn *value.Function) *value.Closure {
	cl := value.NewClosure(fn)
	vm.push(value.FromObj(cl))
	vm.track(cl)
	vm.pop()
	return cl
}

func (vm *VM) newClass(name *value.String) *value.Class {
	class := value.NewClass(name)
	vm.push(value.FromObj(class))
	vm.track(class)
	vm.pop()
	return class
}

func (vm *VM) newInstance(class *value.Class) *value.Instance {
	inst := value.NewInstance(class)
	vm.push(value.FromObj(inst))
	vm.track(inst)
	vm.pop()
	return inst
}

func (vm *VM) newBoundMethod(receiver value.Value, method *value.Closure) *value.BoundMethod {
	bm := value.NewBoundMethod(receiver, method)
	vm.push(value.FromObj(bm))
	vm.track(bm)
	vm.pop()
	return bm
}
