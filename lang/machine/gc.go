package machine

import "github.com/lumenforge/lumen/lang/value"

// collectGarbage runs one full mark-sweep cycle: mark every root, trace
// the gray stack to blacken the reachable graph, drop unreachable interned
// strings, then sweep the "all objects" list and grow nextGC.
func (vm *VM) collectGarbage() {
	vm.markRoots()
	vm.traceReferences()
	vm.removeWhiteStrings()
	vm.sweep()
	vm.nextGC = vm.bytesAllocated * 2
}

// markRoots marks everything directly reachable from outside the object
// graph: the live value stack, every active frame's closure, the
// open-upvalue list, the globals table, the interned init string, and the
// chain of Function objects the compiler is still building.
func (vm *VM) markRoots() {
	for i := 0; i < vm.stackTop; i++ {
		vm.markValue(vm.stack[i])
	}
	for i := 0; i < vm.frameCount; i++ {
		vm.markObject(vm.frames[i].closure)
	}
	for up := vm.openUpvalues; up != nil; up = up.Next {
		vm.markObject(up)
	}
	vm.markTable(vm.globals)
	vm.markObject(vm.initString)
	for _, fn := range vm.compilerRoots {
		vm.markObject(fn)
	}
}

func (vm *VM) markValue(v value.Value) {
	if v.IsObj() {
		vm.markObject(v.AsObj())
	}
}

// markObject marks obj black-pending and pushes it onto the gray stack for
// traceReferences to blacken later; a nil or already-marked object is left
// alone.
func (vm *VM) markObject(obj value.Obj) {
	if obj == nil {
		return
	}
	h := obj.GCHeader()
	if h.Marked {
		return
	}
	h.Marked = true
	vm.grayStack = append(vm.grayStack, obj)
}

func (vm *VM) markTable(t *value.Table) {
	if t == nil {
		return
	}
	t.Each(func(name *value.String, val value.Value) {
		vm.markObject(name)
		vm.markValue(val)
	})
}

// traceReferences drains the gray stack, blackening each object by marking
// whatever it in turn references.
func (vm *VM) traceReferences() {
	for len(vm.grayStack) > 0 {
		n := len(vm.grayStack) - 1
		obj := vm.grayStack[n]
		vm.grayStack = vm.grayStack[:n]
		vm.blackenObject(obj)
	}
}

func (vm *VM) blackenObject(obj value.Obj) {
	switch o := obj.(type) {
	case *value.String:
		// no references
	case *value.Native:
		// no references
	case *value.Function:
		if o.Name != nil {
			vm.markObject(o.Name)
		}
		for _, c := range o.Chunk.Constants {
			vm.markValue(c)
		}
	case *value.Closure:
		vm.markObject(o.Function)
		for _, up := range o.Upvalues {
			vm.markObject(up)
		}
	case *value.Upvalue:
		vm.markValue(o.Get())
	case *value.Class:
		if o.Name != nil {
			vm.markObject(o.Name)
		}
		vm.markTable(o.Methods)
	case *value.Instance:
		vm.markObject(o.Class)
		vm.markTable(o.Fields)
	case *value.BoundMethod:
		vm.markValue(o.Receiver)
		vm.markObject(o.Method)
	}
}

// removeWhiteStrings drops any interned string the mark phase didn't
// reach, which is the one table the GC must weed by hand: the intern table
// holds a reference to every string ever created without that counting as
// a root, or no string would ever be collectible.
func (vm *VM) removeWhiteStrings() {
	var dead []string
	it := vm.strings.Iterate()
	for it.Next() {
		k, v := it.Pair()
		if !v.GCHeader().Marked {
			dead = append(dead, k)
		}
	}
	for _, k := range dead {
		vm.strings.Delete(k)
	}
}

// sweep walks the intrusive "all objects" list, unlinking and discarding
// anything left unmarked and clearing the mark bit on survivors for the
// next cycle.
func (vm *VM) sweep() {
	var prev value.Obj
	obj := vm.objects
	for obj != nil {
		h := obj.GCHeader()
		if h.Marked {
			h.Marked = false
			prev = obj
			obj = h.Next
			continue
		}
		unreached := obj
		obj = h.Next
		if prev != nil {
			prev.GCHeader().Next = obj
		} else {
			vm.objects = obj
		}
		vm.bytesAllocated -= unreached.Size()
	}
}
