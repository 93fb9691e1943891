package machine

import (
	"github.com/lumenforge/lumen/lang/value"
)

// callValue dispatches a call to whatever kind of callable callee is: a
// Closure pushes a new CallFrame, a Class constructs a new Instance (and
// runs its "init" method if it has one), a BoundMethod rebinds its
// receiver into slot 0 before calling its underlying Closure, and a Native
// runs immediately against the Go host. Anything else errors with
// "Can only call functions and classes."
func (vm *VM) callValue(callee value.Value, argCount int) error {
	if callee.IsObj() {
		switch obj := callee.AsObj().(type) {
		case *value.Closure:
			return vm.call(obj, argCount)
		case *value.Class:
			inst := vm.newInstance(obj)
			vm.stack[vm.stackTop-argCount-1] = value.FromObj(inst)
			if initializer, ok := obj.Methods.Get(vm.initString); ok {
				return vm.call(initializer.AsObj().(*value.Closure), argCount)
			}
			if argCount != 0 {
				return vm.runtimeError("Expected 0 arguments but got %d.", argCount)
			}
			return nil
		case *value.BoundMethod:
			vm.stack[vm.stackTop-argCount-1] = obj.Receiver
			return vm.call(obj.Method, argCount)
		case *value.Native:
			args := vm.stack[vm.stackTop-argCount : vm.stackTop]
			result, err := obj.Fn(args)
			if err != nil {
				return vm.runtimeError("%s", err.Error())
			}
			vm.stackTop -= argCount + 1
			vm.push(result)
			return nil
		}
	}
	return vm.runtimeError("Can only call functions and classes.")
}

// call pushes a new CallFrame for closure, verifying arity and the global
// recursion/stack-depth limit.
func (vm *VM) call(closure *value.Closure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argCount)
	}
	if vm.frameCount == maxFrames {
		return vm.runtimeError("Stack overflow.")
	}

	fr := &vm.frames[vm.frameCount]
	vm.frameCount++
	fr.closure = closure
	fr.ip = 0
	fr.slotsBase = vm.stackTop - argCount - 1
	return nil
}

// invoke fuses a property lookup and call for instance.name(...), falling
// back to a plain field holding a callable before consulting the class's
// method table, exactly mirroring what OP_GET_PROPERTY followed by OP_CALL
// would do but without materializing an intermediate BoundMethod.
func (vm *VM) invoke(name *value.String, argCount int) error {
	receiver := vm.peek(argCount)
	inst, ok := receiver.AsObj().(*value.Instance)
	if !receiver.IsObj() || !ok {
		return vm.runtimeError("Only instances have methods.")
	}

	if field, ok := inst.Fields.Get(name); ok {
		vm.stack[vm.stackTop-argCount-1] = field
		return vm.callValue(field, argCount)
	}
	return vm.invokeFromClass(inst.Class, name, argCount)
}

func (vm *VM) invokeFromClass(class *value.Class, name *value.String, argCount int) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	return vm.call(method.AsObj().(*value.Closure), argCount)
}

// bindMethod looks up name on class, producing a BoundMethod over the
// receiver the caller still has on top of the stack. Used by
// OP_GET_PROPERTY's fallback path once a field lookup misses.
func (vm *VM) bindMethod(class *value.Class, name *value.String) (*value.BoundMethod, error) {
	method, ok := class.Methods.Get(name)
	if !ok {
		return nil, vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	return vm.newBoundMethod(vm.peek(0), method.AsObj().(*value.Closure)), nil
}
