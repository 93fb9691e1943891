package machine

import (
	"fmt"

	"github.com/lumenforge/lumen/lang/value"
)

// run executes bytecode from the topmost call frame until a Return from
// the outermost frame (successful completion) or a runtime error. It is
// the engine's central dispatch loop, a plain switch over value.Opcode
// mirroring the engine's bytecode table one instruction at a time.
func (vm *VM) run() error {
	fr := &vm.frames[vm.frameCount-1]

	for {
		op := value.Opcode(fr.readByte())
		switch op {
		case value.OpConstant:
			vm.push(fr.readConstant())

		case value.OpNil:
			vm.push(value.Nil)
		case value.OpTrue:
			vm.push(value.Bool(true))
		case value.OpFalse:
			vm.push(value.Bool(false))
		case value.OpPop:
			vm.pop()

		case value.OpGetLocal:
			slot := fr.readByte()
			vm.push(vm.stack[fr.slotsBase+int(slot)])
		case value.OpSetLocal:
			slot := fr.readByte()
			vm.stack[fr.slotsBase+int(slot)] = vm.peek(0)

		case value.OpGetGlobal:
			name := fr.readString()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(v)
		case value.OpDefineGlobal:
			name := fr.readString()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case value.OpSetGlobal:
			name := fr.readString()
			if _, ok := vm.globals.Get(name); !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.globals.Set(name, vm.peek(0))

		case value.OpGetUpvalue:
			slot := fr.readByte()
			vm.push(fr.closure.Upvalues[slot].Get())
		case value.OpSetUpvalue:
			slot := fr.readByte()
			fr.closure.Upvalues[slot].Set(vm.peek(0))

		case value.OpGetProperty:
			if err := vm.getProperty(fr); err != nil {
				return err
			}
		case value.OpSetProperty:
			if err := vm.setProperty(fr); err != nil {
				return err
			}
		case value.OpGetSuper:
			if err := vm.getSuper(fr); err != nil {
				return err
			}

		case value.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case value.OpGreater:
			if err := vm.numericCompare(func(a, b float64) bool { return a > b }); err != nil {
				return err
			}
		case value.OpLess:
			if err := vm.numericCompare(func(a, b float64) bool { return a < b }); err != nil {
				return err
			}

		case value.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case value.OpSubtract:
			if err := vm.numericBinary(func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
		case value.OpMultiply:
			if err := vm.numericBinary(func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
		case value.OpDivide:
			if err := vm.numericBinary(func(a, b float64) float64 { return a / b }); err != nil {
				return err
			}

		case value.OpNot:
			vm.push(value.Bool(vm.pop().IsFalsey()))
		case value.OpNegate:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(value.Number(-vm.pop().AsNumber()))

		case value.OpPrint:
			fmt.Fprintln(vm.Stdout, vm.pop().String())

		case value.OpJump:
			offset := fr.readShort()
			fr.ip += int(offset)
		case value.OpJumpIfFalse:
			offset := fr.readShort()
			if vm.peek(0).IsFalsey() {
				fr.ip += int(offset)
			}
		case value.OpLoop:
			offset := fr.readShort()
			fr.ip -= int(offset)

		case value.OpCall:
			argCount := int(fr.readByte())
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}
			fr = &vm.frames[vm.frameCount-1]

		case value.OpInvoke:
			name := fr.readString()
			argCount := int(fr.readByte())
			if err := vm.invoke(name, argCount); err != nil {
				return err
			}
			fr = &vm.frames[vm.frameCount-1]

		case value.OpSuperInvoke:
			name := fr.readString()
			argCount := int(fr.readByte())
			superclass := vm.pop().AsObj().(*value.Class)
			if err := vm.invokeFromClass(superclass, name, argCount); err != nil {
				return err
			}
			fr = &vm.frames[vm.frameCount-1]

		case value.OpClosure:
			fn := fr.readConstant().AsObj().(*value.Function)
			closure := vm.newClosure(fn)
			vm.push(value.FromObj(closure))
			for i := range closure.Upvalues {
				isLocal := fr.readByte()
				index := fr.readByte()
				if isLocal != 0 {
					closure.Upvalues[i] = vm.captureUpvalue(&vm.stack[fr.slotsBase+int(index)])
				} else {
					closure.Upvalues[i] = fr.closure.Upvalues[index]
				}
			}

		case value.OpCloseUpvalue:
			vm.closeUpvalues(&vm.stack[vm.stackTop-1])
			vm.pop()

		case value.OpReturn:
			result := vm.pop()
			vm.closeUpvalues(&vm.stack[fr.slotsBase])
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return nil
			}
			vm.stackTop = fr.slotsBase
			vm.push(result)
			fr = &vm.frames[vm.frameCount-1]

		case value.OpClass:
			name := fr.readString()
			vm.push(value.FromObj(vm.newClass(name)))

		case value.OpInherit:
			superVal := vm.peek(1)
			superclass, ok := superVal.AsObj().(*value.Class)
			if !superVal.IsObj() || !ok {
				return vm.runtimeError("Superclass must be a class.")
			}
			subclass := vm.peek(0).AsObj().(*value.Class)
			subclass.Methods.AddAll(superclass.Methods)
			vm.pop() // the subclass duplicate pushed for this opcode

		case value.OpMethod:
			name := fr.readString()
			method := vm.peek(0)
			class := vm.peek(1).AsObj().(*value.Class)
			class.Methods.Set(name, method)
			vm.pop()

		default:
			return vm.runtimeError("unknown opcode %v", op)
		}
	}
}

func (vm *VM) numericBinary(fn func(a, b float64) float64) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b, a := vm.pop().AsNumber(), vm.pop().AsNumber()
	vm.push(value.Number(fn(a, b)))
	return nil
}

func (vm *VM) numericCompare(fn func(a, b float64) bool) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b, a := vm.pop().AsNumber(), vm.pop().AsNumber()
	vm.push(value.Bool(fn(a, b)))
	return nil
}

// add implements Lumen's overloaded '+': numeric addition, string
// concatenation producing a new interned String, or a runtime error for
// any other operand pairing.
func (vm *VM) add() error {
	b, a := vm.peek(0), vm.peek(1)
	switch {
	case a.IsNumber() && b.IsNumber():
		vm.pop()
		vm.pop()
		vm.push(value.Number(a.AsNumber() + b.AsNumber()))
	case a.Is(value.ObjKindString) && b.Is(value.ObjKindString):
		vm.pop()
		vm.pop()
		as := a.AsObj().(*value.String)
		bs := b.AsObj().(*value.String)
		concat := vm.InternString(as.Chars + bs.Chars)
		vm.push(value.FromObj(concat))
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
	return nil
}

func (vm *VM) getProperty(fr *CallFrame) error {
	inst, ok := vm.peek(0).AsObj().(*value.Instance)
	if !vm.peek(0).IsObj() || !ok {
		return vm.runtimeError("Only instances have properties.")
	}
	name := fr.readString()

	if field, ok := inst.Fields.Get(name); ok {
		vm.pop()
		vm.push(field)
		return nil
	}

	bound, err := vm.bindMethod(inst.Class, name)
	if err != nil {
		return err
	}
	vm.pop()
	vm.push(value.FromObj(bound))
	return nil
}

func (vm *VM) setProperty(fr *CallFrame) error {
	inst, ok := vm.peek(1).AsObj().(*value.Instance)
	if !vm.peek(1).IsObj() || !ok {
		return vm.runtimeError("Only instances have fields.")
	}
	name := fr.readString()
	inst.Fields.Set(name, vm.peek(0))

	v := vm.pop()
	vm.pop()
	vm.push(v)
	return nil
}

func (vm *VM) getSuper(fr *CallFrame) error {
	name := fr.readString()
	superclass := vm.pop().AsObj().(*value.Class)

	bound, err := vm.bindMethod(superclass, name)
	if err != nil {
		return err
	}
	vm.pop()
	vm.push(value.FromObj(bound))
	return nil
}
