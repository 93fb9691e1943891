package machine_test

import (
	"bytes"
	"testing"

	"github.com/lumenforge/lumen/lang/machine"
	"github.com/lumenforge/lumen/lang/value"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, machine.Outcome) {
	t.Helper()
	vm := machine.New()
	var out, errOut bytes.Buffer
	vm.Stdout = &out
	vm.Stderr = &errOut
	outcome := vm.Interpret([]byte(src))
	if outcome == machine.RuntimeError {
		return errOut.String(), outcome
	}
	return out.String(), outcome
}

func TestArithmeticPrecedence(t *testing.T) {
	out, outcome := run(t, "print 1 + 2 * 3;")
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, outcome := run(t, `var a = "Hello, "; var b = "world!"; print a + b;`)
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "Hello, world!\n", out)
}

func TestClosureCapturesLocal(t *testing.T) {
	src := `fun make() { var x = 10; fun inner() { return x; } return inner; } print make()();`
	out, outcome := run(t, src)
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "10\n", out)
}

func TestClassInitAndMethod(t *testing.T) {
	src := `class G { init(n){ this.n = n; } hi(){ return "Hi, " + this.n + "!"; } } print G("p").hi();`
	out, outcome := run(t, src)
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "Hi, p!\n", out)
}

func TestInheritanceAndSuper(t *testing.T) {
	src := `class A { m(){ return "A"; } } class B : A { m(){ return super.m() + "B"; } } print B().m();`
	out, outcome := run(t, src)
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "AB\n", out)
}

func TestStringPlusNumberIsRuntimeError(t *testing.T) {
	out, outcome := run(t, `"x" + 1;`)
	require.Equal(t, machine.RuntimeError, outcome)
	require.Contains(t, out, "Operands must be two numbers or two strings.")
}

func TestUninitializedVarPrintsNil(t *testing.T) {
	out, outcome := run(t, "var x; print x;")
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "nil\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	out, outcome := run(t, "print nope;")
	require.Equal(t, machine.RuntimeError, outcome)
	require.Contains(t, out, "Undefined variable 'nope'.")
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	out, outcome := run(t, `var x = 1; x();`)
	require.Equal(t, machine.RuntimeError, outcome)
	require.Contains(t, out, "Can only call functions and classes.")
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	out, outcome := run(t, `fun f(a, b) { return a + b; } f(1);`)
	require.Equal(t, machine.RuntimeError, outcome)
	require.Contains(t, out, "Expected 2 arguments but got 1.")
}

func TestWhileLoop(t *testing.T) {
	src := `var i = 0; var sum = 0; while (i < 5) { sum = sum + i; i = i + 1; } print sum;`
	out, outcome := run(t, src)
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "10\n", out)
}

func TestForLoop(t *testing.T) {
	src := `var sum = 0; for (var i = 0; i < 5; i = i + 1) { sum = sum + i; } print sum;`
	out, outcome := run(t, src)
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "10\n", out)
}

func TestAndOrShortCircuit(t *testing.T) {
	out, outcome := run(t, `print false and (1/0); print true or (1/0);`)
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "false\ntrue\n", out)
}

func TestFieldAssignmentAndAccess(t *testing.T) {
	src := `class P {} var p = P(); p.x = 1; p.y = 2; print p.x + p.y;`
	out, outcome := run(t, src)
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "3\n", out)
}

func TestBoundMethodAsValue(t *testing.T) {
	src := `class C { greet() { return "hi"; } } var c = C(); var m = c.greet; print m();`
	out, outcome := run(t, src)
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "hi\n", out)
}

func TestRegisterNativeIsCallableGlobal(t *testing.T) {
	vm := machine.New()
	var out bytes.Buffer
	vm.Stdout = &out
	vm.RegisterNative("double", func(args []value.Value) (value.Value, error) {
		return value.Number(args[0].AsNumber() * 2), nil
	})
	outcome := vm.Interpret([]byte("print double(21);"))
	require.Equal(t, machine.Ok, outcome)
	require.Equal(t, "42\n", out.String())
}

func TestGCStressModeSurvivesAllocationHeavyProgram(t *testing.T) {
	vm := machine.New()
	vm.StressGC = true
	var out bytes.Buffer
	vm.Stdout = &out
	src := `
	fun make(n) {
		var s = "x";
		var i = 0;
		while (i < n) {
			s = s + "y";
			i = i + 1;
		}
		return s;
	}
	print make(50);
	`
	outcome := vm.Interpret([]byte(src))
	require.Equal(t, machine.Ok, outcome)
	require.Contains(t, out.String(), "x")
}

func TestCompileErrorOutcome(t *testing.T) {
	vm := machine.New()
	var out, errOut bytes.Buffer
	vm.Stdout = &out
	vm.Stderr = &errOut
	outcome := vm.Interpret([]byte("var ;"))
	require.Equal(t, machine.CompileError, outcome)
	require.NotEmpty(t, errOut.String())
}
