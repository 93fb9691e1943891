package compiler_test

import (
	"testing"

	"github.com/lumenforge/lumen/lang/compiler"
	"github.com/lumenforge/lumen/lang/value"
	"github.com/stretchr/testify/require"
)

// mockAlloc is a plain in-memory stand-in for the VM's allocator, letting
// the compiler be unit-tested without spinning up a machine.VM.
type mockAlloc struct {
	interned map[string]*value.String
	roots    []*value.Function
}

func newMockAlloc() *mockAlloc {
	return &mockAlloc{interned: map[string]*value.String{}}
}

func (m *mockAlloc) InternString(s string) *value.String {
	if existing, ok := m.interned[s]; ok {
		return existing
	}
	str := value.NewString(s)
	m.interned[s] = str
	return str
}

func (m *mockAlloc) NewFunction() *value.Function { return &value.Function{} }

func (m *mockAlloc) PushCompilerRoot(fn *value.Function) {
	m.roots = append(m.roots, fn)
}

func (m *mockAlloc) PopCompilerRoot() {
	m.roots = m.roots[:len(m.roots)-1]
}

func compile(t *testing.T, src string) (*value.Function, []compiler.Diagnostic) {
	t.Helper()
	return compiler.Compile([]byte(src), newMockAlloc())
}

func TestCompileSimpleExpression(t *testing.T) {
	fn, diags := compile(t, "print 1 + 2 * 3;")
	require.Empty(t, diags)
	require.NotNil(t, fn)
	require.Contains(t, fn.Chunk.Code, byte(value.OpPrint))
}

func TestCompileVarDeclarationDefaultsNil(t *testing.T) {
	fn, diags := compile(t, "var x; print x;")
	require.Empty(t, diags)
	require.Contains(t, fn.Chunk.Code, byte(value.OpNil))
}

func TestCompileReturnOutsideFunctionIsError(t *testing.T) {
	_, diags := compile(t, "return 1;")
	require.NotEmpty(t, diags)
	require.Contains(t, diags[0].Message, "Can't return from top-level code.")
}

func TestCompileSelfInheritanceIsError(t *testing.T) {
	_, diags := compile(t, "class A : A {}")
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Message == "A class can't inherit from itself." {
			found = true
		}
	}
	require.True(t, found)
}

func TestCompileThisOutsideClassIsError(t *testing.T) {
	_, diags := compile(t, "fun f() { return this; }")
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Message == "Can't use 'this' outside of a class." {
			found = true
		}
	}
	require.True(t, found)
}

func TestCompileSuperOutsideClassIsError(t *testing.T) {
	_, diags := compile(t, "fun f() { return super.m(); }")
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Message == "Can't use 'super' outside of a class." {
			found = true
		}
	}
	require.True(t, found)
}

func TestCompileTooManyConstants(t *testing.T) {
	src := "var decls_only_for_constants = 0;\n"
	for i := 0; i < 300; i++ {
		src += "print " + itoa(i) + ";\n"
	}
	_, diags := compile(t, src)
	found := false
	for _, d := range diags {
		if d.Message == "Too many constants in one chunk." {
			found = true
		}
	}
	require.True(t, found)
}

func TestCompileTooManyLocals(t *testing.T) {
	src := "fun f() {\n"
	for i := 0; i < 257; i++ {
		src += "var v" + itoa(i) + ";\n"
	}
	src += "}\n"
	_, diags := compile(t, src)
	found := false
	for _, d := range diags {
		if d.Message == "Too many local variables in function." {
			found = true
		}
	}
	require.True(t, found)
}

func TestCompileTooManyArguments(t *testing.T) {
	src := "fun f() {}\nf("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ","
		}
		src += "1"
	}
	src += ");\n"
	_, diags := compile(t, src)
	found := false
	for _, d := range diags {
		if d.Message == "Can't have more than 255 arguments." {
			found = true
		}
	}
	require.True(t, found)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
