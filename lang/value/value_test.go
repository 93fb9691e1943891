package value_test

import (
	"testing"

	"github.com/lumenforge/lumen/lang/value"
	"github.com/stretchr/testify/require"
)

func TestValueKinds(t *testing.T) {
	require.True(t, value.Nil.IsNil())
	require.True(t, value.Bool(true).IsBool())
	require.True(t, value.Number(1.5).IsNumber())
	require.True(t, value.FromObj(value.NewString("x")).IsObj())
}

func TestIsFalsey(t *testing.T) {
	require.True(t, value.Nil.IsFalsey())
	require.True(t, value.Bool(false).IsFalsey())
	require.False(t, value.Bool(true).IsFalsey())
	require.False(t, value.Number(0).IsFalsey())
	require.False(t, value.FromObj(value.NewString("")).IsFalsey())
}

func TestEqual(t *testing.T) {
	require.True(t, value.Equal(value.Number(1), value.Number(1)))
	require.False(t, value.Equal(value.Number(1), value.Number(2)))
	require.True(t, value.Equal(value.Nil, value.Nil))
	require.False(t, value.Equal(value.Nil, value.Bool(false)))
	require.True(t, value.Equal(value.Bool(true), value.Bool(true)))

	s1 := value.NewString("hi")
	s2 := value.NewString("hi")
	// Distinct un-interned allocations with equal contents are NOT equal by
	// reference; interning (owned by the VM/GC layer) is what makes them
	// compare equal - see TestInterningUniqueness in machine for the
	// interned case.
	require.False(t, value.Equal(value.FromObj(s1), value.FromObj(s2)))
	require.True(t, value.Equal(value.FromObj(s1), value.FromObj(s1)))
}

func TestStringRendering(t *testing.T) {
	require.Equal(t, "nil", value.Nil.String())
	require.Equal(t, "true", value.Bool(true).String())
	require.Equal(t, "false", value.Bool(false).String())
	require.Equal(t, "3", value.Number(3).String())
	require.Equal(t, "3.5", value.Number(3.5).String())
	require.Equal(t, "hi", value.FromObj(value.NewString("hi")).String())
}

func TestIs(t *testing.T) {
	s := value.FromObj(value.NewString("x"))
	require.True(t, s.Is(value.ObjKindString))
	require.False(t, s.Is(value.ObjKindFunction))
	require.False(t, value.Number(1).Is(value.ObjKindString))
}
