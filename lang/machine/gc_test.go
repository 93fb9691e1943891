package machine

import (
	"testing"

	"github.com/lumenforge/lumen/lang/value"
	"github.com/stretchr/testify/require"
)

func TestInterningUniqueness(t *testing.T) {
	vm := New()
	a := vm.InternString("same")
	b := vm.InternString("same")
	require.Same(t, a, b)
}

func TestOpenUpvalueOrderingDescending(t *testing.T) {
	vm := New()
	// Three distinct stack slots, captured out of address order; the list
	// must come out sorted strictly descending by address regardless of
	// capture order.
	vm.stackTop = 3
	vm.stack[0] = value.Number(1)
	vm.stack[1] = value.Number(2)
	vm.stack[2] = value.Number(3)

	vm.captureUpvalue(&vm.stack[1])
	vm.captureUpvalue(&vm.stack[2])
	vm.captureUpvalue(&vm.stack[0])

	var addrs []uintptr
	for up := vm.openUpvalues; up != nil; up = up.Next {
		addrs = append(addrs, addr(up.Location))
	}
	require.Len(t, addrs, 3)
	for i := 1; i < len(addrs); i++ {
		require.Greater(t, addrs[i-1], addrs[i])
	}
}

func TestCaptureUpvalueReusesExistingOpenUpvalue(t *testing.T) {
	vm := New()
	vm.stackTop = 1
	vm.stack[0] = value.Number(1)

	first := vm.captureUpvalue(&vm.stack[0])
	second := vm.captureUpvalue(&vm.stack[0])
	require.Same(t, first, second)
}

func TestHeapGrowthMonotonicity(t *testing.T) {
	vm := New()
	before := vm.nextGC
	vm.collectGarbage()
	require.Equal(t, vm.bytesAllocated*2, vm.nextGC)
	require.LessOrEqual(t, vm.bytesAllocated, vm.nextGC)
	_ = before
}

func TestSweepReclaimsUnreachableObjects(t *testing.T) {
	vm := New()
	s := vm.InternString("transient")
	// Force it unreachable: not on the stack, not in globals, not the
	// init string, and pop it back out of the intern table's reach by
	// overwriting with a fresh collection pass.
	require.False(t, s.GCHeader().Marked)
	vm.collectGarbage()
	_, stillInterned := vm.strings.Get("transient")
	require.False(t, stillInterned, "an interned string unreachable from any root must not survive a collection")
}
