package machine

import (
	"unsafe"

	"github.com/lumenforge/lumen/lang/value"
)

// addr exposes a stack slot's address as a comparable integer. Go forbids
// ordering comparisons between raw pointers, but the open-upvalue list
// needs exactly that, "sorted by descending stack address", to
// find or insert a node in one pass; this is the one place in the VM that
// reaches for unsafe, and it is sound only because vm.stack is a fixed-size
// array that never moves for the VM's lifetime.
func addr(slot *value.Value) uintptr {
	return uintptr(unsafe.Pointer(slot))
}

// captureUpvalue returns the open upvalue for local, creating and linking
// one into the descending-address-ordered list if none exists yet.
func (vm *VM) captureUpvalue(local *value.Value) *value.Upvalue {
	var prev *value.Upvalue
	up := vm.openUpvalues
	for up != nil && addr(up.Location) > addr(local) {
		prev = up
		up = up.Next
	}
	if up != nil && up.Location == local {
		return up
	}

	created := value.NewOpenUpvalue(local)
	created.Next = up
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.Next = created
	}
	return created
}

// closeUpvalues closes every open upvalue whose Location is at or above
// last, copying each one's value into its own storage before the stack
// slots they point into are popped or reused by a new call frame.
func (vm *VM) closeUpvalues(last *value.Value) {
	for vm.openUpvalues != nil && addr(vm.openUpvalues.Location) >= addr(last) {
		up := vm.openUpvalues
		vm.openUpvalues = up.Next
		up.Close()
	}
}
