package machine

import "fmt"

// runtimeError formats a runtime error message in the exact wording spec
// ss6 requires, writes it to vm.Stderr together with a stack trace of
// every active frame (innermost first), and resets the VM's stack so a
// host embedding the VM can safely reuse it afterward. The returned error
// only ever signals to run()'s caller that execution must stop; its text
// is not otherwise consulted.
func (vm *VM) runtimeError(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(vm.Stderr, msg)

	for i := vm.frameCount - 1; i >= 0; i-- {
		fr := &vm.frames[i]
		fmt.Fprintf(vm.Stderr, "[line %d] in %s\n", fr.line(), fr.displayName())
	}

	vm.resetStack()
	return fmt.Errorf("%s", msg)
}
