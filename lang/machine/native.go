package machine

import (
	"time"

	"github.com/lumenforge/lumen/lang/value"
)

// RegisterNative installs a Go function as a global callable under name,
// the engine's bridge for host-provided builtins. Natives are ordinary
// globals: redefining name with var or fun later simply shadows it,
// mirroring how the globals table treats any other entry.
func (vm *VM) RegisterNative(name string, fn value.NativeFunc) {
	interned := vm.InternString(name)
	native := &value.Native{Name: name, Fn: fn}
	vm.push(value.FromObj(native))
	vm.track(native)
	vm.globals.Set(interned, value.FromObj(native))
	vm.pop()
}

// RegisterStdlib installs the small set of natives every script can rely
// on without the host wiring anything up itself: clock() for timing, the
// rest left to the embedding game shell.
func (vm *VM) RegisterStdlib() {
	vm.RegisterNative("clock", func(args []value.Value) (value.Value, error) {
		return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
	})
}
