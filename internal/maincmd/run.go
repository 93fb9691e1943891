package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/lumenforge/lumen/internal/config"
	"github.com/lumenforge/lumen/lang/machine"
)

// Run compiles and executes each file argument as a complete script,
// stopping at the first one that doesn't return Ok.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFiles(stdio, loadEnv(stdio), args...)
}

// RunFiles interprets each of files in turn against a fresh VM, wiring
// stdio through and honoring env's StressGC toggle.
func RunFiles(stdio mainer.Stdio, env config.Env, files ...string) error {
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			return err
		}

		vm := machine.New()
		vm.Stdout = stdio.Stdout
		vm.Stderr = stdio.Stderr
		vm.StressGC = env.StressGC
		vm.RegisterStdlib()

		switch vm.Interpret(src) {
		case machine.CompileError:
			return fmt.Errorf("%s: compile error", path)
		case machine.RuntimeError:
			return fmt.Errorf("%s: runtime error", path)
		}
	}
	return nil
}
