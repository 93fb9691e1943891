package machine_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumenforge/lumen/internal/filetest"
	"github.com/lumenforge/lumen/lang/machine"
)

var testUpdateMachineTests = flag.Bool("test.update-machine-tests", false, "If set, replace expected end-to-end script test results with actual results.")

// TestScripts runs every fixture under testdata/in through a fresh VM and
// diffs its stdout and stderr against the golden files in testdata/out.
func TestScripts(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			var out, errOut bytes.Buffer
			vm := machine.New()
			vm.Stdout = &out
			vm.Stderr = &errOut
			vm.RegisterStdlib()

			vm.Interpret(src)

			filetest.DiffOutput(t, fi, out.String(), resultDir, testUpdateMachineTests)
			filetest.DiffErrors(t, fi, errOut.String(), resultDir, testUpdateMachineTests)
		})
	}
}
