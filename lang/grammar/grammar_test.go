package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

// TestGrammar parses and verifies lumen.ebnf, the reference grammar this
// package exists to keep honest: every production the compiler's
// recursive-descent precedence climbing implements should trace back to a
// rule here, and every rule here should resolve to a defined production.
func TestGrammar(t *testing.T) {
	f, err := os.Open("lumen.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("lumen.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatal(err)
	}
}
