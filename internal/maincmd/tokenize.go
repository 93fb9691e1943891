package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/lumenforge/lumen/lang/scanner"
	"github.com/lumenforge/lumen/lang/token"
)

// Tokenize prints the token stream the compiler's Pratt parser would
// consume for each file, one token per line, useful for diagnosing
// scanner or grammar issues without running the full compiler.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			return err
		}

		sc := scanner.New(src)
		for {
			tok := sc.Scan()
			fmt.Fprintf(stdio.Stdout, "%d %s", tok.Line, tok.Kind)
			if lexeme := sc.Lexeme(tok); lexeme != "" {
				fmt.Fprintf(stdio.Stdout, " %q", lexeme)
			}
			fmt.Fprintln(stdio.Stdout)
			if tok.Kind == token.EOF {
				break
			}
		}
	}
	return nil
}
