// Command rcparse is a minimal CLI harness around a grammar, wiring
// Parser.Parse and errorformat.FormatErrors to stdin/stdout. It is
// deliberately thin: this engine's job is the library, not the tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/romecore/rcparsing/errorformat"
	"github.com/romecore/rcparsing/examples/arith"
)

var cli struct {
	File  string `arg:"" optional:"" help:"File to parse (defaults to stdin)."`
	Trace bool   `help:"Print a rule entry/exit trace to stderr."`
}

func main() {
	kong.Parse(&cli, kong.Description("Parse input against the bundled example grammar."))

	var src io.Reader = os.Stdin
	if cli.File != "" {
		f, err := os.Open(cli.File)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		src = f
	}

	text, err := io.ReadAll(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var opts []arith.Option
	if cli.Trace {
		opts = append(opts, arith.WithTrace(os.Stderr))
	}
	parser, err := arith.NewParser(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result, err := parser.Parse(context.Background(), string(text))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if result.AST != nil {
		fmt.Printf("ok: consumed %d..%d\n", result.AST.StartIndex, result.AST.End())
	}
	if len(result.Errors) > 0 {
		fmt.Print(errorformat.FormatErrors(result.Errors, result.RecoveryIndices, errorformat.DefaultFlags, nil))
		os.Exit(1)
	}
}
