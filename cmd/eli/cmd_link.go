package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/harukamm/elvm/internal/diag"
	"github.com/harukamm/elvm/internal/parser"
)

// linkCmd parses and links a program without executing it, printing
// the resolved module's text segment, data segment and entry point.
type linkCmd struct{}

func (*linkCmd) Name() string { return "link" }

func (*linkCmd) Synopsis() string { return "Parse and link an EIR program, printing the resolved module." }

func (*linkCmd) Usage() string {
	return `link <file>:
Parse and link the given EIR source file and print its resolved text
segment, data segment and entry point, without executing it.
`
}

func (*linkCmd) SetFlags(f *flag.FlagSet) {}

func (*linkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	for _, file := range f.Args() {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %s\n", file, err)
			return subcommands.ExitFailure
		}

		module, err := parser.Load(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading %s: %s\n", file, err)
			return subcommands.ExitFailure
		}

		diag.DumpModule(os.Stdout, module)
	}
	return subcommands.ExitSuccess
}
