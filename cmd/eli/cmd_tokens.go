package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/harukamm/elvm/internal/reader"
)

// tokensCmd dumps the identifiers, punctuation and string literals the
// reader produces while scanning a file.
type tokensCmd struct{}

func (*tokensCmd) Name() string { return "tokens" }

func (*tokensCmd) Synopsis() string { return "Show the token stream of an EIR source file." }

func (*tokensCmd) Usage() string {
	return `tokens <file>:
Dump the identifiers, punctuation and string literals the reader
produces while scanning the given file.
`
}

func (*tokensCmd) SetFlags(f *flag.FlagSet) {}

func (*tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	for _, file := range f.Args() {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %s\n", file, err)
			return subcommands.ExitFailure
		}
		if err := dumpTokens(os.Stdout, src); err != nil {
			fmt.Fprintf(os.Stderr, "error tokenizing %s: %s\n", file, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// dumpTokens performs a best-effort re-scan of src purely for display:
// it does not build instructions, it just walks the reader's cursor
// primitives and prints what it sees.
func dumpTokens(w io.Writer, src []byte) error {
	r := reader.New(src)
	for !r.IsEnd() {
		r.SkipSpaces()
		if r.IsEnd() {
			break
		}
		switch r.Peek() {
		case ',':
			r.Getc()
			fmt.Fprintln(w, "COMMA")
		case ':':
			r.Getc()
			fmt.Fprintln(w, "COLON")
		case '"':
			s, err := r.Literal()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "STR %q\n", s)
		default:
			word := r.TokenWord()
			if word == "" {
				// Unrecognized punctuation; consume it so we make
				// progress and report it verbatim.
				fmt.Fprintf(w, "BYTE %q\n", string(r.Getc()))
				continue
			}
			fmt.Fprintf(w, "WORD %s\n", word)
		}
	}
	return nil
}
