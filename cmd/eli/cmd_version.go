package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/harukamm/elvm/internal/config"
)

// out is a package-level sink so tests can redirect it without
// touching os.Stdout.
var (
	out          io.Writer = os.Stdout
	buildVersion           = "1.0.0"
)

// versionCmd reports the interpreter's build version and its resolved
// default memory size, so a user can confirm which defaults a given
// binary ships with before pointing -config at something else.
type versionCmd struct{}

func (*versionCmd) Name() string { return "version" }

func (*versionCmd) Synopsis() string { return "Show eli's version." }

func (*versionCmd) Usage() string {
	return `version:
Print the interpreter version and its default memory size, then exit.
`
}

func (*versionCmd) SetFlags(f *flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cfg := config.DefaultConfig()
	fmt.Fprintf(out, "%s (default memory: %d words)\n", buildVersion, cfg.Memory.Words)
	return subcommands.ExitSuccess
}
