// Command eli loads and executes EIR programs: parse+link+run, or
// inspect the token stream and the resolved module along the way.
// Each verb is its own subcommand type registered with
// google/subcommands, which then drives dispatch and usage output.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&linkCmd{}, "")
	subcommands.Register(&tokensCmd{}, "")
	subcommands.Register(&versionCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
