package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/harukamm/elvm/internal/config"
	"github.com/harukamm/elvm/internal/parser"
	"github.com/harukamm/elvm/internal/vm"
)

// runCmd parses, links and immediately executes an EIR program file.
type runCmd struct {
	configPath string
}

func (*runCmd) Name() string { return "run" }

func (*runCmd) Synopsis() string { return "Parse, link and execute an EIR program." }

func (*runCmd) Usage() string {
	return `run <file>:
Parse and link the given EIR source file, then execute it.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "path to a TOML configuration file")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	for _, file := range f.Args() {
		cfg, err := loadConfig(c.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}

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

		interp := vm.New(cfg.Memory.Words, os.Stdin, os.Stdout, traceWriter(cfg))
		if err := interp.Load(module); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := interp.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "error running %s: %s\n", file, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

func traceWriter(cfg *config.Config) io.Writer {
	if cfg.Execution.Trace {
		return os.Stderr
	}
	return nil
}
