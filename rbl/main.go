package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/rebalance/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogging()
	ctx := context.Background()

	if flag.NArg() == 0 {
		os.Exit(int(cmd.RunSession(ctx)))
	}

	// Delegate unknown subcommands to rbl-<subcommand> extensions.
	sub := flag.Arg(0)
	known := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == sub {
			known = true
		}
	})
	if !known {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(ctx)))
}
