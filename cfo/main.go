package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/cardfolio/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests (COMP_LINE is set) and exits.
	cmd.Completion().Complete("cfo")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !cmd.Known(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
