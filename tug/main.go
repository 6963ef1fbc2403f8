package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"

	"github.com/tugpack/costing/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion provides shell completion for the subcommand names. It
// returns immediately outside of a completion request.
func completion() {
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"gen":      {},
			"allocate": {},
			"report":   {},
			"train":    {},
			"tiers":    {},
			"predict":  {},
			"assist":   {},
			"topic":    {},
		},
	}
	c.Complete("tug")
}
