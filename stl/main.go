// Command stl records stock trades and reports positions and realized gains.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stockledger/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)

	// Answers shell completion requests (COMP_LINE is set) and exits.
	completion(flag.CommandLine, cmd.Commands).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
