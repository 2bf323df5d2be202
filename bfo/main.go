package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/bondfolio/bondfolio/cmd"
)

func main() {
	// Shell completion: when invoked by the shell's completion hook this
	// prints candidates and exits, otherwise it is a no-op.
	completion().Complete("bfo")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	dateFlags := map[string]complete.Predictor{
		"d": predict.Nothing,
		"l": predict.Nothing,
		"m": predict.Nothing,
	}
	cashFlags := map[string]complete.Predictor{
		"d": predict.Nothing,
		"l": predict.Nothing,
		"m": predict.Nothing,
		"a": predict.Nothing,
		"c": predict.Set{"BYN", "USD", "EUR", "RUB"},
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"p": predict.Dirs("*"),
		},
		Sub: map[string]*complete.Command{
			"buy":      {Flags: cashFlags},
			"sell":     {Flags: cashFlags},
			"maturity": {Flags: cashFlags},
			"coupon":   {Flags: cashFlags},
			"dividend": {Flags: cashFlags},
			"deposit":  {Flags: cashFlags},
			"debit":    {Flags: cashFlags},
			"credit":   {Flags: cashFlags},
			"report":   {Flags: dateFlags},
			"yield":    {Flags: dateFlags},
			"tx":       {Flags: dateFlags},
			"fmt":      {Flags: dateFlags},
			"demo":     {},
			"import":   {Flags: map[string]complete.Predictor{"i": predict.Files("*.json"), "l": predict.Nothing}},
			"backup":   {Flags: map[string]complete.Predictor{"o": predict.Files("*.db")}},
			"topic":    {Args: predict.Set{"readme", "average-cost", "xirr", "currencies", "ledger"}},
		},
	}
}
