package cmd

import (
	"context"
	"flag"

	"github.com/agencyfin/tracker"
	"github.com/agencyfin/tracker/renderer"
	"github.com/google/subcommands"
)

type scoreCmd struct {
	date       string
	ledgerFile string
}

func (*scoreCmd) Name() string     { return "score" }
func (*scoreCmd) Synopsis() string { return "display the financial health score" }
func (*scoreCmd) Usage() string {
	return `aft score [-d <date>] [-l <ledger>]

  Computes the 0-100 financial health score with its signals.
`
}

func (c *scoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the report (defaults to today)")
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to report on. Defaults to the only ledger if one exists.")
}

func (c *scoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now, err := parseDateFlag(c.date)
	if err != nil {
		return fail(err)
	}
	ledger, err := DecodeLedger(c.ledgerFile)
	if err != nil {
		return fail(err)
	}

	health := tracker.NewHealthScore(ledger, now)
	printMarkdown(renderer.HealthMarkdown(ledger.Name(), health))
	return subcommands.ExitSuccess
}
