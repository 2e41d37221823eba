package cmd

import (
	"context"
	"flag"
	"log"

	"github.com/agencyfin/tracker"
	"github.com/agencyfin/tracker/renderer"
	"github.com/google/subcommands"
)

type alertsCmd struct {
	date       string
	ledgerFile string
}

func (*alertsCmd) Name() string     { return "alerts" }
func (*alertsCmd) Synopsis() string { return "display actionable alerts for the ledger" }
func (*alertsCmd) Usage() string {
	return `aft alerts [-d <date>] [-l <ledger>]

  Runs the alert detectors and shows up to 10 alerts, critical first.
  Note: querying alerts updates the health-trend baseline.
`
}

func (c *alertsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the report (defaults to today)")
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to report on. Defaults to the only ledger if one exists.")
}

func (c *alertsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now, err := parseDateFlag(c.date)
	if err != nil {
		return fail(err)
	}
	ledger, err := DecodeLedger(c.ledgerFile)
	if err != nil {
		return fail(err)
	}

	state := LoadState()
	alerts := tracker.GenerateAlerts(ledger, state, now)
	// the trend detector rewrote its baseline; persist it
	if err := SaveState(state); err != nil {
		log.Printf("warning: could not save engine state: %v", err)
	}

	printMarkdown(renderer.AlertsMarkdown(ledger.Name(), alerts))
	return subcommands.ExitSuccess
}
