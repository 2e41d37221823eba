package cmd

import (
	"context"
	"flag"

	"github.com/agencyfin/tracker"
	"github.com/agencyfin/tracker/renderer"
	"github.com/google/subcommands"
)

// inboxCmd holds the flags for the 'inbox' subcommand.
type inboxCmd struct {
	date       string
	ledgerFile string
}

func (*inboxCmd) Name() string     { return "inbox" }
func (*inboxCmd) Synopsis() string { return "display what is due: overdue, this week, this month" }
func (*inboxCmd) Usage() string {
	return `aft inbox [-d <date>] [-l <ledger>]

  Expands the recurring obligations of the ledger and shows the unresolved
  occurrences bucketed by urgency.
`
}

func (c *inboxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date for the report (defaults to today)")
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to report on. Defaults to the only ledger if one exists.")
}

func (c *inboxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now, err := parseDateFlag(c.date)
	if err != nil {
		return fail(err)
	}
	ledger, err := DecodeLedger(c.ledgerFile)
	if err != nil {
		return fail(err)
	}

	inbox := tracker.BuildInbox(ledger, now)
	printMarkdown(renderer.InboxMarkdown(inbox))
	return subcommands.ExitSuccess
}
