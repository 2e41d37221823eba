package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/agencyfin/tracker"
	"github.com/google/subcommands"
)

type skipCmd struct {
	ledgerFile string
	date       string
}

func (*skipCmd) Name() string     { return "skip" }
func (*skipCmd) Synopsis() string { return "mark an obligation's occurrence as deliberately unpaid" }
func (*skipCmd) Usage() string {
	return `aft skip [-l <ledger>] [-d <date>] <obligation-id>

  Records a skip in the obligation history without creating a transaction.
  A skipped occurrence still shows overdue in the inbox; skipping is an
  annotation, not a settlement.
`
}

func (c *skipCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to record into. Defaults to the only ledger if one exists.")
	f.StringVar(&c.date, "d", "", "Skip date (defaults to today)")
}

func (c *skipCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger(c.ledgerFile)
	if err != nil {
		return fail(err)
	}
	on, err := parseDateFlag(c.date)
	if err != nil {
		return fail(err)
	}

	if err := ledger.SkipOccurrence(f.Arg(0), on); err != nil {
		return fail(err)
	}
	if err := tracker.SaveLedger(*booksPath, ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Skipped occurrence of %q on %s\n", f.Arg(0), on)
	return subcommands.ExitSuccess
}
