package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/agencyfin/tracker"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	ledgerFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrites ledger files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `aft fmt [-l <ledger>]

  Reads ledger files, coercing malformed records to safe defaults, sorts
  transactions by date, and writes them back in a canonical JSONL format.
  By default, it formats all ledgers in-place. Use -l to format a single one.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to format. Formats all by default.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledgers, err := DecodeLedgers(c.ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledgers: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(ledgers) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no ledgers found to format.\n")
		return subcommands.ExitSuccess
	}

	for _, ledger := range ledgers {
		if err := tracker.SaveLedger(*booksPath, ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", ledger.Name(), err)
			continue
		}
		fmt.Fprintf(os.Stderr, "Formatted ledger %q.\n", ledger.Name())
	}
	return subcommands.ExitSuccess
}
