package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/agencyfin/tracker"
	"github.com/google/subcommands"
)

type payCmd struct {
	ledgerFile string
	date       string
	amount     float64
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "record a payment settling an obligation's occurrence" }
func (*payCmd) Usage() string {
	return `aft pay [-l <ledger>] [-d <date>] [-amount <amount>] <obligation-id>

  Appends a transaction linked to the obligation. The obligation's due date
  is never advanced: the cycle counts as settled because the transaction
  falls inside its payment window.
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to record into. Defaults to the only ledger if one exists.")
	f.StringVar(&c.date, "d", "", "Payment date (defaults to today)")
	f.Float64Var(&c.amount, "amount", 0, "Paid amount (defaults to the obligation amount)")
}

func (c *payCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	tx, err := ledger.RecordPayment(f.Arg(0), on, tracker.M(c.amount, ledger.Currency()))
	if err != nil {
		return fail(err)
	}
	if err := tracker.SaveLedger(*booksPath, ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Recorded %s on %s (transaction %s)\n", tx.Amount, tx.Date, tx.ID)
	return subcommands.ExitSuccess
}
