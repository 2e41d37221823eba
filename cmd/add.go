package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/agencyfin/tracker"
	"github.com/google/subcommands"
)

type addCmd struct {
	ledgerFile string
	amount     float64
	txType     string
	frequency  string
	due        string
	category   string
	risk       string
	required   bool
	notes      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a recurring obligation to the ledger" }
func (*addCmd) Usage() string {
	return `aft add [-l <ledger>] -amount <amount> [-freq <frequency>] [-due <date>] <title>

  Adds a recurring obligation. A zero amount creates an unpriced placeholder
  that stays out of every report until priced.

Usage Examples:
# Monthly office rent of 2400, due on the 5th of next month.
$ aft add -amount 2400 -freq monthly -due +1m -category operational "Office rent"

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to add to. Defaults to the only ledger if one exists.")
	f.Float64Var(&c.amount, "amount", 0, "Amount per cycle (0 creates an unpriced placeholder)")
	f.StringVar(&c.txType, "type", "expense", "Obligation type (income, expense)")
	f.StringVar(&c.frequency, "freq", "monthly", "Frequency (monthly, quarterly, yearly, weekly, adhoc)")
	f.StringVar(&c.due, "due", "", "Anchor due date (defaults to today)")
	f.StringVar(&c.category, "category", "", "Category (system, operational, maintenance, marketing, ...)")
	f.StringVar(&c.risk, "risk", "medium", "Risk level of missing it (low, medium, high)")
	f.BoolVar(&c.required, "required", false, "Mark the obligation as contractually required")
	f.StringVar(&c.notes, "notes", "", "Free-form notes")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	title := strings.TrimSpace(strings.Join(f.Args(), " "))
	if title == "" {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger(c.ledgerFile)
	if err != nil {
		return fail(err)
	}
	frequency, err := tracker.ParseFrequency(c.frequency)
	if err != nil {
		return fail(err)
	}
	due, err := parseDateFlag(c.due)
	if err != nil {
		return fail(err)
	}

	o := tracker.Obligation{
		Title:     title,
		Amount:    tracker.M(c.amount, ledger.Currency()),
		Frequency: frequency,
		NextDue:   due,
		Category:  tracker.Category(c.category),
		Required:  c.required,
		Notes:     c.notes,
	}
	if c.txType == "income" {
		o.Type = tracker.Income
	}
	switch c.risk {
	case "low":
		o.Risk = tracker.RiskLow
	case "high":
		o.Risk = tracker.RiskHigh
	default:
		o.Risk = tracker.RiskMedium
	}

	if err := ledger.AddObligation(o); err != nil {
		return fail(err)
	}
	if err := tracker.SaveLedger(*booksPath, ledger); err != nil {
		return fail(err)
	}
	fmt.Printf("Added %q (%s, %s) to ledger %q\n", title, o.Amount, frequency, ledger.Name())
	return subcommands.ExitSuccess
}
