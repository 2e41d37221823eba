package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type snoozeCmd struct {
	hours int
}

func (*snoozeCmd) Name() string     { return "snooze" }
func (*snoozeCmd) Synopsis() string { return "snooze an alert for a few hours" }
func (*snoozeCmd) Usage() string {
	return `aft snooze [-hours <n>] <alert-id>...

  Hides the given alerts until the snooze elapses (24 hours by default).
`
}

func (c *snoozeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.hours, "hours", 24, "Hours before the alert reappears")
}

func (c *snoozeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	state := LoadState()
	for _, id := range f.Args() {
		state.Snooze(id, c.hours)
		fmt.Printf("Snoozed %q for %d hours\n", id, c.hours)
	}
	if err := SaveState(state); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
