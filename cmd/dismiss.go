package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/agencyfin/tracker"
	"github.com/google/subcommands"
)

type dismissCmd struct {
	ttlDays   int
	alertType string
}

func (*dismissCmd) Name() string     { return "dismiss" }
func (*dismissCmd) Synopsis() string { return "dismiss an alert for a few days" }
func (*dismissCmd) Usage() string {
	return `aft dismiss [-ttl <days>] <alert-id>...

  Hides the given alerts for a while (7 days by default). Dismissals are
  per alert id, so a changed condition surfaces as a fresh alert.
`
}

func (c *dismissCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.ttlDays, "ttl", 7, "Days before the dismissal expires")
	f.StringVar(&c.alertType, "type", "", "Alert type for the fatigue counter (derived from the id when empty)")
}

func (c *dismissCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	state := LoadState()
	for _, id := range f.Args() {
		typ := tracker.AlertType(c.alertType)
		if typ == "" {
			typ = tracker.AlertTypeOf(id)
		}
		state.Dismiss(id, typ, c.ttlDays)
		fmt.Printf("Dismissed %q for %d days\n", id, c.ttlDays)
	}
	if err := SaveState(state); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
