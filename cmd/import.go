package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/agencyfin/tracker"
	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a web-app backup export into the books" }
func (*importCmd) Usage() string {
	return `aft import <backup.json>

  Reads a backup export of the web application (its localStorage dump) and
  writes one ledger file per book. Malformed records are coerced to safe
  defaults or skipped with a warning, never a hard failure.
`
}

func (*importCmd) SetFlags(_ *flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println(c.Usage())
		return subcommands.ExitUsageError
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	defer file.Close()

	books, err := tracker.ImportBackup(file)
	if err != nil {
		return fail(err)
	}

	names := make([]string, 0, len(books))
	for name := range books {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ledger := books[name]
		if err := tracker.SaveLedger(*booksPath, ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", name, err)
			continue
		}
		fmt.Printf("Imported ledger %q: %d obligations, %d transactions\n",
			name, len(ledger.Obligations()), len(ledger.Transactions()))
	}
	return subcommands.ExitSuccess
}
