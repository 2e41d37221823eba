// Package cmd implements the CLI application to manage the office books.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/agencyfin/tracker"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists the subcommands for registration by the main package.
var Commands = []subcommands.Command{
	&inboxCmd{},
	&scoreCmd{},
	&alertsCmd{},
	&forecastCmd{},
	&addCmd{},
	&payCmd{},
	&skipCmd{},
	&dismissCmd{},
	&snoozeCmd{},
	&importCmd{},
	&fmtCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var booksPath = flag.String("books-path", "books", "Path to the books directory containing ledger files (JSONL format)")
var stateFile = flag.String("state-file", ".aft-state.json", "Path to the engine state file (alert suppression and health baselines)")

// DecodeLedger loads the single ledger matching the query from the books path.
func DecodeLedger(query string) (*tracker.Ledger, error) {
	return tracker.FindLedger(*booksPath, query)
}

// DecodeLedgers loads every ledger matching the query.
func DecodeLedgers(query string) ([]*tracker.Ledger, error) {
	return tracker.FindLedgers(*booksPath, query)
}

// LoadState reads the engine state; a missing or corrupt file yields an
// empty state rather than an error.
func LoadState() *tracker.EngineState {
	return tracker.LoadEngineState(*stateFile)
}

// SaveState persists the engine state back to disk.
func SaveState(s *tracker.EngineState) error {
	return s.Save(*stateFile)
}

// printMarkdown renders markdown on the terminal, falling back to the raw
// text when the renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// parseDateFlag resolves a -d flag value, defaulting to today.
func parseDateFlag(value string) (tracker.Date, error) {
	if value == "" {
		return tracker.Today(), nil
	}
	return tracker.ParseDate(value)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
