package renderer

import (
	"bytes"
	"fmt"

	"github.com/agencyfin/tracker"
	md "github.com/nao1215/markdown"
)

// ForecastMarkdown renders the cash-flow projection.
func ForecastMarkdown(f *tracker.Forecast) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Cash-Flow Forecast for %q (%s scenario)", f.Ledger, f.Scenario))
	doc.PlainText(fmt.Sprintf("Monthly run-rate: %s", f.MonthlyTotal))

	doc.H2("Run-rate by category")
	catRows := make([][]string, 0, len(tracker.ForecastBuckets))
	for _, b := range tracker.ForecastBuckets {
		catRows = append(catRows, []string{string(b), moneyCell(f.ByCategory[b])})
	}
	doc.Table(md.TableSet{Header: []string{"Category", "Monthly"}, Rows: catRows})

	doc.H2("Projection")
	rows := make([][]string, 0, len(f.Series))
	for _, m := range f.Series {
		rows = append(rows, []string{
			m.Month.Format("2006-01"),
			moneyCell(m.Inflow),
			moneyCell(m.Outflow),
			m.Net.SignedString(),
			m.Cumulative.SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Month", "Inflow", "Outflow", "Net", "Cumulative"},
		Rows:   rows,
	})

	switch {
	case f.FirstGapMonth > 0:
		gap := f.Series[f.FirstGapMonth-1]
		doc.PlainText(fmt.Sprintf("⚠ First cash gap in %s, worst gap %s.",
			gap.Month.Format("January 2006"), f.WorstGap))
	default:
		doc.PlainText("No cash gap over the horizon.")
	}

	return doc.String()
}
