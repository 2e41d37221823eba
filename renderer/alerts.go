package renderer

import (
	"bytes"
	"fmt"

	"github.com/agencyfin/tracker"
	md "github.com/nao1215/markdown"
)

// AlertsMarkdown renders the generated alert list.
func AlertsMarkdown(ledger string, alerts []tracker.Alert) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Alerts for %q", ledger))

	if len(alerts) == 0 {
		doc.PlainText("No alerts.")
		return doc.String()
	}

	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, []string{
			severityIcon(a.Severity),
			a.Title,
			moneyCell(a.Amount),
			a.DueDate.String(),
			a.ID,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Severity", "Alert", "Amount", "Due", "Id"},
		Rows:   rows,
	})
	doc.PlainText("Dismiss with `aft dismiss <id>` or snooze with `aft snooze <id>`.")

	return doc.String()
}
