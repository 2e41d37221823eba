package renderer

import (
	"bytes"
	"fmt"

	"github.com/agencyfin/tracker"
	md "github.com/nao1215/markdown"
)

// InboxMarkdown renders the due-occurrence inbox to a markdown string.
func InboxMarkdown(in *tracker.Inbox) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Inbox for %q on %s", in.Ledger, in.Date))

	summary := md.TableSet{
		Header: []string{"Bucket", "Count", "Amount"},
		Rows: [][]string{
			{"Overdue", fmt.Sprintf("%d", in.Summary.Overdue.Count), moneyCell(in.Summary.Overdue.Amount)},
			{"This Week", fmt.Sprintf("%d", in.Summary.ThisWeek.Count), moneyCell(in.Summary.ThisWeek.Amount)},
			{"This Month", fmt.Sprintf("%d", in.Summary.ThisMonth.Count), moneyCell(in.Summary.ThisMonth.Amount)},
		},
	}
	doc.Table(summary)

	bucket(doc, "Overdue", in.Overdue)
	bucket(doc, "This Week", in.ThisWeek)
	bucket(doc, "This Month", in.ThisMonth)

	if len(in.Overdue)+len(in.ThisWeek)+len(in.ThisMonth) == 0 {
		doc.PlainText("Nothing due. All caught up.")
	}

	return doc.String()
}

func bucket(doc *md.Markdown, title string, dues []tracker.DueInstance) {
	if len(dues) == 0 {
		return
	}
	doc.H2(title)

	rows := make([][]string, 0, len(dues))
	for _, d := range dues {
		overdue := "-"
		if d.DaysOverdue > 0 {
			overdue = fmt.Sprintf("%dd", d.DaysOverdue)
		}
		rows = append(rows, []string{
			d.DueDate.String(), d.Title, string(d.Priority), moneyCell(d.Amount), overdue,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Due", "Title", "Priority", "Amount", "Overdue"},
		Rows:   rows,
	})
}
