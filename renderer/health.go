package renderer

import (
	"bytes"
	"fmt"

	"github.com/agencyfin/tracker"
	md "github.com/nao1215/markdown"
)

// HealthMarkdown renders the health score with its sub-components.
func HealthMarkdown(ledger string, h *tracker.HealthScore) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Financial Health of %q", ledger))
	doc.PlainText(fmt.Sprintf("Score: **%d** / 100", h.Score))

	doc.H2("Signals")
	doc.Table(md.TableSet{
		Header: []string{"Signal", "Points", "Ceiling", "Fill"},
		Rows: [][]string{
			{"Payment discipline", fmt.Sprintf("%.1f", h.Discipline), "40", fill(h.Discipline, 40)},
			{"Income coverage", fmt.Sprintf("%.1f", h.Coverage), "20", fill(h.Coverage, 20)},
			{"Alert load", fmt.Sprintf("%.1f", h.AlertLoad), "20", fill(h.AlertLoad, 20)},
			{"Cash-flow stability", fmt.Sprintf("%.1f", h.Stability), "20", fill(h.Stability, 20)},
		},
	})

	if h.CriticalAlerts > 0 {
		doc.PlainText(fmt.Sprintf("%d critical alert(s) currently weigh on the score.", h.CriticalAlerts))
	}

	return doc.String()
}

// fill renders the share of the ceiling a signal reaches.
func fill(points, ceiling float64) string {
	return tracker.Percent(points / ceiling * 100).String()
}
