// Package renderer turns the engine's derived reports (inbox, health score,
// forecast, alerts) into markdown strings for terminal or document output.
package renderer

import "github.com/agencyfin/tracker"

// moneyCell formats an amount for a table cell, "-" when zero.
func moneyCell(m tracker.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.String()
}

// severityIcon decorates the alert severity column.
func severityIcon(s tracker.Severity) string {
	switch s {
	case tracker.SeverityCritical:
		return "🔴 " + s.String()
	case tracker.SeverityWarning:
		return "🟡 " + s.String()
	default:
		return "🔵 " + s.String()
	}
}
