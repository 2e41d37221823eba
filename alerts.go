package tracker

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Severity ranks alerts; lower sorts first.
type Severity int

const (
	SeverityCritical Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// AlertType identifies the detector that produced an alert.
type AlertType string

const (
	AlertCashflowCrisis  AlertType = "cashflow-crisis"
	AlertSpendingAnomaly AlertType = "spending-anomaly"
	AlertMissedIncome    AlertType = "missed-income"
	AlertHealthTrend     AlertType = "health-trend"
	AlertDormant         AlertType = "dormant-commitment"
)

// AlertTypeOf recovers the detector type from an alert id, which always
// starts with a type-specific prefix.
func AlertTypeOf(id string) AlertType {
	for _, t := range []AlertType{AlertCashflowCrisis, AlertSpendingAnomaly, AlertMissedIncome, AlertHealthTrend} {
		if strings.HasPrefix(id, string(t)) {
			return t
		}
	}
	if strings.HasPrefix(id, "dormant-") {
		return AlertDormant
	}
	return AlertType(id)
}

// maxAlerts caps the generated alert list.
const maxAlerts = 10

// alertLookbackDays bounds how far back the missed-income detector scans.
const alertLookbackDays = 90

// Alert is one actionable finding, derived on demand and never persisted.
type Alert struct {
	ID          string
	Type        AlertType
	Severity    Severity
	Title       string
	Amount      Money
	DueDate     Date
	ActionLabel string
	ActionType  string
}

// GenerateAlerts runs the five detectors, drops alerts currently dismissed or
// snoozed, sorts by severity then due date, and truncates to 10.
//
// All detectors are pure except the health trend, which rewrites its
// persisted baseline as a side effect of being queried.
func GenerateAlerts(l *Ledger, state *EngineState, now Date) []Alert {
	alerts := pureAlerts(l, now)
	if state != nil {
		alerts = append(alerts, detectHealthTrend(l, state, now)...)
		filtered := alerts[:0]
		for _, a := range alerts {
			if !state.IsHidden(a.ID) {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity < alerts[j].Severity
		}
		if alerts[i].DueDate != alerts[j].DueDate {
			return alerts[i].DueDate.Before(alerts[j].DueDate)
		}
		return alerts[i].ID < alerts[j].ID
	})
	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}
	return alerts
}

// pureAlerts runs the read-only detectors. The health scorer uses the same
// set to derive the alert-load signal without recursing through the trend
// detector.
func pureAlerts(l *Ledger, now Date) []Alert {
	var alerts []Alert
	alerts = append(alerts, detectCashflowCrisis(l, now)...)
	alerts = append(alerts, detectSpendingAnomaly(l, now)...)
	alerts = append(alerts, detectMissedIncome(l, now)...)
	alerts = append(alerts, detectDormant(l, now)...)
	return alerts
}

func countCritical(alerts []Alert) int {
	n := 0
	for _, a := range alerts {
		if a.Severity == SeverityCritical {
			n++
		}
	}
	return n
}

// detectCashflowCrisis projects the 30-day balance: current net plus unpaid
// income due within 30 days minus unpaid expense due within 30 days. A
// negative projection is a critical alert carrying the shortfall.
func detectCashflowCrisis(l *Ledger, now Date) []Alert {
	projected := l.NetBalance()
	next30 := NewRange(now, now.Add(30))
	for _, occ := range occurrencesIn(l.Obligations(), next30) {
		if IsPaid(occ.ob.ID, occ.due, occ.next, l.Transactions()) {
			continue
		}
		if occ.ob.Type == Income {
			projected = projected.Add(occ.ob.Amount)
		} else {
			projected = projected.Sub(occ.ob.Amount)
		}
	}
	if !projected.IsNegative() {
		return nil
	}
	return []Alert{{
		ID:          "cashflow-crisis",
		Type:        AlertCashflowCrisis,
		Severity:    SeverityCritical,
		Title:       fmt.Sprintf("Projected 30-day shortfall of %s", projected.Neg()),
		Amount:      projected.Neg(),
		DueDate:     now,
		ActionLabel: "Review forecast",
		ActionType:  "forecast",
	}}
}

// detectSpendingAnomaly flags a day whose expense total reaches three times
// the trailing-30-day daily average.
func detectSpendingAnomaly(l *Ledger, now Date) []Alert {
	today := l.expenseIn(NewRange(now, now))
	trailing := l.expenseIn(NewRange(now.Add(-30), now.Add(-1)))
	average := trailing.DivInt(30)
	if !average.IsPositive() || today.LessThan(average.MulFloat(3)) {
		return nil
	}
	return []Alert{{
		ID:          "spending-anomaly-" + now.String(),
		Type:        AlertSpendingAnomaly,
		Severity:    SeverityWarning,
		Title:       fmt.Sprintf("Unusual spending today: %s vs %s daily average", today, average),
		Amount:      today,
		DueDate:     now,
		ActionLabel: "Review transactions",
		ActionType:  "transactions",
	}}
}

// detectMissedIncome emits one alert per past-due income occurrence with no
// matching transaction.
func detectMissedIncome(l *Ledger, now Date) []Alert {
	var alerts []Alert
	lookback := NewRange(now.Add(-alertLookbackDays), now)
	for _, occ := range occurrencesIn(l.Obligations(), lookback) {
		if occ.ob.Type != Income || !occ.due.Before(now) {
			continue
		}
		if IsPaid(occ.ob.ID, occ.due, occ.next, l.Transactions()) {
			continue
		}
		alerts = append(alerts, Alert{
			ID:          fmt.Sprintf("missed-income-%s-%s", occ.ob.ID, occ.due),
			Type:        AlertMissedIncome,
			Severity:    SeverityWarning,
			Title:       fmt.Sprintf("Expected income %q due %s not received", occ.ob.Title, occ.due),
			Amount:      occ.ob.Amount,
			DueDate:     occ.due,
			ActionLabel: "Record payment",
			ActionType:  "pay",
		})
	}
	return alerts
}

// detectDormant flags a priced obligation that has not matched a transaction
// for at least two of its cycle lengths.
func detectDormant(l *Ledger, now Date) []Alert {
	var alerts []Alert
	for i := range l.Obligations() {
		o := &l.Obligations()[i]
		cycle := o.Frequency.CycleDays()
		if !o.Priced() || cycle == 0 {
			continue
		}

		last := Date{}
		for j := range l.Transactions() {
			t := &l.Transactions()[j]
			if t.RecurringID == o.ID && t.Date.After(last) {
				last = t.Date
			}
		}
		if last.IsZero() {
			// never settled: dormant once the anchor is two cycles stale
			last = o.NextDue
		}
		if last.IsZero() || now.Sub(last) < 2*cycle {
			continue
		}
		alerts = append(alerts, Alert{
			ID:          "dormant-" + o.ID,
			Type:        AlertDormant,
			Severity:    SeverityWarning,
			Title:       fmt.Sprintf("No activity on %q for over two cycles", o.Title),
			Amount:      o.Amount,
			DueDate:     last,
			ActionLabel: "Review obligation",
			ActionType:  "obligation",
		})
	}
	return alerts
}

// trendDelta is the minimum score move that triggers a trend alert, and
// trendAgeDays the minimum baseline age before comparing.
const (
	trendDelta   = 10
	trendAgeDays = 6
)

// detectHealthTrend compares the current score against the persisted baseline
// and always rewrites the baseline afterwards. This is the one detector that
// is not read-only.
func detectHealthTrend(l *Ledger, state *EngineState, now Date) []Alert {
	current := Score(l, now)
	baseline, ok := state.Baseline(l.Name())
	defer state.SetBaseline(l.Name(), current, now)

	if !ok {
		return nil
	}
	ageDays := (now.Epoch() - baseline.At) / day.Milliseconds()
	delta := current - baseline.Score
	if ageDays < trendAgeDays || delta > -trendDelta && delta < trendDelta {
		return nil
	}

	a := Alert{
		ID:          "health-trend",
		Type:        AlertHealthTrend,
		DueDate:     now,
		Amount:      l.Zero(),
		ActionLabel: "Review health report",
		ActionType:  "score",
	}
	if delta < 0 {
		a.Severity = SeverityWarning
		a.Title = fmt.Sprintf("Financial health declined by %d points (now %d)", -delta, current)
	} else {
		a.Severity = SeverityInfo
		a.Title = fmt.Sprintf("Financial health improved by %d points (now %d)", delta, current)
	}
	return []Alert{a}
}
