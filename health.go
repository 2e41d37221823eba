package tracker

import "math"

// HealthScore is a 0-100 composite of payment discipline, income/expense
// coverage, alert load and cash-flow stability, with the sub-components kept
// for explainability.
type HealthScore struct {
	Score int // always in [0,100]

	// weighted signals
	Discipline float64 // on-time payment ratio, scaled to 40
	Coverage   float64 // income/expense coverage, scaled to 20
	AlertLoad  float64 // 20 minus 5 per critical alert, floored at 0
	Stability  float64 // cash-flow variance signal, scaled to 20

	// legacy blend, two sub-scores capped at 50 each. The 70/30 blend with
	// the composite has no documented rationale; it is preserved as-is for
	// behavioral parity and flagged for product review.
	LegacyPayment float64
	LegacyBuffer  float64

	CriticalAlerts int
}

// trailingDays is the window over which discipline, coverage and stability
// are observed.
const trailingDays = 90

// Score computes the ledger's health score. It is 0 when there is no ledger
// context at all.
func Score(l *Ledger, now Date) int {
	return NewHealthScore(l, now).Score
}

// NewHealthScore computes the health score with its sub-components.
func NewHealthScore(l *Ledger, now Date) *HealthScore {
	h := &HealthScore{}
	if l == nil || (len(l.Obligations()) == 0 && len(l.Transactions()) == 0) {
		return h
	}

	trailing := NewRange(now.Add(-trailingDays), now)

	discipline := disciplineRatio(l, trailing, now)
	coverage := coverageRatio(l, trailing)
	critical := countCritical(pureAlerts(l, now))
	stability := stabilityRatio(l, now)

	h.Discipline = discipline * 40
	h.Coverage = coverage * 20
	h.AlertLoad = math.Max(0, 20-5*float64(critical))
	h.Stability = (1 - stability) * 20
	h.CriticalAlerts = critical

	h.LegacyPayment = math.Min(50, discipline*50)
	h.LegacyBuffer = math.Min(50, coverage*50)

	composite := h.Discipline + h.Coverage + h.AlertLoad + h.Stability
	legacy := h.LegacyPayment + h.LegacyBuffer
	score := math.Round(0.7*composite + 0.3*legacy)

	h.Score = int(math.Max(0, math.Min(100, score)))
	return h
}

// disciplineRatio is the share of due occurrences in the trailing window that
// were settled by a matching transaction. With nothing due, discipline is
// perfect.
func disciplineRatio(l *Ledger, trailing Range, now Date) float64 {
	total, paid := 0, 0
	for _, occ := range occurrencesIn(l.Obligations(), trailing) {
		if occ.due.After(now) {
			continue
		}
		total++
		if IsPaid(occ.ob.ID, occ.due, occ.next, l.Transactions()) {
			paid++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(paid) / float64(total)
}

// coverageRatio is min(1, income/expense) over the trailing window.
// With no expense there is nothing to cover.
func coverageRatio(l *Ledger, trailing Range) float64 {
	expense := l.expenseIn(trailing).AsFloat()
	if expense == 0 {
		return 1
	}
	income := l.incomeIn(trailing).AsFloat()
	return math.Min(1, income/expense)
}

// stabilityRatio is min(1, variance/|mean|) of the three trailing 30-day net
// figures; a zero mean counts as fully unstable.
func stabilityRatio(l *Ledger, now Date) float64 {
	var nets [3]float64
	for i := range nets {
		slice := NewRange(now.Add(-30*(i+1)+1), now.Add(-30*i))
		nets[i] = l.incomeIn(slice).AsFloat() - l.expenseIn(slice).AsFloat()
	}

	mean := (nets[0] + nets[1] + nets[2]) / 3
	variance := 0.0
	for _, n := range nets {
		variance += (n - mean) * (n - mean)
	}
	variance /= 3

	if mean == 0 {
		return 1
	}
	return math.Min(1, variance/math.Abs(mean))
}
