package tracker

import "sort"

// Priority ranks a due instance for display.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
)

// DueInstance is one concrete, unresolved occurrence of an obligation within
// a queried window. It is derived state, never persisted.
type DueInstance struct {
	ObligationID string
	Title        string
	Type         TxType
	Category     Category
	Risk         RiskLevel
	Required     bool
	DueDate      Date
	Amount       Money
	DaysOverdue  int
	Priority     Priority
}

// occurrence is a raw candidate due date, before reconciliation.
type occurrence struct {
	ob   *Obligation
	due  Date
	next Date // start of the following cycle, end of the payment window
}

// occurrencesIn expands every priced obligation into its raw candidate
// occurrences inside the period. Unpriced obligations and adhoc obligations
// outside the window are silently skipped.
func occurrencesIn(obligations []Obligation, period Range) []occurrence {
	var out []occurrence
	for i := range obligations {
		o := &obligations[i]
		if !o.Priced() || o.NextDue.IsZero() {
			continue
		}

		if o.Frequency == FreqAdHoc {
			// a single occurrence, in the window or nowhere
			if period.Contains(o.NextDue) {
				out = append(out, occurrence{ob: o, due: o.NextDue, next: o.NextDue.AddMonths(1)})
			}
			continue
		}

		// The anchor is the first candidate: occurrences before it belong to
		// cycles already behind us. An anchor past the window rewinds onto the
		// cycle grid inside it; a stale anchor advances into the window.
		cursor := o.NextDue
		for cursor.After(period.To) {
			cursor = o.Frequency.StepBackward(cursor)
		}
		for cursor.Before(period.From) {
			cursor = o.Frequency.StepForward(cursor)
		}
		for !cursor.After(period.To) {
			next := o.Frequency.StepForward(cursor)
			out = append(out, occurrence{ob: o, due: cursor, next: next})
			cursor = next
		}
	}
	return out
}

// ExpandDue turns obligations plus a date window into the concrete occurrences
// that are not settled by a matching transaction. daysOverdue counts from
// today; priority escalates with lateness and risk.
func ExpandDue(obligations []Obligation, period Range, transactions []Transaction, today Date) []DueInstance {
	var out []DueInstance
	for _, occ := range occurrencesIn(obligations, period) {
		if IsPaid(occ.ob.ID, occ.due, occ.next, transactions) {
			continue
		}
		overdue := today.Sub(occ.due)
		if overdue < 0 {
			overdue = 0
		}
		out = append(out, DueInstance{
			ObligationID: occ.ob.ID,
			Title:        occ.ob.Title,
			Type:         occ.ob.Type,
			Category:     occ.ob.Category,
			Risk:         occ.ob.Risk,
			Required:     occ.ob.Required,
			DueDate:      occ.due,
			Amount:       occ.ob.Amount,
			DaysOverdue:  overdue,
			Priority:     duePriority(overdue, occ.ob.Risk),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate != out[j].DueDate {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func duePriority(daysOverdue int, risk RiskLevel) Priority {
	switch {
	case daysOverdue > 7:
		return PriorityCritical
	case daysOverdue > 0 && risk == RiskHigh:
		return PriorityCritical
	case daysOverdue > 0:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}
