package tracker

// BucketSummary carries the count and amount sum of one inbox bucket.
type BucketSummary struct {
	Count  int
	Amount Money
}

// InboxSummary aggregates the three buckets.
type InboxSummary struct {
	Overdue   BucketSummary
	ThisWeek  BucketSummary
	ThisMonth BucketSummary
}

// Inbox groups the unresolved due occurrences of a ledger into overdue,
// this-week and this-month buckets, each sorted ascending by due date.
type Inbox struct {
	Date      Date // the "now" the inbox was built for
	Ledger    string
	Currency  string
	Overdue   []DueInstance
	ThisWeek  []DueInstance
	ThisMonth []DueInstance
	Summary   InboxSummary
}

// BuildInbox expands the ledger's obligations over a wide horizon
// (12 months back, one month past the end of the current month) and
// partitions the unresolved occurrences. The week bucket runs from now to
// the coming Saturday (weeks start on Sunday); the month bucket covers the
// rest of the current month.
//
// Repeated calls with unchanged obligations, transactions and the same now
// return identical results.
func BuildInbox(l *Ledger, now Date) *Inbox {
	inbox := &Inbox{Date: now, Ledger: l.Name(), Currency: l.Currency()}
	zero := l.Zero()
	inbox.Summary = InboxSummary{
		Overdue:   BucketSummary{Amount: zero},
		ThisWeek:  BucketSummary{Amount: zero},
		ThisMonth: BucketSummary{Amount: zero},
	}

	horizon := NewRange(now.AddMonths(-12), now.EndOf(Monthly).AddMonths(1))
	endOfWeek := now.EndOf(Weekly)
	endOfMonth := now.EndOf(Monthly)

	for _, due := range ExpandDue(l.Obligations(), horizon, l.Transactions(), now) {
		if o := l.Obligation(due.ObligationID); o != nil && !o.Snoozed.IsZero() && now.Before(o.Snoozed) {
			continue
		}
		switch {
		case due.DueDate.Before(now):
			inbox.Overdue = append(inbox.Overdue, due)
			inbox.Summary.Overdue.Count++
			inbox.Summary.Overdue.Amount = inbox.Summary.Overdue.Amount.Add(due.Amount)
		case !due.DueDate.After(endOfWeek):
			inbox.ThisWeek = append(inbox.ThisWeek, due)
			inbox.Summary.ThisWeek.Count++
			inbox.Summary.ThisWeek.Amount = inbox.Summary.ThisWeek.Amount.Add(due.Amount)
		case !due.DueDate.After(endOfMonth):
			inbox.ThisMonth = append(inbox.ThisMonth, due)
			inbox.Summary.ThisMonth.Count++
			inbox.Summary.ThisMonth.Amount = inbox.Summary.ThisMonth.Amount.Add(due.Amount)
		}
		// occurrences past the end of month fall out of the buckets; the wide
		// horizon exists so nothing due earlier is ever missed
	}
	return inbox
}
