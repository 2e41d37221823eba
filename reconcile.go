package tracker

// IsPaid reports whether a due occurrence is already settled: true iff some
// transaction links back to the obligation and falls in the half-open
// one-cycle window [due, next).
//
// This is how "paid this cycle" is derived without ever mutating the
// obligation's stored due date.
func IsPaid(recurringID string, due, next Date, transactions []Transaction) bool {
	for i := range transactions {
		t := &transactions[i]
		if t.RecurringID != recurringID {
			continue
		}
		if !t.Date.Before(due) && t.Date.Before(next) {
			return true
		}
	}
	return false
}
