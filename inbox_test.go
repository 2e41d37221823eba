package tracker

import (
	"reflect"
	"testing"
	"time"
)

// testLedger builds an in-memory ledger for engine tests.
func testLedger(t *testing.T, obligations []Obligation, transactions []Transaction) *Ledger {
	t.Helper()
	l := NewLedger()
	l.currency = "USD"
	l.name = "test"
	for _, o := range obligations {
		if err := l.AddObligation(o); err != nil {
			t.Fatalf("AddObligation(%q): %v", o.Title, err)
		}
	}
	for _, tx := range transactions {
		if err := l.AddTransaction(tx); err != nil {
			t.Fatalf("AddTransaction(%q): %v", tx.ID, err)
		}
	}
	return l
}

func TestBuildInboxBuckets(t *testing.T) {
	// 2024-01-10 is a Wednesday; the week ends Saturday 13, the month 31.
	now := NewDate(2024, time.January, 10)
	l := testLedger(t, []Obligation{
		{ID: "ob-rent", Title: "Office rent", Amount: M(1000, "USD"), Type: Expense,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 5)},
		{ID: "ob-crm", Title: "CRM subscription", Amount: M(99, "USD"), Type: Expense,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 12)},
		{ID: "ob-ads", Title: "Portal ads", Amount: M(250, "USD"), Type: Expense,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 20)},
	}, nil)

	in := BuildInbox(l, now)

	if got, want := len(in.Overdue), 1; got != want {
		t.Fatalf("Overdue: got %d, want %d", got, want)
	}
	if got, want := in.Overdue[0].ObligationID, "ob-rent"; got != want {
		t.Errorf("Overdue[0] = %q, want %q", got, want)
	}
	if got, want := len(in.ThisWeek), 1; got != want {
		t.Fatalf("ThisWeek: got %d, want %d", got, want)
	}
	if got, want := in.ThisWeek[0].ObligationID, "ob-crm"; got != want {
		t.Errorf("ThisWeek[0] = %q, want %q", got, want)
	}
	if got, want := len(in.ThisMonth), 1; got != want {
		t.Fatalf("ThisMonth: got %d, want %d", got, want)
	}
	if got, want := in.ThisMonth[0].ObligationID, "ob-ads"; got != want {
		t.Errorf("ThisMonth[0] = %q, want %q", got, want)
	}

	if got, want := in.Summary.Overdue, (BucketSummary{Count: 1, Amount: M(1000, "USD")}); got.Count != want.Count || !got.Amount.Equal(want.Amount) {
		t.Errorf("Summary.Overdue = %+v, want %+v", got, want)
	}
	if got, want := in.Summary.ThisWeek.Amount, M(99, "USD"); !got.Equal(want) {
		t.Errorf("Summary.ThisWeek.Amount = %v, want %v", got, want)
	}
}

func TestBuildInboxDueTodayIsNotOverdue(t *testing.T) {
	now := NewDate(2024, time.January, 10)
	l := testLedger(t, []Obligation{
		{ID: "ob-1", Title: "Cleaning", Amount: M(80, "USD"), Type: Expense,
			Frequency: FreqMonthly, NextDue: now},
	}, nil)

	in := BuildInbox(l, now)
	if len(in.Overdue) != 0 {
		t.Errorf("an occurrence due today must not be overdue")
	}
	if got, want := len(in.ThisWeek), 1; got != want {
		t.Errorf("ThisWeek: got %d, want %d", got, want)
	}
}

func TestBuildInboxSnoozedObligationIsHidden(t *testing.T) {
	now := NewDate(2024, time.January, 10)
	l := testLedger(t, []Obligation{
		{ID: "ob-1", Title: "Office rent", Amount: M(1000, "USD"), Type: Expense,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 5),
			Snoozed: NewDate(2024, time.January, 20)},
	}, nil)

	if in := BuildInbox(l, now); len(in.Overdue) != 0 {
		t.Errorf("snoozed obligation leaked into the inbox")
	}

	// past the snooze date it reappears
	if in := BuildInbox(l, NewDate(2024, time.January, 20)); len(in.Overdue) != 1 {
		t.Errorf("obligation should reappear once the snooze elapses")
	}
}

func TestBuildInboxIsIdempotent(t *testing.T) {
	now := NewDate(2024, time.January, 10)
	l := testLedger(t, []Obligation{
		{ID: "ob-rent", Title: "Office rent", Amount: M(1000, "USD"), Type: Expense,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 5)},
	}, nil)

	a := BuildInbox(l, now)
	b := BuildInbox(l, now)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("BuildInbox is not idempotent:\n%+v\n%+v", a, b)
	}
}
