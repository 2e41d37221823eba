package tracker

import (
	"testing"
	"time"
)

func TestSaveAndFindLedger(t *testing.T) {
	dir := t.TempDir()

	l := testLedger(t, []Obligation{
		{ID: "ob-rent", Title: "Office rent", Amount: M(1000, "USD"), Type: Expense,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 5)},
	}, nil)
	l.name = "main-office"
	if err := SaveLedger(dir, l); err != nil {
		t.Fatalf("SaveLedger: %v", err)
	}

	got, err := FindLedger(dir, "main-office")
	if err != nil {
		t.Fatalf("FindLedger: %v", err)
	}
	if got.Name() != "main-office" || len(got.Obligations()) != 1 {
		t.Errorf("loaded %q with %d obligations", got.Name(), len(got.Obligations()))
	}

	if _, err := FindLedger(dir, "nope"); err == nil {
		t.Errorf("an unknown ledger name must fail")
	}
}

func TestFindLedgerFreshDefault(t *testing.T) {
	// no books at all: an empty query yields a fresh default ledger
	l, err := FindLedger(t.TempDir(), "")
	if err != nil {
		t.Fatalf("FindLedger: %v", err)
	}
	if got, want := l.Name(), "books"; got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}
}

func TestFindLedgers(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"main-office", "annex"} {
		l := NewLedger()
		l.name = name
		l.currency = "USD"
		if err := SaveLedger(dir, l); err != nil {
			t.Fatalf("SaveLedger(%q): %v", name, err)
		}
	}

	all, err := FindLedgers(dir, "")
	if err != nil {
		t.Fatalf("FindLedgers: %v", err)
	}
	if got, want := len(all), 2; got != want {
		t.Errorf("got %d ledgers, want %d", got, want)
	}

	one, err := FindLedgers(dir, "annex")
	if err != nil {
		t.Fatalf("FindLedgers: %v", err)
	}
	if len(one) != 1 || one[0].Name() != "annex" {
		t.Errorf("query by name returned %d ledgers", len(one))
	}
}

func TestFindLedgerAmbiguousQuery(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b"} {
		l := NewLedger()
		l.name = name
		if err := SaveLedger(dir, l); err != nil {
			t.Fatalf("SaveLedger(%q): %v", name, err)
		}
	}
	if _, err := FindLedger(dir, ""); err == nil {
		t.Errorf("an empty query over several books must fail")
	}
}
