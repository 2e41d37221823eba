package tracker

import (
	"fmt"
	"testing"
	"time"
)

func TestDetectMissedIncome(t *testing.T) {
	now := NewDate(2024, time.January, 15)
	l := testLedger(t, []Obligation{
		{ID: "ob-comm", Title: "Expected commission", Amount: M(5000, "USD"), Type: Income,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 1)},
	}, nil)

	alerts := GenerateAlerts(l, nil, now)
	if got, want := len(alerts), 1; got != want {
		t.Fatalf("got %d alerts, want %d: %+v", got, want, alerts)
	}
	a := alerts[0]
	if got, want := a.Type, AlertMissedIncome; got != want {
		t.Errorf("Type = %v, want %v", got, want)
	}
	if got, want := a.Severity, SeverityWarning; got != want {
		t.Errorf("Severity = %v, want %v", got, want)
	}
	if got, want := a.DueDate, NewDate(2024, time.January, 1); got != want {
		t.Errorf("DueDate = %v, want %v", got, want)
	}

	// once a matching transaction lands in the cycle window, the alert is gone
	l.AddTransaction(Transaction{ID: "tx-1", Type: Income, Amount: M(5000, "USD"),
		Date: NewDate(2024, time.January, 3), RecurringID: "ob-comm"})
	if alerts := GenerateAlerts(l, nil, now); len(alerts) != 0 {
		t.Errorf("settled income still alerting: %+v", alerts)
	}
}

func TestDetectSpendingAnomaly(t *testing.T) {
	now := NewDate(2024, time.January, 31)
	var txs []Transaction
	// 500 per day over the trailing 30 days
	for i := 1; i <= 30; i++ {
		txs = append(txs, Transaction{ID: fmt.Sprintf("t%d", i), Type: Expense,
			Amount: M(500, "USD"), Date: now.Add(-i)})
	}
	// enough income to keep the 30-day projection positive
	txs = append(txs, Transaction{ID: "in", Type: Income, Amount: M(50000, "USD"),
		Date: now.Add(-10)})
	// today: 3000, six times the daily average
	txs = append(txs, Transaction{ID: "today", Type: Expense, Amount: M(3000, "USD"), Date: now})

	l := testLedger(t, nil, txs)
	alerts := GenerateAlerts(l, nil, now)
	if got, want := len(alerts), 1; got != want {
		t.Fatalf("got %d alerts, want %d: %+v", got, want, alerts)
	}
	a := alerts[0]
	if got, want := a.Type, AlertSpendingAnomaly; got != want {
		t.Errorf("Type = %v, want %v", got, want)
	}
	if got, want := a.Severity, SeverityWarning; got != want {
		t.Errorf("Severity = %v, want %v", got, want)
	}
	if got, want := a.Amount, M(3000, "USD"); !got.Equal(want) {
		t.Errorf("Amount = %v, want %v", got, want)
	}
}

func TestDetectCashflowCrisis(t *testing.T) {
	now := NewDate(2024, time.January, 15)
	l := testLedger(t, []Obligation{
		{ID: "ob-rent", Title: "Office rent", Amount: M(3000, "USD"), Type: Expense,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.February, 1)},
	}, []Transaction{
		{ID: "t1", Type: Income, Amount: M(1000, "USD"), Date: NewDate(2024, time.January, 2)},
	})

	alerts := detectCashflowCrisis(l, now)
	if got, want := len(alerts), 1; got != want {
		t.Fatalf("got %d alerts, want %d", got, want)
	}
	a := alerts[0]
	if got, want := a.Severity, SeverityCritical; got != want {
		t.Errorf("Severity = %v, want %v", got, want)
	}
	// net 1000 minus the 3000 rent due within 30 days
	if got, want := a.Amount, M(2000, "USD"); !got.Equal(want) {
		t.Errorf("shortfall = %v, want %v", got, want)
	}
}

func TestDetectDormantCommitment(t *testing.T) {
	now := NewDate(2024, time.June, 1)
	l := testLedger(t, []Obligation{
		{ID: "ob-crm", Title: "CRM subscription", Amount: M(99, "USD"), Type: Expense,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 10)},
		{ID: "ob-repair", Title: "Roof repair", Amount: M(2500, "USD"), Type: Expense,
			Frequency: FreqAdHoc, NextDue: NewDate(2023, time.June, 1)},
	}, []Transaction{
		{ID: "t1", Type: Expense, Amount: M(99, "USD"), Date: NewDate(2024, time.January, 12), RecurringID: "ob-crm"},
	})

	alerts := detectDormant(l, now)
	// crm: last activity 141 days ago, over two 30-day cycles -> dormant.
	// repair: adhoc has no cycle, never dormant.
	if got, want := len(alerts), 1; got != want {
		t.Fatalf("got %d alerts, want %d: %+v", got, want, alerts)
	}
	if got, want := alerts[0].ID, "dormant-ob-crm"; got != want {
		t.Errorf("ID = %q, want %q", got, want)
	}
}

func TestDetectHealthTrendDecline(t *testing.T) {
	at := time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)
	now := DateOf(at)

	// one old income transaction yields a stable, known score
	l := testLedger(t, nil, []Transaction{
		{ID: "t1", Type: Income, Amount: M(100, "USD"), Date: now.Add(-200)},
	})
	current := Score(l, now)

	state := NewEngineState()
	state.SetBaseline("test", current+15, now.Add(-6))

	alerts := detectHealthTrend(l, state, now)
	if got, want := len(alerts), 1; got != want {
		t.Fatalf("got %d alerts, want %d", got, want)
	}
	a := alerts[0]
	if got, want := a.Type, AlertHealthTrend; got != want {
		t.Errorf("Type = %v, want %v", got, want)
	}
	if got, want := a.Severity, SeverityWarning; got != want {
		t.Errorf("decline Severity = %v, want %v", got, want)
	}

	// the baseline is rewritten to the current score as a side effect
	b, ok := state.Baseline("test")
	if !ok {
		t.Fatalf("baseline vanished")
	}
	if got, want := b.Score, current; got != want {
		t.Errorf("baseline rewritten to %d, want %d", got, want)
	}
	if got, want := b.At, now.Epoch(); got != want {
		t.Errorf("baseline at %d, want %d", got, want)
	}
}

func TestDetectHealthTrendImprovement(t *testing.T) {
	at := time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)
	now := DateOf(at)
	l := testLedger(t, nil, []Transaction{
		{ID: "t1", Type: Income, Amount: M(100, "USD"), Date: now.Add(-200)},
	})
	current := Score(l, now)

	state := NewEngineState()
	state.SetBaseline("test", current-12, now.Add(-10))

	alerts := detectHealthTrend(l, state, now)
	if got, want := len(alerts), 1; got != want {
		t.Fatalf("got %d alerts, want %d", got, want)
	}
	if got, want := alerts[0].Severity, SeverityInfo; got != want {
		t.Errorf("improvement Severity = %v, want %v", got, want)
	}
}

func TestDetectHealthTrendYoungBaselineIsQuiet(t *testing.T) {
	at := time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)
	now := DateOf(at)
	l := testLedger(t, nil, []Transaction{
		{ID: "t1", Type: Income, Amount: M(100, "USD"), Date: now.Add(-200)},
	})
	current := Score(l, now)

	state := NewEngineState()
	state.SetBaseline("test", current+30, now.Add(-2))

	if alerts := detectHealthTrend(l, state, now); len(alerts) != 0 {
		t.Errorf("a 2-day-old baseline must not alert yet: %+v", alerts)
	}
	// but the baseline is still rewritten
	if b, _ := state.Baseline("test"); b.Score != current {
		t.Errorf("baseline not rewritten: %+v", b)
	}
}

func TestGenerateAlertsOrderAndCap(t *testing.T) {
	now := NewDate(2024, time.January, 15)
	var obs []Obligation
	for i := 0; i < 12; i++ {
		obs = append(obs, Obligation{
			ID: fmt.Sprintf("ob-%02d", i), Title: fmt.Sprintf("Commission %d", i),
			Amount: M(5000, "USD"), Type: Income,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 1).Add(i),
		})
	}
	l := testLedger(t, obs, nil)

	alerts := GenerateAlerts(l, NewEngineState(), now)
	if got := len(alerts); got > maxAlerts {
		t.Fatalf("got %d alerts, cap is %d", got, maxAlerts)
	}
	for i := 1; i < len(alerts); i++ {
		prev, cur := alerts[i-1], alerts[i]
		if cur.Severity < prev.Severity {
			t.Fatalf("alerts out of severity order at %d: %+v", i, alerts)
		}
		if cur.Severity == prev.Severity && cur.DueDate.Before(prev.DueDate) {
			t.Fatalf("alerts out of due-date order at %d: %+v", i, alerts)
		}
	}
}

func TestGenerateAlertsHonorsSuppression(t *testing.T) {
	now := NewDate(2024, time.January, 15)
	l := testLedger(t, []Obligation{
		{ID: "ob-comm", Title: "Expected commission", Amount: M(5000, "USD"), Type: Income,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 1)},
	}, nil)

	state := NewEngineState()
	alerts := GenerateAlerts(l, state, now)
	if len(alerts) != 1 {
		t.Fatalf("setup: got %d alerts, want 1", len(alerts))
	}

	state.Dismiss(alerts[0].ID, alerts[0].Type, 7)
	if got := GenerateAlerts(l, state, now); len(got) != 0 {
		t.Errorf("dismissed alert still produced: %+v", got)
	}
}

func TestAlertTypeOf(t *testing.T) {
	tests := []struct {
		id   string
		want AlertType
	}{
		{"cashflow-crisis", AlertCashflowCrisis},
		{"spending-anomaly-2024-01-15", AlertSpendingAnomaly},
		{"missed-income-ob-1-2024-01-01", AlertMissedIncome},
		{"dormant-ob-2", AlertDormant},
		{"health-trend", AlertHealthTrend},
	}
	for _, tt := range tests {
		if got := AlertTypeOf(tt.id); got != tt.want {
			t.Errorf("AlertTypeOf(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
