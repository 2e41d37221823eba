package tracker

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

const sampleBook = `{"record":"ledger","currency":"USD"}
{"record":"obligation","id":"ob-rent","title":"Office rent","amount":1000,"type":"expense","frequency":"monthly","nextDueDate":"2024-01-05","riskLevel":"high","color":"#ff0000"}
{"record":"obligation","id":"ob-crm","title":"CRM subscription","amount":"99.90","type":"expense","frequency":"monthly","nextDueDate":"2024-01-12"}
{"record":"transaction","id":"tx-1","type":"expense","amount":1000,"date":"2024-01-06","meta":{"recurringId":"ob-rent"}}
{"record":"transaction","id":"tx-0","type":"income","amount":5000,"date":"2024-01-02"}
`

func TestDecodeLedger(t *testing.T) {
	l, err := DecodeLedger(strings.NewReader(sampleBook))
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}

	if got, want := l.Currency(), "USD"; got != want {
		t.Errorf("Currency = %q, want %q", got, want)
	}
	if got, want := len(l.Obligations()), 2; got != want {
		t.Fatalf("obligations: got %d, want %d", got, want)
	}

	rent := l.Obligation("ob-rent")
	if rent == nil {
		t.Fatalf("ob-rent not indexed")
	}
	if got, want := rent.Amount, M(1000, "USD"); !got.Equal(want) {
		t.Errorf("rent amount = %v, want %v", got, want)
	}
	if got, want := rent.Risk, RiskHigh; got != want {
		t.Errorf("rent risk = %v, want %v", got, want)
	}
	if _, ok := rent.Extra["color"]; !ok {
		t.Errorf("unknown field \"color\" was not preserved")
	}

	// string-encoded amounts coerce
	crm := l.Obligation("ob-crm")
	if got, want := crm.Amount, M(99.90, "USD"); !got.Equal(want) {
		t.Errorf("crm amount = %v, want %v", got, want)
	}

	// transactions come back chronological regardless of file order
	txs := l.Transactions()
	if got, want := len(txs), 2; got != want {
		t.Fatalf("transactions: got %d, want %d", got, want)
	}
	if txs[0].ID != "tx-0" || txs[1].ID != "tx-1" {
		t.Errorf("transactions not chronological: %q, %q", txs[0].ID, txs[1].ID)
	}
	if got, want := txs[1].RecurringID, "ob-rent"; got != want {
		t.Errorf("RecurringID = %q, want %q", got, want)
	}
}

func TestDecodeLedgerCoercesBadValues(t *testing.T) {
	book := `{"record":"obligation","id":"ob-1","title":"Broken","amount":-50,"type":"expens","frequency":"fortnightly","nextDueDate":"not-a-date","riskLevel":"severe"}
`
	l, err := DecodeLedger(strings.NewReader(book))
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	o := l.Obligation("ob-1")
	if o == nil {
		t.Fatalf("obligation dropped instead of coerced")
	}
	if !o.Amount.IsZero() {
		t.Errorf("negative amount = %v, want coerced to zero", o.Amount)
	}
	if got, want := o.Type, Expense; got != want {
		t.Errorf("Type = %v, want %v", got, want)
	}
	if got, want := o.Frequency, FreqMonthly; got != want {
		t.Errorf("Frequency = %v, want monthly coercion", got)
	}
	if !o.NextDue.IsZero() {
		t.Errorf("malformed date = %v, want zero", o.NextDue)
	}
	if got, want := o.Risk, RiskMedium; got != want {
		t.Errorf("Risk = %v, want %v", got, want)
	}
	if o.Priced() {
		t.Errorf("a coerced zero amount must be unpriced")
	}
}

func TestDecodeLedgerCoercesForeignCurrency(t *testing.T) {
	book := `{"record":"ledger","currency":"USD"}
{"record":"obligation","id":"ob-1","title":"Software","currency":"EUR","amount":99,"type":"expense","frequency":"monthly","nextDueDate":"2024-01-10"}
{"record":"transaction","id":"t1","type":"income","currency":"EUR","amount":500,"date":"2024-01-02"}
`
	l, err := DecodeLedger(strings.NewReader(book))
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	o := l.Obligation("ob-1")
	if got, want := o.Amount, M(99, "USD"); !got.Equal(want) {
		t.Errorf("obligation amount = %v, want coerced to %v", got, want)
	}
	if got, want := l.Transactions()[0].Amount, M(500, "USD"); !got.Equal(want) {
		t.Errorf("transaction amount = %v, want coerced to %v", got, want)
	}

	// the whole reporting surface must run on the coerced book
	if got, want := l.NetBalance(), M(500, "USD"); !got.Equal(want) {
		t.Errorf("NetBalance = %v, want %v", got, want)
	}
	now := NewDate(2024, time.January, 15)
	if s := Score(l, now); s < 0 || s > 100 {
		t.Errorf("Score = %d, want within [0,100]", s)
	}
	if alerts := GenerateAlerts(l, NewEngineState(), now); len(alerts) > maxAlerts {
		t.Errorf("got %d alerts, want at most %d", len(alerts), maxAlerts)
	}
}

func TestDecodeLedgerSkipsUnknownRecords(t *testing.T) {
	book := `{"record":"note","text":"hello"}
{"record":"obligation","id":"ob-1","title":"Rent","amount":1000,"type":"expense","frequency":"monthly"}
`
	l, err := DecodeLedger(strings.NewReader(book))
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	if got, want := len(l.Obligations()), 1; got != want {
		t.Errorf("obligations: got %d, want %d", got, want)
	}
}

func TestEncodeLedgerRoundtrip(t *testing.T) {
	l, err := DecodeLedger(strings.NewReader(sampleBook))
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger: %v", err)
	}
	encoded := buf.String()

	if !strings.Contains(encoded, `"record":"ledger"`) {
		t.Errorf("missing currency header:\n%s", encoded)
	}
	if !strings.Contains(encoded, `"color":"#ff0000"`) {
		t.Errorf("preserved extra field lost on encode:\n%s", encoded)
	}
	if !strings.Contains(encoded, `"meta":{"recurringId":"ob-rent"}`) {
		t.Errorf("recurring link lost on encode:\n%s", encoded)
	}

	// the canonical form is stable: decoding it again yields the same bytes
	l2, err := DecodeLedger(strings.NewReader(encoded))
	if err != nil {
		t.Fatalf("DecodeLedger(canonical): %v", err)
	}
	var buf2 bytes.Buffer
	if err := EncodeLedger(&buf2, l2); err != nil {
		t.Fatalf("EncodeLedger(canonical): %v", err)
	}
	if buf2.String() != encoded {
		t.Errorf("canonical form is not stable:\n%s\nvs\n%s", encoded, buf2.String())
	}
}

func TestObligationHistoryRoundtrip(t *testing.T) {
	l := testLedger(t, []Obligation{
		{ID: "ob-rent", Title: "Office rent", Amount: M(1000, "USD"), Type: Expense,
			Frequency: FreqMonthly, NextDue: NewDate(2024, time.January, 5)},
	}, nil)
	if _, err := l.RecordPayment("ob-rent", NewDate(2024, time.January, 6), Money{}); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger: %v", err)
	}
	l2, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}

	o := l2.Obligation("ob-rent")
	if got, want := o.PayState, PayPaid; got != want {
		t.Errorf("PayState = %v, want %v", got, want)
	}
	if len(o.History) != 1 || o.History[0].Type != "paid" {
		t.Fatalf("history lost: %+v", o.History)
	}
	if got, want := o.History[0].Amount, M(1000, "USD"); !got.Equal(want) {
		t.Errorf("history amount = %v, want %v", got, want)
	}
}
