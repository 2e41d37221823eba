package tracker

import (
	"encoding/json"
	"strings"
)

// TxType separates money coming in from money going out.
type TxType string

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

func normalizeTxType(s string) TxType {
	if TxType(strings.ToLower(strings.TrimSpace(s))) == Income {
		return Income
	}
	return Expense
}

// Transaction is one settled movement of money in a ledger. Transactions are
// read-only to the engine: reconciliation derives "paid this cycle" from them
// without ever mutating the obligation's stored due date.
type Transaction struct {
	ID          string
	Type        TxType
	Category    Category
	Amount      Money
	Date        Date
	RecurringID string // link back to the obligation this settles, if any
	Notes       string

	Extra map[string]json.RawMessage
}

// Signed returns the amount with income positive and expense negative.
func (t *Transaction) Signed() Money {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

var transactionKeys = map[string]bool{
	"record": true, "id": true, "type": true, "category": true, "amount": true,
	"currency": true, "date": true, "meta": true, "notes": true,
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("record", recordTransaction)
	w.Append("id", t.ID)
	w.Append("type", t.Type)
	w.Optional("category", t.Category)
	w.EmbedFrom(t.Amount)
	w.Append("date", t.Date)
	if t.RecurringID != "" {
		var meta jsonObjectWriter
		meta.Append("recurringId", t.RecurringID)
		w.Append("meta", &meta)
	}
	w.Optional("notes", t.Notes)
	appendExtra(&w, t.Extra)
	return w.MarshalJSON()
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*t = Transaction{
		ID:       coerceString(fields["id"]),
		Type:     normalizeTxType(coerceString(fields["type"])),
		Category: Category(coerceString(fields["category"])),
		Amount:   M(coerceAmount(fields["amount"]), coerceString(fields["currency"])),
		Date:     coerceDate(fields["date"]),
		Notes:    coerceString(fields["notes"]),
	}
	if raw, ok := fields["meta"]; ok {
		var meta struct {
			RecurringID string `json:"recurringId"`
		}
		json.Unmarshal(raw, &meta)
		t.RecurringID = meta.RecurringID
	}
	for key, raw := range fields {
		if transactionKeys[key] {
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]json.RawMessage)
		}
		t.Extra[key] = raw
	}
	return nil
}
