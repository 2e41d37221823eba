package tracker

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// RiskLevel qualifies how damaging a missed obligation is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// normalizeRisk coerces any persisted value to a valid risk level.
func normalizeRisk(s string) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskHigh:
		return RiskHigh
	default:
		return RiskMedium
	}
}

// PayState is the user-set resolution of the current occurrence.
type PayState string

const (
	PayUnset   PayState = ""
	PayPaid    PayState = "paid"
	PaySkipped PayState = "skipped"
)

// Category is a free-form spending category. Forecasting folds categories
// into five fixed buckets, anything unrecognized lands in "other".
type Category string

const (
	CatSystem      Category = "system"
	CatOperational Category = "operational"
	CatMaintenance Category = "maintenance"
	CatMarketing   Category = "marketing"
	CatOther       Category = "other"
)

// Bucket maps the category to its forecast bucket.
func (c Category) Bucket() Category {
	switch Category(strings.ToLower(strings.TrimSpace(string(c)))) {
	case CatSystem:
		return CatSystem
	case CatOperational:
		return CatOperational
	case CatMaintenance:
		return CatMaintenance
	case CatMarketing:
		return CatMarketing
	default:
		return CatOther
	}
}

// ForecastBuckets lists the fixed forecast buckets in display order.
var ForecastBuckets = []Category{CatSystem, CatOperational, CatMaintenance, CatMarketing, CatOther}

// HistoryEntry is one append-only event on an obligation (payment recorded,
// occurrence skipped, snooze set).
type HistoryEntry struct {
	At     Date   `json:"at"`
	Type   string `json:"type"`
	Amount Money  `json:"-"`
	TxID   string `json:"txId,omitempty"`
}

func (h HistoryEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("at", h.At)
	w.Append("type", h.Type)
	if !h.Amount.IsZero() {
		w.EmbedFrom(h.Amount)
	}
	w.Optional("txId", h.TxID)
	return w.MarshalJSON()
}

func (h *HistoryEntry) UnmarshalJSON(data []byte) error {
	var temp struct {
		At       Date            `json:"at"`
		Type     string          `json:"type"`
		Amount   json.RawMessage `json:"amount"`
		Currency string          `json:"currency"`
		TxID     string          `json:"txId"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*h = HistoryEntry{At: temp.At, Type: temp.Type, TxID: temp.TxID,
		Amount: M(coerceAmount(temp.Amount), temp.Currency)}
	return nil
}

// Obligation is a recurring expected income or expense with a frequency and
// an anchor due date. The engine never advances NextDue itself: whether the
// current cycle is settled is always derived from transaction history.
//
// An obligation with a zero amount is "unpriced" and is excluded from due
// generation, alerts and forecasting. This is deliberate product behavior:
// zero-amount placeholders are invisible to every downstream signal.
type Obligation struct {
	ID        string
	Title     string
	Amount    Money
	Type      TxType // income or expense expectation
	Frequency Frequency
	NextDue   Date
	Category  Category
	Risk      RiskLevel
	Required  bool
	Notes     string
	History   []HistoryEntry
	PayState  PayState
	Snoozed   Date // hide from the inbox until this date

	// Extra preserves unrecognized fields from the data file so that a
	// decode/encode round trip never loses forward-compatible data.
	Extra map[string]json.RawMessage
}

// Priced reports whether the obligation takes part in downstream computation.
func (o *Obligation) Priced() bool { return o.Amount.IsPositive() }

// obligationKeys are the JSON fields the engine owns; everything else is Extra.
var obligationKeys = map[string]bool{
	"record": true, "id": true, "title": true, "amount": true, "currency": true,
	"type": true, "frequency": true, "nextDueDate": true, "category": true,
	"riskLevel": true, "required": true, "notes": true, "history": true,
	"payState": true, "snoozeUntil": true,
}

func (o Obligation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("record", recordObligation)
	w.Append("id", o.ID)
	w.Append("title", o.Title)
	w.EmbedFrom(o.Amount)
	w.Append("type", o.Type)
	w.Append("frequency", o.Frequency)
	if !o.NextDue.IsZero() {
		w.Append("nextDueDate", o.NextDue)
	}
	w.Optional("category", o.Category)
	w.Append("riskLevel", o.Risk)
	w.Optional("required", o.Required)
	w.Optional("notes", o.Notes)
	if len(o.History) > 0 {
		w.Append("history", o.History)
	}
	w.Optional("payState", o.PayState)
	if !o.Snoozed.IsZero() {
		w.Append("snoozeUntil", o.Snoozed)
	}
	appendExtra(&w, o.Extra)
	return w.MarshalJSON()
}

func (o *Obligation) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*o = Obligation{
		ID:       coerceString(fields["id"]),
		Title:    coerceString(fields["title"]),
		Amount:   M(coerceAmount(fields["amount"]), coerceString(fields["currency"])),
		Type:     normalizeTxType(coerceString(fields["type"])),
		NextDue:  coerceDate(fields["nextDueDate"]),
		Category: Category(coerceString(fields["category"])),
		Risk:     normalizeRisk(coerceString(fields["riskLevel"])),
		Notes:    coerceString(fields["notes"]),
		PayState: PayState(coerceString(fields["payState"])),
		Snoozed:  coerceDate(fields["snoozeUntil"]),
	}
	o.Frequency, _ = ParseFrequency(coerceString(fields["frequency"]))
	json.Unmarshal(fields["required"], &o.Required)
	json.Unmarshal(fields["history"], &o.History)
	for key, raw := range fields {
		if obligationKeys[key] {
			continue
		}
		if o.Extra == nil {
			o.Extra = make(map[string]json.RawMessage)
		}
		o.Extra[key] = raw
	}
	return nil
}

// appendExtra re-emits preserved unknown fields in a stable order.
func appendExtra(w *jsonObjectWriter, extra map[string]json.RawMessage) {
	if len(extra) == 0 {
		return
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.Append(k, extra[k])
	}
}

// coerceString reads a JSON string, tolerating absence.
func coerceString(raw json.RawMessage) string {
	var s string
	json.Unmarshal(raw, &s)
	return s
}

// coerceDate reads a JSON date, tolerating absence or malformed values,
// which coerce to the zero date.
func coerceDate(raw json.RawMessage) Date {
	var d Date
	d.UnmarshalJSON(raw)
	return d
}

// coerceAmount reads an amount that may be persisted as a JSON number or a
// numeric string. Malformed or negative values coerce to zero (unpriced).
func coerceAmount(raw json.RawMessage) decimal.Decimal {
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
		parsed, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
