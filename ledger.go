package tracker

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// DefaultCurrency is used when a ledger does not declare one.
const DefaultCurrency = "USD"

// Ledger is a named financial book-of-record scoping recurring obligations
// and the transactions that settle them.
//
// Transactions are kept in chronological order.
type Ledger struct {
	name         string
	currency     string
	obligations  []Obligation
	transactions []Transaction
	byID         map[string]int // index obligations by id
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{byID: make(map[string]int)}
}

// Name returns the ledger name (its relative path in the books directory).
func (l *Ledger) Name() string { return l.name }

// Currency returns the ledger's reporting currency.
func (l *Ledger) Currency() string {
	if l.currency == "" {
		return DefaultCurrency
	}
	return l.currency
}

// Zero returns the zero amount in the ledger currency.
func (l *Ledger) Zero() Money { return M(0, l.Currency()) }

// Obligations returns the obligations in the ledger, in insertion order.
func (l *Ledger) Obligations() []Obligation { return l.obligations }

// Obligation returns a pointer to the obligation with this id, or nil.
func (l *Ledger) Obligation(id string) *Obligation {
	i, ok := l.byID[id]
	if !ok {
		return nil
	}
	return &l.obligations[i]
}

// Transactions returns all transactions in chronological order.
func (l *Ledger) Transactions() []Transaction { return l.transactions }

// TransactionsIn returns the transactions dated within r, boundaries included.
func (l *Ledger) TransactionsIn(r Range) []Transaction {
	var out []Transaction
	for i := range l.transactions {
		if r.Contains(l.transactions[i].Date) {
			out = append(out, l.transactions[i])
		}
	}
	return out
}

// AddObligation validates and appends an obligation. A missing id is
// assigned, missing risk coerces to medium.
func (l *Ledger) AddObligation(o Obligation) error {
	if o.Title == "" {
		return fmt.Errorf("obligation title is missing")
	}
	if o.ID == "" {
		o.ID = newID("ob")
	}
	if _, dup := l.byID[o.ID]; dup {
		return fmt.Errorf("duplicate obligation id %q", o.ID)
	}
	if o.Risk == "" {
		o.Risk = RiskMedium
	}
	if o.Amount.Currency() == "" {
		o.Amount = M(0, l.Currency()).Add(o.Amount)
	}
	l.byID[o.ID] = len(l.obligations)
	l.obligations = append(l.obligations, o)
	return nil
}

// AddTransaction validates and appends a transaction, keeping the ledger in
// chronological order. A missing id is assigned, a missing date is today.
func (l *Ledger) AddTransaction(t Transaction) error {
	if t.ID == "" {
		t.ID = newID("tx")
	}
	if t.Date.IsZero() {
		t.Date = Today()
	}
	if t.Amount.Currency() == "" {
		t.Amount = M(0, l.Currency()).Add(t.Amount)
	}
	l.transactions = append(l.transactions, t)
	l.sortTransactions()
	return nil
}

func (l *Ledger) sortTransactions() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// RecordPayment settles the current occurrence of an obligation: it appends a
// transaction linked via the recurring id, and an append-only history entry
// on the obligation. The obligation's stored due date is left untouched;
// "paid this cycle" is derived by reconciliation, never stored.
func (l *Ledger) RecordPayment(obligationID string, on Date, amount Money) (*Transaction, error) {
	o := l.Obligation(obligationID)
	if o == nil {
		return nil, fmt.Errorf("unknown obligation %q", obligationID)
	}
	if amount.IsZero() {
		amount = o.Amount
	}
	if on.IsZero() {
		on = Today()
	}
	tx := Transaction{
		ID:          newID("tx"),
		Type:        o.Type,
		Category:    o.Category,
		Amount:      amount,
		Date:        on,
		RecurringID: o.ID,
		Notes:       o.Title,
	}
	if err := l.AddTransaction(tx); err != nil {
		return nil, err
	}
	o.History = append(o.History, HistoryEntry{At: on, Type: "paid", Amount: amount, TxID: tx.ID})
	o.PayState = PayPaid
	return &tx, nil
}

// SkipOccurrence marks the current occurrence as deliberately unpaid.
func (l *Ledger) SkipOccurrence(obligationID string, on Date) error {
	o := l.Obligation(obligationID)
	if o == nil {
		return fmt.Errorf("unknown obligation %q", obligationID)
	}
	if on.IsZero() {
		on = Today()
	}
	o.History = append(o.History, HistoryEntry{At: on, Type: "skipped"})
	o.PayState = PaySkipped
	return nil
}

// SnoozeObligation hides the obligation from the inbox until the given date.
func (l *Ledger) SnoozeObligation(obligationID string, until Date) error {
	o := l.Obligation(obligationID)
	if o == nil {
		return fmt.Errorf("unknown obligation %q", obligationID)
	}
	o.Snoozed = until
	o.History = append(o.History, HistoryEntry{At: Today(), Type: "snoozed"})
	return nil
}

// incomeIn and expenseIn sum settled transactions over a range.
func (l *Ledger) incomeIn(r Range) Money {
	sum := l.Zero()
	for i := range l.transactions {
		if l.transactions[i].Type == Income && r.Contains(l.transactions[i].Date) {
			sum = sum.Add(l.transactions[i].Amount)
		}
	}
	return sum
}

func (l *Ledger) expenseIn(r Range) Money {
	sum := l.Zero()
	for i := range l.transactions {
		if l.transactions[i].Type == Expense && r.Contains(l.transactions[i].Date) {
			sum = sum.Add(l.transactions[i].Amount)
		}
	}
	return sum
}

// NetBalance is the all-time net of settled transactions.
func (l *Ledger) NetBalance() Money {
	sum := l.Zero()
	for i := range l.transactions {
		sum = sum.Add(l.transactions[i].Signed())
	}
	return sum
}

// reindex rebuilds the obligation index after bulk decode.
func (l *Ledger) reindex() {
	l.byID = make(map[string]int, len(l.obligations))
	for i := range l.obligations {
		l.byID[l.obligations[i].ID] = i
	}
}

var idSeq int64

// newID returns a short unique record id. Uniqueness is only needed within
// one ledger file, a millisecond clock plus a sequence is plenty.
func newID(prefix string) string {
	idSeq++
	return prefix + "-" + strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatInt(idSeq, 36)
}
