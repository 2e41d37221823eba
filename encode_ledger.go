package tracker

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// recordKind discriminates the JSONL lines of a book-of-record file.
type recordKind string

const (
	recordLedger      recordKind = "ledger" // optional header line declaring the currency
	recordObligation  recordKind = "obligation"
	recordTransaction recordKind = "transaction"
)

// DecodeLedger decodes a book-of-record from a stream of JSONL data.
// Malformed records coerce to safe defaults; unknown record kinds are skipped
// with a warning. The stream never produces an error for bad field values,
// only for lines that are not JSON objects at all.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var identifier struct {
			Record recordKind `json:"record"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify record in line %q: %w", string(line), err)
		}

		switch identifier.Record {
		case recordLedger:
			var header struct {
				Currency string `json:"currency"`
			}
			if err := json.Unmarshal(line, &header); err != nil {
				return nil, err
			}
			ledger.currency = header.Currency
		case recordObligation:
			var o Obligation
			if err := json.Unmarshal(line, &o); err != nil {
				return nil, err
			}
			if o.ID == "" {
				o.ID = newID("ob")
			}
			ledger.byID[o.ID] = len(ledger.obligations)
			ledger.obligations = append(ledger.obligations, o)
		case recordTransaction:
			var t Transaction
			if err := json.Unmarshal(line, &t); err != nil {
				return nil, err
			}
			ledger.transactions = append(ledger.transactions, t)
		default:
			log.Printf("warning: skipping unknown record kind %q", identifier.Record)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger stream: %w", err)
	}

	// records without an explicit currency inherit the book's; a record
	// carrying a foreign currency is coerced to it with a warning so that
	// every later merge stays within a single currency
	bookCur := ledger.Currency()
	rebase := func(m Money, kind, id string) Money {
		if c := m.Currency(); c != "" && c != bookCur {
			log.Printf("warning: %s %q carries currency %q, coercing to the book's %q", kind, id, c, bookCur)
		}
		return Money{value: m.value, cur: bookCur}
	}
	for i := range ledger.obligations {
		o := &ledger.obligations[i]
		o.Amount = rebase(o.Amount, "obligation", o.ID)
	}
	for i := range ledger.transactions {
		t := &ledger.transactions[i]
		t.Amount = rebase(t.Amount, "transaction", t.ID)
	}

	// restore the chronological invariant regardless of file order
	ledger.sortTransactions()
	ledger.reindex()
	return ledger, nil
}

// EncodeLedger writes the ledger in canonical JSONL form: the currency
// header, then obligations, then transactions in chronological order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	enc := json.NewEncoder(w)
	if l.currency != "" {
		var h jsonObjectWriter
		h.Append("record", recordLedger)
		h.Append("currency", l.currency)
		if err := enc.Encode(&h); err != nil {
			return fmt.Errorf("encoding ledger header: %w", err)
		}
	}
	for i := range l.obligations {
		if err := enc.Encode(l.obligations[i]); err != nil {
			return fmt.Errorf("encoding obligation %q: %w", l.obligations[i].ID, err)
		}
	}
	for i := range l.transactions {
		if err := enc.Encode(l.transactions[i]); err != nil {
			return fmt.Errorf("encoding transaction %q: %w", l.transactions[i].ID, err)
		}
	}
	return nil
}
