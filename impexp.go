package tracker

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/PaesslerAG/jsonpath"
)

// this file handles the import of the web app's backup format.
//
// The web application keeps its whole state in browser localStorage and
// exports it as a single JSON object: a "ledgers" array describing each book,
// and a "data" object whose keys are "recurring_<id>" and "transactions_<id>"
// per ledger. localStorage values are strings, so the per-ledger arrays may
// arrive either as JSON arrays or as JSON-encoded strings of arrays; both
// forms are accepted.

// ImportBackup reads a backup export and returns one ledger per book, keyed
// by its name. Malformed records coerce to safe defaults per the engine's
// bad-persisted-data policy; a record that is not an object at all is skipped
// with a warning.
func ImportBackup(r io.Reader) (map[string]*Ledger, error) {
	var root any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("cannot parse backup export: %w", err)
	}

	jbooks, err := jsonpath.Get(`$.ledgers[*]`, root)
	if err != nil {
		return nil, fmt.Errorf("backup export has no ledgers: %w", err)
	}
	books, ok := jbooks.([]any)
	if !ok {
		return nil, fmt.Errorf("backup export has an unexpected ledgers shape")
	}

	out := make(map[string]*Ledger, len(books))
	for _, jbook := range books {
		book, ok := jbook.(map[string]any)
		if !ok {
			log.Printf("warning: skipping malformed ledger entry %v", jbook)
			continue
		}
		id, _ := book["id"].(string)
		name, _ := book["name"].(string)
		if name == "" {
			name = id
		}
		if id == "" {
			log.Printf("warning: skipping ledger with no id")
			continue
		}

		ledger := NewLedger()
		ledger.name = name
		ledger.currency, _ = book["currency"].(string)

		for _, raw := range importArray(root, "recurring_"+id) {
			var o Obligation
			if err := json.Unmarshal(raw, &o); err != nil {
				log.Printf("warning: skipping malformed obligation in %q: %v", name, err)
				continue
			}
			if err := ledger.AddObligation(o); err != nil {
				log.Printf("warning: skipping obligation in %q: %v", name, err)
			}
		}
		for _, raw := range importArray(root, "transactions_"+id) {
			var t Transaction
			if err := json.Unmarshal(raw, &t); err != nil {
				log.Printf("warning: skipping malformed transaction in %q: %v", name, err)
				continue
			}
			ledger.AddTransaction(t)
		}
		out[name] = ledger
	}
	return out, nil
}

// importArray extracts one per-ledger array from the export's data object,
// unwrapping the localStorage string encoding when present.
func importArray(root any, key string) []json.RawMessage {
	jval, err := jsonpath.Get(fmt.Sprintf(`$.data[%q]`, key), root)
	if err != nil {
		return nil // absent keys are fine, the book may simply be empty
	}
	// because jsonpath is never clear about whether it returns a list of one
	// answer or a single answer, keep the first one if it is a wrapper
	if s, ok := jval.(string); ok {
		var unwrapped any
		if err := json.Unmarshal([]byte(s), &unwrapped); err != nil {
			log.Printf("warning: data key %q is not valid JSON: %v", key, err)
			return nil
		}
		jval = unwrapped
	}
	list, ok := jval.([]any)
	if !ok {
		log.Printf("warning: data key %q is not an array", key)
		return nil
	}

	out := make([]json.RawMessage, 0, len(list))
	for _, item := range list {
		raw, err := json.Marshal(item)
		if err != nil {
			continue
		}
		out = append(out, raw)
	}
	return out
}
