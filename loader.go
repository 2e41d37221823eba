package tracker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// A ledger name is its relative path from the books directory, without the
// .jsonl extension. The loader functions below discover and load those files.

// FindLedger returns the unique ledger matching the query.
// An empty query with no books at all returns a fresh default ledger.
func FindLedger(booksDir, query string) (*Ledger, error) {
	paths, err := findLedgerPaths(booksDir, query)
	if err != nil {
		return nil, err
	}
	switch len(paths) {
	case 0:
		if query == "" {
			l := NewLedger()
			l.name = "books"
			return l, nil
		}
		return nil, fmt.Errorf("could not find ledger %q", query)
	case 1:
		return loadLedgerFile(booksDir, paths[0])
	default:
		return nil, fmt.Errorf("multiple ledgers found for %q", query)
	}
}

// FindLedgers discovers and loads ledger files from the books directory.
// An empty query loads all of them.
func FindLedgers(booksDir, query string) ([]*Ledger, error) {
	paths, err := findLedgerPaths(booksDir, query)
	if err != nil {
		return nil, err
	}
	var ledgers []*Ledger
	for _, fullPath := range paths {
		ledger, err := loadLedgerFile(booksDir, fullPath)
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, ledger)
	}
	return ledgers, nil
}

func loadLedgerFile(booksDir, fullPath string) (*Ledger, error) {
	relPath, err := filepath.Rel(booksDir, fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not determine relative path for %q: %w", fullPath, err)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", fullPath, err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", fullPath, err)
	}
	ledger.name = strings.TrimSuffix(relPath, ".jsonl")
	return ledger, nil
}

// SaveLedger writes the ledger back to its file in canonical form.
func SaveLedger(booksDir string, ledger *Ledger) error {
	if ledger.Name() == "" {
		return fmt.Errorf("cannot save ledger with an empty name")
	}

	filePath := filepath.Join(booksDir, ledger.Name()+".jsonl")
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", filePath, err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", filePath, err)
	}
	defer file.Close()

	return EncodeLedger(file, ledger)
}

func findLedgerPaths(booksDir, query string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(booksDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".jsonl") {
			return nil
		}
		rel, err := filepath.Rel(booksDir, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(rel, ".jsonl")
		if query == "" || name == query || filepath.Base(name) == query {
			paths = append(paths, p)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning books directory %q: %w", booksDir, err)
	}
	return paths, nil
}
