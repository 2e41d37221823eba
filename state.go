package tracker

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

// HealthBaseline is the last health score recorded for a ledger, consulted
// only by the health-trend detector.
type HealthBaseline struct {
	Score int   `json:"score"`
	At    int64 `json:"atEpochMs"`
}

// EngineState is the only persisted, mutable resource of the engine: the
// alert dismiss/snooze maps and the per-ledger health baselines. Everything
// else is recomputed on demand.
//
// EngineState is not safe for concurrent use; callers hosting the engine
// behind concurrent requests need a per-ledger lock around the
// read-modify-write of this state.
type EngineState struct {
	Dismissed           map[string]int64          `json:"dismissed"`           // alert id -> expiry epoch ms
	Snoozed             map[string]int64          `json:"snoozed"`             // alert id -> show-after epoch ms
	DismissedTypeCounts map[string]int            `json:"dismissedTypeCounts"` // alert type -> running count
	Baselines           map[string]HealthBaseline `json:"baselines"`           // ledger name -> baseline

	now func() time.Time // injectable clock
}

// NewEngineState returns an empty state.
func NewEngineState() *EngineState {
	return &EngineState{
		Dismissed:           make(map[string]int64),
		Snoozed:             make(map[string]int64),
		DismissedTypeCounts: make(map[string]int),
		Baselines:           make(map[string]HealthBaseline),
		now:                 time.Now,
	}
}

// LoadEngineState reads the state file. A missing, unreadable or corrupt file
// degrades to an empty state with a logged warning; computation proceeds
// without history rather than erroring.
func LoadEngineState(path string) *EngineState {
	s := NewEngineState()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: cannot read state file %q, starting empty: %v", path, err)
		}
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		log.Printf("warning: corrupt state file %q, starting empty: %v", path, err)
		return NewEngineState()
	}
	// maps may decode as nil from a partial file
	if s.Dismissed == nil {
		s.Dismissed = make(map[string]int64)
	}
	if s.Snoozed == nil {
		s.Snoozed = make(map[string]int64)
	}
	if s.DismissedTypeCounts == nil {
		s.DismissedTypeCounts = make(map[string]int)
	}
	if s.Baselines == nil {
		s.Baselines = make(map[string]HealthBaseline)
	}
	return s
}

// Save writes the state file, cleaning expired entries first.
func (s *EngineState) Save(path string) error {
	s.Cleanup()
	data, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing state file %q: %w", path, err)
	}
	return nil
}

// Dismiss hides an alert id for ttlDays (7 when zero or negative) and bumps
// the per-type dismissal counter.
func (s *EngineState) Dismiss(alertID string, alertType AlertType, ttlDays int) {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	s.Dismissed[alertID] = s.now().Add(time.Duration(ttlDays) * 24 * time.Hour).UnixMilli()
	s.DismissedTypeCounts[string(alertType)]++
}

// Snooze hides an alert id for the given number of hours (24 when zero or
// negative).
func (s *EngineState) Snooze(alertID string, hours int) {
	if hours <= 0 {
		hours = 24
	}
	s.Snoozed[alertID] = s.now().Add(time.Duration(hours) * time.Hour).UnixMilli()
}

// IsHidden reports whether the alert id is currently dismissed or snoozed.
// Expired entries are lazily removed on read, so suppression entries never
// outlive their TTL.
func (s *EngineState) IsHidden(alertID string) bool {
	nowMs := s.now().UnixMilli()
	if expiry, ok := s.Dismissed[alertID]; ok {
		if nowMs < expiry {
			return true
		}
		delete(s.Dismissed, alertID)
	}
	if showAfter, ok := s.Snoozed[alertID]; ok {
		if nowMs < showAfter {
			return true
		}
		delete(s.Snoozed, alertID)
	}
	return false
}

// Cleanup removes every entry past its expiry.
func (s *EngineState) Cleanup() {
	nowMs := s.now().UnixMilli()
	for id, expiry := range s.Dismissed {
		if nowMs >= expiry {
			delete(s.Dismissed, id)
		}
	}
	for id, showAfter := range s.Snoozed {
		if nowMs >= showAfter {
			delete(s.Snoozed, id)
		}
	}
}

// SuppressionStats summarizes the suppression activity.
type SuppressionStats struct {
	TotalDismissed    int
	TotalSnoozed      int
	MostDismissedType AlertType
}

// Stats derives the suppression summary from the live maps and the running
// per-type counter.
func (s *EngineState) Stats() SuppressionStats {
	s.Cleanup()
	stats := SuppressionStats{
		TotalDismissed: len(s.Dismissed),
		TotalSnoozed:   len(s.Snoozed),
	}
	best := 0
	for typ, count := range s.DismissedTypeCounts {
		if count > best || (count == best && string(stats.MostDismissedType) > typ) {
			best = count
			stats.MostDismissedType = AlertType(typ)
		}
	}
	return stats
}

// Baseline returns the recorded health baseline for a ledger.
func (s *EngineState) Baseline(ledger string) (HealthBaseline, bool) {
	b, ok := s.Baselines[ledger]
	return b, ok
}

// SetBaseline records the current health score for a ledger, stamped with
// the report date it was computed for.
func (s *EngineState) SetBaseline(ledger string, score int, at Date) {
	s.Baselines[ledger] = HealthBaseline{Score: score, At: at.Epoch()}
}
