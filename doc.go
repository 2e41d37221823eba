// Package tracker implements the recurring-obligation and financial-health
// engine behind a small real-estate office's book-of-record. It is designed to
// be local-first and auditable: every figure is recomputed on demand from the
// current snapshot of obligations and transactions, nothing is derived state
// persisted ahead of time.
//
// The core functionalities include:
//   - Ledger Management: named books of record holding recurring obligations
//     and the income/expense transactions that settle them, persisted as
//     human-readable JSONL files.
//   - Due Expansion: turning an obligation's frequency and anchor date into
//     the concrete occurrences that fall in a queried window, reconciled
//     against transaction history to decide what is already paid.
//   - Inbox: unresolved occurrences bucketed into overdue, this-week and
//     this-month with per-bucket sums.
//   - Health Scoring: a bounded 0-100 composite of payment discipline,
//     income/expense coverage, alert load and cash-flow stability.
//   - Forecasting: monthly run-rate normalization, scenario multipliers and a
//     six-month cumulative cash projection with gap detection.
//   - Alerts: five independent detectors filtered through a persisted
//     dismiss/snooze suppression state, capped and sorted for display.
//
// This package serves as the foundational logic for the `aft` command-line
// tool; the engine itself has no network or UI surface.
package tracker
