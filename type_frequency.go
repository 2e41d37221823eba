package tracker

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Frequency is the cycle at which a recurring obligation falls due.
type Frequency int

const (
	FreqMonthly Frequency = iota
	FreqQuarterly
	FreqYearly
	FreqWeekly
	FreqAdHoc
)

func (f Frequency) String() string {
	switch f {
	case FreqMonthly:
		return "monthly"
	case FreqQuarterly:
		return "quarterly"
	case FreqYearly:
		return "yearly"
	case FreqWeekly:
		return "weekly"
	case FreqAdHoc:
		return "adhoc"
	default:
		return "unknown"
	}
}

// ParseFrequency parses a frequency keyword. Unknown keywords coerce to
// monthly rather than failing, per the bad-persisted-data policy.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month":
		return FreqMonthly, nil
	case "quarterly", "quarter":
		return FreqQuarterly, nil
	case "yearly", "year", "annual":
		return FreqYearly, nil
	case "weekly", "week":
		return FreqWeekly, nil
	case "adhoc", "ad-hoc", "once":
		return FreqAdHoc, nil
	default:
		return FreqMonthly, fmt.Errorf("unknown frequency %q", s)
	}
}

// StepForward returns the next due date one cycle after d.
// Calendar frequencies preserve the day of month where the target month
// supports it and clamp to the last day otherwise. FreqAdHoc does not step.
func (f Frequency) StepForward(d Date) Date {
	switch f {
	case FreqMonthly:
		return d.AddMonths(1)
	case FreqQuarterly:
		return d.AddMonths(3)
	case FreqYearly:
		return d.AddMonths(12)
	case FreqWeekly:
		return d.Add(7)
	default:
		return d
	}
}

// StepBackward returns the due date one cycle before d.
func (f Frequency) StepBackward(d Date) Date {
	switch f {
	case FreqMonthly:
		return d.AddMonths(-1)
	case FreqQuarterly:
		return d.AddMonths(-3)
	case FreqYearly:
		return d.AddMonths(-12)
	case FreqWeekly:
		return d.Add(-7)
	default:
		return d
	}
}

// CycleDays returns the nominal length of one cycle in days, 0 for adhoc.
func (f Frequency) CycleDays() int {
	switch f {
	case FreqMonthly:
		return 30
	case FreqQuarterly:
		return 91
	case FreqYearly:
		return 365
	case FreqWeekly:
		return 7
	default:
		return 0
	}
}

// weeksPerMonth is the average number of weeks in a month (365.25/12/7).
const weeksPerMonth = 4.345

// MonthlyRate normalizes an amount per cycle into a monthly-equivalent
// run-rate. FreqAdHoc obligations have no run-rate and yield zero.
func (f Frequency) MonthlyRate(amount Money) Money {
	switch f {
	case FreqMonthly:
		return amount
	case FreqQuarterly:
		return amount.DivInt(3)
	case FreqYearly:
		return amount.DivInt(12)
	case FreqWeekly:
		return amount.MulFloat(weeksPerMonth)
	default:
		return amount.Zero()
	}
}

func (f Frequency) MarshalJSON() ([]byte, error) { return json.Marshal(f.String()) }

func (f *Frequency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseFrequency(s)
	*f = parsed
	_ = err // coerced to monthly
	return nil
}
