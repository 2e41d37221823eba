package tracker

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	today := Today()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		// ISO format, lenient on digits
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},

		// Relative offsets from today
		{"0d", today, false},
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"-2w", today.Add(-14), false},
		{"+1m", today.AddMonths(1), false},
		{"-1m", today.AddMonths(-1), false},
		{"+1y", NewDate(today.Year()+1, today.Month(), today.Day()), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAddMonthsClamps(t *testing.T) {
	tests := []struct {
		from   Date
		months int
		want   Date
	}{
		{NewDate(2024, time.January, 31), 1, NewDate(2024, time.February, 29)}, // leap year
		{NewDate(2023, time.January, 31), 1, NewDate(2023, time.February, 28)},
		{NewDate(2024, time.January, 31), 2, NewDate(2024, time.March, 31)},
		{NewDate(2024, time.March, 31), -1, NewDate(2024, time.February, 29)},
		{NewDate(2024, time.November, 30), 1, NewDate(2024, time.December, 30)},
		{NewDate(2024, time.December, 15), 1, NewDate(2025, time.January, 15)},
		{NewDate(2024, time.January, 15), 12, NewDate(2025, time.January, 15)},
	}
	for _, tt := range tests {
		if got := tt.from.AddMonths(tt.months); got != tt.want {
			t.Errorf("%v.AddMonths(%d) = %v, want %v", tt.from, tt.months, got, tt.want)
		}
	}
}

func TestWeeksStartOnSunday(t *testing.T) {
	// 2024-01-10 is a Wednesday
	d := NewDate(2024, time.January, 10)
	if got, want := d.StartOf(Weekly), NewDate(2024, time.January, 7); got != want {
		t.Errorf("StartOf(Weekly) = %v, want %v (a Sunday)", got, want)
	}
	if got, want := d.EndOf(Weekly), NewDate(2024, time.January, 13); got != want {
		t.Errorf("EndOf(Weekly) = %v, want %v (a Saturday)", got, want)
	}

	// a Sunday is its own week start
	sunday := NewDate(2024, time.January, 7)
	if got := sunday.StartOf(Weekly); got != sunday {
		t.Errorf("StartOf(Weekly) on a Sunday = %v, want %v", got, sunday)
	}
}

func TestStartEndOfPeriods(t *testing.T) {
	d := NewDate(2024, time.May, 17)
	tests := []struct {
		period     Period
		start, end Date
	}{
		{Daily, d, d},
		{Monthly, NewDate(2024, time.May, 1), NewDate(2024, time.May, 31)},
		{Quarterly, NewDate(2024, time.April, 1), NewDate(2024, time.June, 30)},
		{Yearly, NewDate(2024, time.January, 1), NewDate(2024, time.December, 31)},
	}
	for _, tt := range tests {
		if got := d.StartOf(tt.period); got != tt.start {
			t.Errorf("StartOf(%v) = %v, want %v", tt.period, got, tt.start)
		}
		if got := d.EndOf(tt.period); got != tt.end {
			t.Errorf("EndOf(%v) = %v, want %v", tt.period, got, tt.end)
		}
	}
}

func TestDateSub(t *testing.T) {
	a := NewDate(2024, time.January, 10)
	b := NewDate(2024, time.January, 5)
	if got, want := a.Sub(b), 5; got != want {
		t.Errorf("Sub = %d, want %d", got, want)
	}
	if got, want := b.Sub(a), -5; got != want {
		t.Errorf("Sub = %d, want %d", got, want)
	}
}
