package tracker

import (
	"testing"
	"time"
)

func TestStepForward(t *testing.T) {
	tests := []struct {
		freq Frequency
		from Date
		want Date
	}{
		{FreqMonthly, NewDate(2024, time.January, 15), NewDate(2024, time.February, 15)},
		{FreqMonthly, NewDate(2024, time.January, 31), NewDate(2024, time.February, 29)},
		{FreqQuarterly, NewDate(2024, time.January, 31), NewDate(2024, time.April, 30)},
		{FreqYearly, NewDate(2024, time.February, 29), NewDate(2025, time.February, 28)},
		{FreqWeekly, NewDate(2024, time.January, 5), NewDate(2024, time.January, 12)},
		{FreqAdHoc, NewDate(2024, time.January, 5), NewDate(2024, time.January, 5)},
	}
	for _, tt := range tests {
		if got := tt.freq.StepForward(tt.from); got != tt.want {
			t.Errorf("%v.StepForward(%v) = %v, want %v", tt.freq, tt.from, got, tt.want)
		}
	}
}

// Stepping back then forward returns to the anchor, except when the backward
// step was itself clamped (the clamp is not invertible: Mar 31 -1m is Feb 29,
// and Feb 29 +1m is Mar 29).
func TestStepRoundtrip(t *testing.T) {
	anchors := []Date{
		NewDate(2024, time.January, 15),
		NewDate(2024, time.June, 1),
		NewDate(2024, time.December, 30),
	}
	for _, freq := range []Frequency{FreqMonthly, FreqQuarterly, FreqYearly, FreqWeekly} {
		for _, anchor := range anchors {
			if got := freq.StepForward(freq.StepBackward(anchor)); got != anchor {
				t.Errorf("%v roundtrip from %v = %v", freq, anchor, got)
			}
		}
	}
}

func TestParseFrequencyCoercesToMonthly(t *testing.T) {
	got, err := ParseFrequency("fortnightly")
	if err == nil {
		t.Errorf("ParseFrequency should report the unknown keyword")
	}
	if got != FreqMonthly {
		t.Errorf("ParseFrequency coerced to %v, want monthly", got)
	}
}

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		freq Frequency
		want Money
	}{
		{FreqMonthly, M(1200, "USD")},
		{FreqQuarterly, M(400, "USD")},
		{FreqYearly, M(100, "USD")},
		{FreqWeekly, M(5214, "USD")}, // 1200 * 4.345 weeks per month
		{FreqAdHoc, M(0, "USD")},
	}
	for _, tt := range tests {
		if got := tt.freq.MonthlyRate(M(1200, "USD")); !got.Equal(tt.want) {
			t.Errorf("%v.MonthlyRate(1200) = %v, want %v", tt.freq, got, tt.want)
		}
	}
}
