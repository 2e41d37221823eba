package tracker

import (
	"fmt"
	"strings"
	"time"
)

// Scenario scales the per-category run-rate before projection. Multipliers
// are clamped to [0.8, 1.4]; categories without an entry keep factor 1.
type Scenario struct {
	Name        string
	Multipliers map[Category]float64
}

const (
	scenarioFloor   = 0.8
	scenarioCeiling = 1.4
)

// Factor returns the clamped multiplier for a category bucket.
func (s Scenario) Factor(bucket Category) float64 {
	f, ok := s.Multipliers[bucket]
	if !ok {
		return 1
	}
	if f < scenarioFloor {
		return scenarioFloor
	}
	if f > scenarioCeiling {
		return scenarioCeiling
	}
	return f
}

// uniformScenario applies the same factor to every bucket.
func uniformScenario(name string, factor float64) Scenario {
	m := make(map[Category]float64, len(ForecastBuckets))
	for _, b := range ForecastBuckets {
		m[b] = factor
	}
	return Scenario{Name: name, Multipliers: m}
}

// ParseScenario resolves a named preset.
func ParseScenario(name string) (Scenario, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "realistic":
		return uniformScenario("realistic", 1.0), nil
	case "optimistic":
		return uniformScenario("optimistic", 0.9), nil
	case "stressed":
		return uniformScenario("stressed", 1.3), nil
	default:
		return Scenario{}, fmt.Errorf("unknown scenario %q (want optimistic, realistic or stressed)", name)
	}
}

// Inflow models the assumed monthly income for the projection.
type Inflow struct {
	Monthly    Money        // base assumed inflow per month
	PeakMonths []time.Month // seasonal peaks, if any
	PeakFactor float64      // multiplier applied on peak months, defaults to 1.3
	Manual     []Money      // per-month overrides, indexed from the first projected month
}

// forMonth returns the assumed inflow for the i-th projected month (0-based)
// falling in calendar month m.
func (in Inflow) forMonth(i int, m time.Month) Money {
	if i < len(in.Manual) {
		return in.Manual[i]
	}
	for _, peak := range in.PeakMonths {
		if peak == m {
			factor := in.PeakFactor
			if factor == 0 {
				factor = 1.3
			}
			return in.Monthly.MulFloat(factor)
		}
	}
	return in.Monthly
}

// ForecastMonth is one projected month of the series.
type ForecastMonth struct {
	Month      Date // first day of the month
	Outflow    Money
	Inflow     Money
	Net        Money
	Cumulative Money
}

// Forecast is a multi-month cash projection under a scenario.
type Forecast struct {
	Ledger        string
	Scenario      string
	MonthlyTotal  Money // scenario-adjusted monthly run-rate, all buckets
	ByCategory    map[Category]Money
	Series        []ForecastMonth
	FirstGapMonth int   // 1-based month index of the first negative cumulative, 0 if none
	WorstGap      Money // minimum cumulative value, zero if never negative
}

// ForecastOptions tunes the projection.
type ForecastOptions struct {
	Months          int   // horizon length, defaults to 6
	StartingBalance Money // cumulative starting point, defaults to 0
	WeightDueDates  bool  // blend the run-rate with the dues that land in each month
}

// BuildForecast normalizes every priced obligation to its monthly-equivalent
// run-rate, applies the scenario multipliers per category bucket, and projects
// the cumulative cash position over the horizon.
func BuildForecast(l *Ledger, scenario Scenario, inflow Inflow, opts ForecastOptions, now Date) *Forecast {
	months := opts.Months
	if months <= 0 {
		months = 6
	}

	f := &Forecast{
		Ledger:     l.Name(),
		Scenario:   scenario.Name,
		ByCategory: make(map[Category]Money),
	}
	zero := l.Zero()
	f.MonthlyTotal = zero
	for _, b := range ForecastBuckets {
		f.ByCategory[b] = zero
	}

	// run-rate normalization, scenario-adjusted per bucket
	for i := range l.Obligations() {
		o := &l.Obligations()[i]
		if !o.Priced() || o.Type == Income {
			continue
		}
		bucket := o.Category.Bucket()
		rate := o.Frequency.MonthlyRate(o.Amount).MulFloat(scenario.Factor(bucket))
		f.ByCategory[bucket] = f.ByCategory[bucket].Add(rate)
		f.MonthlyTotal = f.MonthlyTotal.Add(rate)
	}

	cumulative := zero.Add(opts.StartingBalance)
	f.WorstGap = zero
	start := now.StartOf(Monthly).AddMonths(1)
	horizon := NewRange(start, start.AddMonths(months-1))

	i := 0
	for month := range horizon.Periods(Monthly) {
		first := month.From
		outflow := f.MonthlyTotal
		if opts.WeightDueDates {
			outflow = outflow.DivInt(2).Add(duesInMonth(l, scenario, first).DivInt(2))
		}
		in := inflow.forMonth(i, first.Month())
		net := zero.Add(in).Sub(outflow)
		cumulative = cumulative.Add(net)

		f.Series = append(f.Series, ForecastMonth{
			Month:      first,
			Outflow:    outflow,
			Inflow:     zero.Add(in),
			Net:        net,
			Cumulative: cumulative,
		})

		if cumulative.IsNegative() {
			if f.FirstGapMonth == 0 {
				f.FirstGapMonth = i + 1
			}
			if cumulative.LessThan(f.WorstGap) {
				f.WorstGap = cumulative
			}
		}
		i++
	}
	return f
}

// duesInMonth sums the scenario-adjusted expense occurrences that land in the
// month starting at first.
func duesInMonth(l *Ledger, scenario Scenario, first Date) Money {
	sum := l.Zero()
	month := NewRange(first, first.EndOf(Monthly))
	for _, occ := range occurrencesIn(l.Obligations(), month) {
		if occ.ob.Type == Income {
			continue
		}
		sum = sum.Add(occ.ob.Amount.MulFloat(scenario.Factor(occ.ob.Category.Bucket())))
	}
	return sum
}
