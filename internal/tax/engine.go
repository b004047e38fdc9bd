package tax

import (
	"slices"
	"time"

	"cloud.google.com/go/civil"

	"github.com/pkordes/congestion-tax/internal/domain"
)

// Engine bundles everything derived from the active rule set. Build it once
// at startup with NewEngine and share it; none of its methods mutate it.
type Engine struct {
	rules    domain.RuleSet
	calendar *Calendar
	table    ChargeTable
	daily    DailyCalculator
	exempt   map[domain.VehicleType]struct{}
}

// NewEngine derives the exempt calendar, charge table and daily calculator
// from rules. holidays comes from whatever holiday.Source the rule set names.
func NewEngine(rules domain.RuleSet, holidays []civil.Date) *Engine {
	table := NewChargeTable(rules.TimeBands)
	exempt := make(map[domain.VehicleType]struct{}, len(rules.ExemptVehicles))
	for _, t := range rules.ExemptVehicles {
		exempt[t] = struct{}{}
	}

	rules.ExemptVehicles = slices.Clone(rules.ExemptVehicles)
	rules.TimeBands = slices.Clone(rules.TimeBands)

	return &Engine{
		rules:    rules,
		calendar: NewCalendar(rules.Year, rules.ExemptPeriods, holidays),
		table:    table,
		daily:    NewDailyCalculator(table, rules.MaxDailyCharge),
		exempt:   exempt,
	}
}

// Rules returns the rule set the engine was built from.
func (e *Engine) Rules() domain.RuleSet {
	r := e.rules
	r.ExemptVehicles = slices.Clone(r.ExemptVehicles)
	r.TimeBands = slices.Clone(r.TimeBands)
	return r
}

func (e *Engine) Calendar() *Calendar { return e.calendar }

func (e *Engine) ChargeTable() ChargeTable { return e.table }

// InTaxYear reports whether d belongs to the configured tax year.
func (e *Engine) InTaxYear(d civil.Date) bool {
	return d.Year == e.rules.Year
}

func (e *Engine) IsExemptDate(d civil.Date) bool {
	return e.calendar.IsExempt(d)
}

func (e *Engine) IsExemptVehicle(t domain.VehicleType) bool {
	_, ok := e.exempt[t]
	return ok
}

// DailyTax charges timestamps that all belong to one vehicle and one day.
// It does not look at the exempt calendar; callers check that first.
func (e *Engine) DailyTax(timestamps []time.Time) int {
	return e.daily.DailyTax(timestamps)
}

// RangeTax charges one vehicle's timestamps spread over any number of days.
// Timestamps are grouped by calendar date, exempt dates are dropped before
// clustering and the capped per-day totals are summed.
func (e *Engine) RangeTax(timestamps []time.Time) int {
	total := 0
	for day, ts := range groupByDate(timestamps) {
		if e.calendar.IsExempt(day) {
			continue
		}
		total += e.daily.DailyTax(ts)
	}
	return total
}

// FleetTax charges every vehicle seen in passages independently. Vehicles of
// an exempt type appear with 0; vehicles without passages do not appear.
func (e *Engine) FleetTax(passages []domain.Passage) map[string]int {
	byVehicle := make(map[string][]time.Time)
	types := make(map[string]domain.VehicleType)
	for _, p := range passages {
		reg := p.Vehicle.Registration
		byVehicle[reg] = append(byVehicle[reg], p.Timestamp)
		types[reg] = p.Vehicle.Type
	}

	totals := make(map[string]int, len(byVehicle))
	for reg, ts := range byVehicle {
		if e.IsExemptVehicle(types[reg]) {
			totals[reg] = 0
			continue
		}
		totals[reg] = e.RangeTax(ts)
	}
	return totals
}

func groupByDate(timestamps []time.Time) map[civil.Date][]time.Time {
	out := make(map[civil.Date][]time.Time)
	for _, ts := range timestamps {
		d := civil.DateOf(ts)
		out[d] = append(out[d], ts)
	}
	return out
}
