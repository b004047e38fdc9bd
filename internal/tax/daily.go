package tax

import (
	"slices"
	"time"

	"github.com/pkordes/congestion-tax/internal/domain"
)

// Window is how far after the first passage of a cluster a later passage may
// occur and still be charged as part of it. The bound is inclusive.
const Window = 60 * time.Minute

// DailyCalculator charges one vehicle for one calendar day.
type DailyCalculator struct {
	table    ChargeTable
	dailyCap int
}

// NewDailyCalculator returns a calculator that never charges more than
// dailyCap for a day.
func NewDailyCalculator(table ChargeTable, dailyCap int) DailyCalculator {
	return DailyCalculator{table: table, dailyCap: dailyCap}
}

// Clusters sorts a copy of timestamps and splits it greedily: each cluster
// is anchored at its first member and takes every following timestamp no
// more than Window after that anchor. The anchor never moves.
func Clusters(timestamps []time.Time) [][]time.Time {
	if len(timestamps) == 0 {
		return nil
	}
	sorted := slices.Clone(timestamps)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	var clusters [][]time.Time
	current := []time.Time{sorted[0]}
	for _, ts := range sorted[1:] {
		if ts.Sub(current[0]) <= Window {
			current = append(current, ts)
			continue
		}
		clusters = append(clusters, current)
		current = []time.Time{ts}
	}
	return append(clusters, current)
}

// DailyTax is the sum over clusters of the highest fee in each cluster,
// capped at the daily maximum. Duplicates are allowed and cost nothing extra.
func (c DailyCalculator) DailyTax(timestamps []time.Time) int {
	sum := 0
	for _, cluster := range Clusters(timestamps) {
		highest := 0
		for _, ts := range cluster {
			highest = max(highest, c.table.ChargeAt(domain.TimeOfDayOf(ts)))
		}
		sum += highest
	}
	return min(sum, c.dailyCap)
}
