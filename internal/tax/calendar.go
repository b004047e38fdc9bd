// Package tax is the congestion tax engine: exempt dates, the time-of-day fee
// table, hourly clustering and the daily cap. Everything here is a pure
// function of the rule set and the passages handed in; no I/O happens in this
// package.
package tax

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/pkordes/congestion-tax/internal/domain"
)

// Calendar is the set of dates on which nothing is charged.
// It is built once and never mutated, so it is safe for concurrent reads.
type Calendar struct {
	dates map[civil.Date]struct{}
}

// NewCalendar materialises the exempt dates of a tax year: the free month,
// every Saturday and Sunday of the year when weekends are exempt, and each
// holiday together with the day before it.
func NewCalendar(year int, periods domain.ExemptPeriods, holidays []civil.Date) *Calendar {
	c := &Calendar{dates: make(map[civil.Date]struct{})}

	if !periods.FreeMonth.IsZero() {
		for d := periods.FreeMonth.Start; !d.After(periods.FreeMonth.End); d = d.AddDays(1) {
			c.add(d)
		}
	}

	if periods.Weekends {
		last := civil.Date{Year: year, Month: time.December, Day: 31}
		for d := (civil.Date{Year: year, Month: time.January, Day: 1}); !d.After(last); d = d.AddDays(1) {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				c.add(d)
			}
		}
	}

	for _, h := range holidays {
		c.add(h)
		c.add(h.AddDays(-1))
	}

	return c
}

func (c *Calendar) add(d civil.Date) {
	c.dates[d] = struct{}{}
}

// IsExempt reports whether d is an exempt date.
func (c *Calendar) IsExempt(d civil.Date) bool {
	_, ok := c.dates[d]
	return ok
}

// Len returns the number of exempt dates.
func (c *Calendar) Len() int {
	return len(c.dates)
}

// Dates returns the exempt dates in ascending order.
func (c *Calendar) Dates() []civil.Date {
	out := make([]civil.Date, 0, len(c.dates))
	for d := range c.dates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
