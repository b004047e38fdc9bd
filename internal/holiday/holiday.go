// Package holiday supplies the public holiday dates that feed the exempt
// calendar. A rule set names its source with a short identifier:
//
//	""                      no holidays
//	"calendar:se"           computed from the rickar/cal country calendar
//	"csv:path/to/file.csv"  read from a CSV file with a Date column
//	"path/to/file.csv"      same as the csv: form
package holiday

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// Holiday is one public holiday. Name and LocalName are informational.
type Holiday struct {
	Date      civil.Date
	Name      string
	LocalName string
}

// Source lists the holidays relevant to a tax year.
type Source interface {
	Holidays(ctx context.Context, year int) ([]Holiday, error)
}

// Open resolves a holiday source identifier.
func Open(id string) (Source, error) {
	id = strings.TrimSpace(id)
	switch {
	case id == "":
		return none{}, nil
	case strings.HasPrefix(id, "calendar:"):
		return NewCalendarSource(strings.TrimPrefix(id, "calendar:"))
	case strings.HasPrefix(id, "csv:"):
		return NewCSVSource(strings.TrimPrefix(id, "csv:")), nil
	case strings.HasSuffix(strings.ToLower(id), ".csv"):
		return NewCSVSource(id), nil
	default:
		return nil, fmt.Errorf("holiday.Open: unsupported source %q", id)
	}
}

// Dates extracts the dates of hs in order.
func Dates(hs []Holiday) []civil.Date {
	out := make([]civil.Date, len(hs))
	for i, h := range hs {
		out[i] = h.Date
	}
	return out
}

type none struct{}

func (none) Holidays(context.Context, int) ([]Holiday, error) { return nil, nil }

// ForTaxYear returns the holiday dates that shape the exempt calendar of
// year. The following year is included because the eve of its first holiday
// (New Year's Day) is 31 December of year.
func ForTaxYear(ctx context.Context, src Source, year int) ([]civil.Date, error) {
	seen := make(map[civil.Date]struct{})
	var out []civil.Date
	for _, y := range []int{year, year + 1} {
		hs, err := src.Holidays(ctx, y)
		if err != nil {
			return nil, fmt.Errorf("holiday.ForTaxYear: %d: %w", y, err)
		}
		for _, d := range Dates(hs) {
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out, nil
}
