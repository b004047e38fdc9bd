package tax_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/congestion-tax/internal/domain"
)

// tod parses a clock reading or fails the test.
func tod(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	d, err := domain.ParseTimeOfDay(s)
	require.NoError(t, err)
	return d
}

// at builds a wall-clock timestamp on the given date.
func at(d civil.Date, clock string) time.Time {
	parsed, err := time.Parse("15:04:05", clock)
	if err != nil {
		parsed, err = time.Parse("15:04", clock)
		if err != nil {
			panic("at: bad clock " + clock)
		}
	}
	return time.Date(d.Year, d.Month, d.Day, parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC)
}

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

// gothenburgBands is the 2013 Gothenburg fee table.
func gothenburgBands(t *testing.T) []domain.TimeBand {
	t.Helper()
	band := func(from, to string, amount int) domain.TimeBand {
		return domain.TimeBand{From: tod(t, from), To: tod(t, to), Amount: amount}
	}
	return []domain.TimeBand{
		band("06:00", "06:29", 8),
		band("06:30", "06:59", 13),
		band("07:00", "07:59", 18),
		band("08:00", "08:29", 13),
		band("08:30", "14:59", 8),
		band("15:00", "15:29", 13),
		band("15:30", "16:59", 18),
		band("17:00", "17:59", 13),
		band("18:00", "18:29", 8),
	}
}

// gothenburgRules is the 2013 rule set with July free, weekends exempt and
// no holidays (tests pass holidays to NewEngine explicitly).
func gothenburgRules(t *testing.T) domain.RuleSet {
	t.Helper()
	return domain.RuleSet{
		City:           "Gothenburg",
		Year:           2013,
		MaxDailyCharge: 60,
		ExemptVehicles: []domain.VehicleType{
			domain.VehicleMotorcycle,
			domain.VehicleBus,
			domain.VehicleEmergency,
			domain.VehicleDiplomat,
			domain.VehicleMilitary,
			domain.VehicleForeign,
		},
		TimeBands: gothenburgBands(t),
		ExemptPeriods: domain.ExemptPeriods{
			FreeMonth: domain.Period{Start: date(2013, time.July, 1), End: date(2013, time.July, 31)},
			Weekends:  true,
		},
	}
}
