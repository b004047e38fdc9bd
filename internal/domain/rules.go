package domain

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// TimeOfDay is an offset from midnight. Band bounds and passage clock
// readings are compared at nanosecond precision, so a band ending at 06:29
// does not contain 06:29:30.
type TimeOfDay time.Duration

// TimeOfDayOf returns the clock reading of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond()))
}

// ParseTimeOfDay accepts "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q: want HH:MM or HH:MM:SS", s)
}

// String renders HH:MM, or HH:MM:SS when seconds are set.
func (d TimeOfDay) String() string {
	dur := time.Duration(d)
	h := int(dur / time.Hour)
	m := int(dur % time.Hour / time.Minute)
	s := int(dur % time.Minute / time.Second)
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func (d TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeBand charges Amount for every clock reading in [From, To], both ends
// inclusive.
type TimeBand struct {
	From   TimeOfDay `yaml:"from" json:"from"`
	To     TimeOfDay `yaml:"to" json:"to"`
	Amount int       `yaml:"amount" json:"amount"`
}

// Contains reports whether tod falls inside the band.
func (b TimeBand) Contains(tod TimeOfDay) bool {
	return tod >= b.From && tod <= b.To
}

// Period is an inclusive range of calendar dates. A zero Period is empty.
type Period struct {
	Start civil.Date `yaml:"start" json:"start"`
	End   civil.Date `yaml:"end" json:"end"`
}

// IsZero reports whether the period was left unset.
func (p Period) IsZero() bool {
	return p.Start == civil.Date{} && p.End == civil.Date{}
}

// ExemptPeriods groups the date-based exemptions of a rule set.
// Holidays names a holiday source; see package holiday for the accepted forms.
type ExemptPeriods struct {
	FreeMonth Period `yaml:"free_month" json:"free_month"`
	Weekends  bool   `yaml:"weekends" json:"weekends"`
	Holidays  string `yaml:"holidays" env:"CONGESTION_HOLIDAYS" json:"holidays"`
}

// RuleSet is the single active congestion tax configuration.
type RuleSet struct {
	City           string        `yaml:"city" env:"CONGESTION_CITY" json:"city"`
	Year           int           `yaml:"year" env:"CONGESTION_YEAR" json:"year"`
	MaxDailyCharge int           `yaml:"max_daily_charge" env:"CONGESTION_MAX_DAILY_CHARGE" json:"max_daily_charge"`
	ExemptVehicles []VehicleType `yaml:"exempt_vehicles" json:"exempt_vehicles"`
	TimeBands      []TimeBand    `yaml:"time_bands" json:"time_bands"`
	ExemptPeriods  ExemptPeriods `yaml:"exempt_periods" json:"exempt_periods"`
}
