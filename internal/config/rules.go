package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/pkordes/congestion-tax/internal/domain"
)

// LoadRules reads the rule set at path. Scalar fields can be overridden with
// CONGESTION_* environment variables. A relative CSV holiday source is
// resolved against the directory of the rule file.
func LoadRules(path string) (domain.RuleSet, error) {
	var rules domain.RuleSet
	if err := cleanenv.ReadConfig(path, &rules); err != nil {
		return domain.RuleSet{}, fmt.Errorf("config.LoadRules: %w", err)
	}

	rules.ExemptPeriods.Holidays = resolveHolidaySource(filepath.Dir(path), rules.ExemptPeriods.Holidays)

	if err := ValidateRules(rules); err != nil {
		return domain.RuleSet{}, fmt.Errorf("config.LoadRules: %s: %w", path, err)
	}
	return rules, nil
}

// ValidateRules reports every problem in rules at once.
// Overlapping and gapped bands are allowed; the charge table resolves them.
func ValidateRules(rules domain.RuleSet) error {
	var errs []error

	if rules.Year <= 0 {
		errs = append(errs, fmt.Errorf("year must be positive, got %d", rules.Year))
	}
	if rules.MaxDailyCharge < 0 {
		errs = append(errs, fmt.Errorf("max_daily_charge must not be negative, got %d", rules.MaxDailyCharge))
	}
	for _, t := range rules.ExemptVehicles {
		if !t.Valid() {
			errs = append(errs, fmt.Errorf("exempt_vehicles: %w: %q", domain.ErrUnknownVehicleType, t))
		}
	}
	for i, b := range rules.TimeBands {
		if b.From > b.To {
			errs = append(errs, fmt.Errorf("time_bands[%d]: from %s is after to %s", i, b.From, b.To))
		}
		if b.Amount < 0 {
			errs = append(errs, fmt.Errorf("time_bands[%d]: amount must not be negative", i))
		}
	}

	fm := rules.ExemptPeriods.FreeMonth
	if !fm.IsZero() {
		if !fm.Start.IsValid() || !fm.End.IsValid() {
			errs = append(errs, errors.New("free_month: start and end must both be valid dates"))
		} else if fm.End.Before(fm.Start) {
			errs = append(errs, fmt.Errorf("free_month: end %s is before start %s", fm.End, fm.Start))
		}
	}

	return errors.Join(errs...)
}

func resolveHolidaySource(dir, id string) string {
	path, isCSV := strings.CutPrefix(id, "csv:")
	if !isCSV {
		if !strings.HasSuffix(strings.ToLower(id), ".csv") {
			return id
		}
		path = id
	}
	if filepath.IsAbs(path) {
		return id
	}
	return "csv:" + filepath.Join(dir, path)
}
