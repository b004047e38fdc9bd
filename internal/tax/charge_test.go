package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/congestion-tax/internal/domain"
	"github.com/pkordes/congestion-tax/internal/tax"
)

func TestChargeTable_ChargeAt(t *testing.T) {
	table := tax.NewChargeTable(gothenburgBands(t))

	tests := []struct {
		clock string
		want  int
	}{
		{"05:59:59", 0},
		{"06:00", 8},
		{"06:29", 8},
		{"06:29:30", 0}, // between 06:29 and 06:30: inclusive bounds at second precision
		{"06:30", 13},
		{"07:15", 18},
		{"08:29", 13},
		{"12:00", 8},
		{"15:00", 13},
		{"16:59", 18},
		{"17:30", 13},
		{"18:29", 8},
		{"18:30", 0},
		{"23:59:59", 0},
		{"00:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			assert.Equal(t, tt.want, table.ChargeAt(tod(t, tt.clock)))
		})
	}
}

func TestChargeTable_FirstMatchWins(t *testing.T) {
	// Overlapping bands are a configuration mistake but must not crash;
	// the band listed first decides.
	table := tax.NewChargeTable([]domain.TimeBand{
		{From: tod(t, "06:00"), To: tod(t, "07:00"), Amount: 8},
		{From: tod(t, "06:30"), To: tod(t, "07:30"), Amount: 18},
	})

	assert.Equal(t, 8, table.ChargeAt(tod(t, "06:45")))
	assert.Equal(t, 18, table.ChargeAt(tod(t, "07:15")))
	assert.Equal(t, [][2]int{{0, 1}}, table.Overlaps())
}

func TestChargeTable_Empty(t *testing.T) {
	table := tax.NewChargeTable(nil)

	assert.Zero(t, table.ChargeAt(tod(t, "07:00")))
	assert.Empty(t, table.Overlaps())
}

func TestChargeTable_NoOverlapsInGothenburgTable(t *testing.T) {
	assert.Empty(t, tax.NewChargeTable(gothenburgBands(t)).Overlaps())
}

func TestChargeTable_CopiesBands(t *testing.T) {
	bands := []domain.TimeBand{{From: tod(t, "06:00"), To: tod(t, "06:59"), Amount: 8}}
	table := tax.NewChargeTable(bands)

	bands[0].Amount = 100

	assert.Equal(t, 8, table.ChargeAt(tod(t, "06:30")))
}
