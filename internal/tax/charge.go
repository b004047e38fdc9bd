package tax

import "github.com/pkordes/congestion-tax/internal/domain"

// ChargeTable maps a clock reading to a fee using an ordered list of bands.
type ChargeTable struct {
	bands []domain.TimeBand
}

// NewChargeTable copies bands so later changes to the caller's slice cannot
// leak into the table.
func NewChargeTable(bands []domain.TimeBand) ChargeTable {
	return ChargeTable{bands: append([]domain.TimeBand(nil), bands...)}
}

// ChargeAt returns the amount of the first band containing tod, or 0 when no
// band does. Overlapping bands are tolerated; the earlier one wins.
func (t ChargeTable) ChargeAt(tod domain.TimeOfDay) int {
	for _, b := range t.bands {
		if b.Contains(tod) {
			return b.Amount
		}
	}
	return 0
}

// Overlaps returns the index pairs of bands whose ranges intersect.
// The lookup never fails on overlap; this only feeds startup warnings.
func (t ChargeTable) Overlaps() [][2]int {
	var out [][2]int
	for i := 0; i < len(t.bands); i++ {
		for j := i + 1; j < len(t.bands); j++ {
			a, b := t.bands[i], t.bands[j]
			if a.From <= b.To && b.From <= a.To {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}
