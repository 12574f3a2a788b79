// Package matching holds the pure stages of donor matching: blood type
// compatibility, the two-phase geospatial filter, scoring and ranking.
// Nothing in this package performs I/O.
package matching

import (
	"fmt"

	"oasis-blood-platform/internal/apperr"
	"oasis-blood-platform/internal/domain"
)

// CompatibilityTable maps a recipient blood type to the donor types it can receive.
type CompatibilityTable struct {
	accepts map[domain.BloodType][]domain.BloodType
}

// NewCompatibilityTable builds a table from recipient -> donor types.
// Every recipient must be a valid blood type with a non-empty donor set.
func NewCompatibilityTable(rules map[domain.BloodType][]domain.BloodType) (CompatibilityTable, error) {
	accepts := make(map[domain.BloodType][]domain.BloodType, len(rules))
	for recipient, donors := range rules {
		if !recipient.Valid() {
			return CompatibilityTable{}, fmt.Errorf("recipient %q: %w", recipient, apperr.Invalid)
		}
		if len(donors) == 0 {
			return CompatibilityTable{}, fmt.Errorf("recipient %s has no donor types: %w", recipient, apperr.Invalid)
		}
		cp := make([]domain.BloodType, 0, len(donors))
		for _, d := range donors {
			if !d.Valid() {
				return CompatibilityTable{}, fmt.Errorf("donor %q for %s: %w", d, recipient, apperr.Invalid)
			}
			cp = append(cp, d)
		}
		accepts[recipient] = cp
	}
	return CompatibilityTable{accepts: accepts}, nil
}

// DefaultCompatibility returns the standard ABO/Rh red cell compatibility table.
func DefaultCompatibility() CompatibilityTable {
	t, err := NewCompatibilityTable(map[domain.BloodType][]domain.BloodType{
		domain.BloodTypeAPos: {domain.BloodTypeAPos, domain.BloodTypeANeg, domain.BloodTypeOPos, domain.BloodTypeONeg},
		domain.BloodTypeANeg: {domain.BloodTypeANeg, domain.BloodTypeONeg},
		domain.BloodTypeBPos: {domain.BloodTypeBPos, domain.BloodTypeBNeg, domain.BloodTypeOPos, domain.BloodTypeONeg},
		domain.BloodTypeBNeg: {domain.BloodTypeBNeg, domain.BloodTypeONeg},
		domain.BloodTypeABPos: {
			domain.BloodTypeAPos, domain.BloodTypeANeg, domain.BloodTypeBPos, domain.BloodTypeBNeg,
			domain.BloodTypeABPos, domain.BloodTypeABNeg, domain.BloodTypeOPos, domain.BloodTypeONeg,
		},
		domain.BloodTypeABNeg: {domain.BloodTypeANeg, domain.BloodTypeBNeg, domain.BloodTypeABNeg, domain.BloodTypeONeg},
		domain.BloodTypeOPos:  {domain.BloodTypeOPos, domain.BloodTypeONeg},
		domain.BloodTypeONeg:  {domain.BloodTypeONeg},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// CompatibleDonorTypes returns the donor types acceptable for recipient.
// The returned slice is a copy.
func (t CompatibilityTable) CompatibleDonorTypes(recipient domain.BloodType) ([]domain.BloodType, error) {
	donors, ok := t.accepts[recipient]
	if !ok {
		return nil, fmt.Errorf("recipient blood type %q: %w", recipient, apperr.Invalid)
	}
	out := make([]domain.BloodType, len(donors))
	copy(out, donors)
	return out, nil
}

// Len returns the number of recipient types in the table.
func (t CompatibilityTable) Len() int { return len(t.accepts) }

// Accepts reports whether a recipient of type recipient can receive from donor.
func (t CompatibilityTable) Accepts(recipient, donor domain.BloodType) bool {
	for _, d := range t.accepts[recipient] {
		if d == donor {
			return true
		}
	}
	return false
}
