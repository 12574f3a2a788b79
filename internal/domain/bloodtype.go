package domain

import (
	"fmt"
	"strings"

	"oasis-blood-platform/internal/apperr"
)

// BloodType is an ABO/Rh blood group.
type BloodType string

// List of recognized blood types
const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

var allBloodTypes = [...]BloodType{
	BloodTypeAPos, BloodTypeANeg,
	BloodTypeBPos, BloodTypeBNeg,
	BloodTypeABPos, BloodTypeABNeg,
	BloodTypeOPos, BloodTypeONeg,
}

// AllBloodTypes returns the eight recognized blood types.
func AllBloodTypes() []BloodType {
	out := make([]BloodType, len(allBloodTypes))
	copy(out, allBloodTypes[:])
	return out
}

// Valid checks if the BloodType is one of the eight recognized values.
func (b BloodType) Valid() bool {
	for _, v := range allBloodTypes {
		if b == v {
			return true
		}
	}
	return false
}

// ExactBloodType accepts only one of the eight values as written, with no
// trimming or case folding.
func ExactBloodType(raw string) (BloodType, error) {
	b := BloodType(raw)
	if !b.Valid() {
		return "", fmt.Errorf("blood type %q: %w", raw, apperr.Invalid)
	}
	return b, nil
}

// ParseBloodType normalizes raw input ("ab+ " -> "AB+") and validates it.
func ParseBloodType(raw string) (BloodType, error) {
	b := BloodType(strings.ToUpper(strings.TrimSpace(raw)))
	if !b.Valid() {
		return "", fmt.Errorf("blood type %q: %w", raw, apperr.Invalid)
	}
	return b, nil
}
