package domain

import "time"

// Availability is the donor's willingness to be contacted.
type Availability string

// List of possible donor availability states
const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
	AvailabilitySuspended   Availability = "suspended"
)

var allowedAvailability = [...]Availability{
	AvailabilityAvailable, AvailabilityUnavailable, AvailabilitySuspended,
}

// Valid checks if the Availability is valid
func (a Availability) Valid() bool {
	for _, v := range allowedAvailability {
		if a == v {
			return true
		}
	}
	return false
}

// Donor is a registered blood donor. ID is the linked account (user) id.
type Donor struct {
	ID             string
	Name           string
	BloodType      BloodType
	Location       Coordinate
	City           string
	Availability   Availability
	LastDonationAt *time.Time
	Verified       bool
	DonationCount  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PartialDonorUpdate carries optional fields to update a donor.
// A nil field means "do not change" that attribute.
type PartialDonorUpdate struct {
	ID             string
	Availability   *Availability
	Location       *Coordinate
	City           *string
	LastDonationAt *time.Time
}

// Empty reports whether the update changes nothing.
func (u PartialDonorUpdate) Empty() bool {
	return u.Availability == nil && u.Location == nil && u.City == nil && u.LastDonationAt == nil
}

// Device is a push-delivery registration of one of a user's devices.
type Device struct {
	Token     string
	UserID    string
	Platform  string
	IsActive  bool
	CreatedAt time.Time
}
