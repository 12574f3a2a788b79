package domain

import "time"

// RequestStatus is the lifecycle state of a blood request.
type RequestStatus string

// List of possible request statuses
const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusClosed    RequestStatus = "closed"
)

// Valid checks if the RequestStatus is valid
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusFulfilled, RequestStatusClosed:
		return true
	}
	return false
}

// BloodRequest is a need for blood at a hospital.
type BloodRequest struct {
	ID           string
	RequesterID  string
	BloodType    BloodType
	Location     Coordinate
	City         string
	HospitalName string
	IsEmergency  bool
	Status       RequestStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequestCreated is the event emitted once per newly stored request.
type RequestCreated struct {
	RequestID    string
	BloodType    string
	Location     Coordinate
	City         string
	HospitalName string
	IsEmergency  bool
	CreatedAt    time.Time
}

// EventFromRequest builds the creation event for a stored request.
func EventFromRequest(r *BloodRequest) RequestCreated {
	return RequestCreated{
		RequestID:    r.ID,
		BloodType:    string(r.BloodType),
		Location:     r.Location,
		City:         r.City,
		HospitalName: r.HospitalName,
		IsEmergency:  r.IsEmergency,
		CreatedAt:    r.CreatedAt,
	}
}
