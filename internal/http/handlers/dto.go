package handlers

import (
	"time"

	"oasis-blood-platform/internal/domain"
)

type locationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type donorDTO struct {
	UserID         string              `json:"user_id"`
	Name           string              `json:"name"`
	BloodType      domain.BloodType    `json:"blood_type"`
	Location       locationDTO         `json:"location"`
	City           string              `json:"city"`
	Availability   domain.Availability `json:"availability"`
	LastDonationAt *time.Time          `json:"last_donation_at"`
	Verified       bool                `json:"verified"`
	DonationCount  int                 `json:"donation_count"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type createDonorRequest struct {
	UserID         string              `json:"user_id"`
	Name           string              `json:"name"`
	BloodType      string              `json:"blood_type"`
	Location       locationDTO         `json:"location"`
	City           string              `json:"city"`
	Availability   domain.Availability `json:"availability,omitempty"`
	LastDonationAt *time.Time          `json:"last_donation_at,omitempty"`
}

type updateDonorRequest struct {
	Availability   *domain.Availability `json:"availability,omitempty"`
	Location       *locationDTO         `json:"location,omitempty"`
	City           *string              `json:"city,omitempty"`
	LastDonationAt *time.Time           `json:"last_donation_at,omitempty"`
}

type registerDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type bloodRequestDTO struct {
	ID           string               `json:"id"`
	RequesterID  string               `json:"requester_id"`
	BloodType    domain.BloodType     `json:"blood_type"`
	Location     locationDTO          `json:"location"`
	City         string               `json:"city"`
	HospitalName string               `json:"hospital_name"`
	IsEmergency  bool                 `json:"is_emergency"`
	Status       domain.RequestStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type createBloodRequest struct {
	RequesterID  string      `json:"requester_id"`
	BloodType    string      `json:"blood_type"`
	Location     locationDTO `json:"location"`
	City         string      `json:"city"`
	HospitalName string      `json:"hospital_name"`
	IsEmergency  bool        `json:"is_emergency"`
}
