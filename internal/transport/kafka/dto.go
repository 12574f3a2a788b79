package kafka

import (
	"strings"
	"time"

	"oasis-blood-platform/internal/domain"
)

// LocationDTO is the wire form of a coordinate.
type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RequestCreatedDTO is the JSON payload of a request-created event
type RequestCreatedDTO struct {
	RequestID    string      `json:"requestId"`
	BloodType    string      `json:"bloodType"`
	Location     LocationDTO `json:"location"`
	City         string      `json:"city"`
	HospitalName string      `json:"hospitalName"`
	IsEmergency  bool        `json:"isEmergency"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// ToDomain converts RequestCreatedDTO to domain.RequestCreated
func ToDomain(dto RequestCreatedDTO) domain.RequestCreated {
	return domain.RequestCreated{
		RequestID:    strings.TrimSpace(dto.RequestID),
		BloodType:    strings.TrimSpace(dto.BloodType),
		Location:     domain.Coordinate{Latitude: dto.Location.Latitude, Longitude: dto.Location.Longitude},
		City:         strings.TrimSpace(dto.City),
		HospitalName: strings.TrimSpace(dto.HospitalName),
		IsEmergency:  dto.IsEmergency,
		CreatedAt:    dto.CreatedAt,
	}
}

// FromDomain converts domain.RequestCreated to its wire form
func FromDomain(ev domain.RequestCreated) RequestCreatedDTO {
	return RequestCreatedDTO{
		RequestID:    ev.RequestID,
		BloodType:    ev.BloodType,
		Location:     LocationDTO{Latitude: ev.Location.Latitude, Longitude: ev.Location.Longitude},
		City:         ev.City,
		HospitalName: ev.HospitalName,
		IsEmergency:  ev.IsEmergency,
		CreatedAt:    ev.CreatedAt,
	}
}
