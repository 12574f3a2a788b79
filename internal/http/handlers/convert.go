package handlers

import "oasis-blood-platform/internal/domain"

func (l locationDTO) toModel() domain.Coordinate {
	return domain.Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}

func locationToResponse(c domain.Coordinate) locationDTO {
	return locationDTO{Latitude: c.Latitude, Longitude: c.Longitude}
}

func (req createDonorRequest) toModel() *domain.Donor {
	return &domain.Donor{
		ID:             req.UserID,
		Name:           req.Name,
		BloodType:      domain.BloodType(req.BloodType),
		Location:       req.Location.toModel(),
		City:           req.City,
		Availability:   req.Availability,
		LastDonationAt: req.LastDonationAt,
	}
}

func (req updateDonorRequest) toModel(id string) domain.PartialDonorUpdate {
	u := domain.PartialDonorUpdate{
		ID:             id,
		Availability:   req.Availability,
		City:           req.City,
		LastDonationAt: req.LastDonationAt,
	}
	if req.Location != nil {
		loc := req.Location.toModel()
		u.Location = &loc
	}
	return u
}

func donorToResponse(d domain.Donor) donorDTO {
	return donorDTO{
		UserID:         d.ID,
		Name:           d.Name,
		BloodType:      d.BloodType,
		Location:       locationToResponse(d.Location),
		City:           d.City,
		Availability:   d.Availability,
		LastDonationAt: d.LastDonationAt,
		Verified:       d.Verified,
		DonationCount:  d.DonationCount,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (req createBloodRequest) toModel() *domain.BloodRequest {
	return &domain.BloodRequest{
		RequesterID:  req.RequesterID,
		BloodType:    domain.BloodType(req.BloodType),
		Location:     req.Location.toModel(),
		City:         req.City,
		HospitalName: req.HospitalName,
		IsEmergency:  req.IsEmergency,
	}
}

func bloodRequestToResponse(r domain.BloodRequest) bloodRequestDTO {
	return bloodRequestDTO{
		ID:           r.ID,
		RequesterID:  r.RequesterID,
		BloodType:    r.BloodType,
		Location:     locationToResponse(r.Location),
		City:         r.City,
		HospitalName: r.HospitalName,
		IsEmergency:  r.IsEmergency,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
