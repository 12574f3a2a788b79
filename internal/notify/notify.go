// Package notify delivers push notifications to donor devices.
package notify

import (
	"fmt"
	"strings"

	"oasis-blood-platform/internal/matching"
)

// Message is the content of one push notification.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// SendResult reports how many tokens the provider accepted and rejected.
type SendResult struct {
	SuccessCount int
	FailureCount int
}

// Add accumulates another result.
func (r *SendResult) Add(o SendResult) {
	r.SuccessCount += o.SuccessCount
	r.FailureCount += o.FailureCount
}

// NewRequestMessage builds the appeal sent to matched donors.
func NewRequestMessage(req matching.Request) Message {
	title := fmt.Sprintf("Urgent Blood Request: %s", req.BloodType)
	if req.IsEmergency {
		title = fmt.Sprintf("EMERGENCY Blood Request: %s", req.BloodType)
	}

	hospital := strings.TrimSpace(req.HospitalName)
	if hospital == "" {
		hospital = "a nearby hospital"
	}
	locality := "your city"
	if city := strings.TrimSpace(req.City); city != "" {
		locality = city
	}

	return Message{
		Title: title,
		Body:  fmt.Sprintf("A patient at %s in %s needs your help.", hospital, locality),
		Data: map[string]string{
			"requestId": req.ID,
			"bloodType": string(req.BloodType),
		},
	}
}
