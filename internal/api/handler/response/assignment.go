package response

import (
	"time"

	"sitetrack/internal/api/models"
	"sitetrack/internal/api/service"
)

type Assignment struct {
	ID                  uint                    `json:"id"`
	JobID               uint                    `json:"jobId"`
	Contractors         []Contractor            `json:"contractors"`
	SelectedPhases      []string                `json:"selectedPhases"`
	StartDate           string                  `json:"startDate"`
	EndDate             string                  `json:"endDate"`
	SpecialInstructions string                  `json:"specialInstructions"`
	Status              models.AssignmentStatus `json:"status"`
	CreatedAt           time.Time               `json:"createdAt"`
}

// CreatedAssignment pairs the booked assignment with its schedule
// verdict so the UI can warn without a second round trip.
type CreatedAssignment struct {
	Assignment Assignment             `json:"assignment"`
	Validation service.TimeValidation `json:"validation"`
}

// SuggestedEndDate is empty-dated with Available=false when the job has
// no labour-time data to suggest from.
type SuggestedEndDate struct {
	EndDate   string `json:"endDate,omitempty"`
	Available bool   `json:"available"`
}
