package request

import "sitetrack/internal/api/models"

type CreateJob struct {
	Title       string           `json:"title" validate:"required"`
	Address     string           `json:"address"`
	PostCode    string           `json:"postCode"`
	ProjectType string           `json:"projectType"`
	Status      models.JobStatus `json:"status"`
	Phases      []CreatePhase    `json:"phases,omitempty"`
}

type CreatePhase struct {
	PhaseName          string  `json:"phaseName" validate:"required"`
	LabourCost         int     `json:"labourCost"`
	MaterialCost       int     `json:"materialCost"`
	RequiredLabourDays float64 `json:"requiredLabourDays"`
}

type UpdateJob struct {
	Title       *string           `json:"title,omitempty"`
	Address     *string           `json:"address,omitempty"`
	PostCode    *string           `json:"postCode,omitempty"`
	ProjectType *string           `json:"projectType,omitempty"`
	Status      *models.JobStatus `json:"status,omitempty"`
}
