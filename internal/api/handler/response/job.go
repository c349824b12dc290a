package response

import (
	"time"

	"sitetrack/internal/api/models"
)

type Job struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Address     string           `json:"address"`
	PostCode    string           `json:"postCode"`
	ProjectType string           `json:"projectType"`
	Status      models.JobStatus `json:"status"`
	CsvUploadID *uint            `json:"csvUploadId,omitempty"`
	Phases      []Phase          `json:"phases"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type Phase struct {
	ID                 uint               `json:"id"`
	JobID              uint               `json:"jobId"`
	PhaseName          string             `json:"phaseName"`
	LabourCost         int                `json:"labourCost"`
	MaterialCost       int                `json:"materialCost"`
	RequiredLabourDays float64            `json:"requiredLabourDays"`
	Status             models.PhaseStatus `json:"status"`
}
