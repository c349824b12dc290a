package models

import "time"

type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusActive    JobStatus = "active"
	JobStatusCompleted JobStatus = "completed"
	JobStatusArchived  JobStatus = "archived"
)

type Job struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	Address     string
	PostCode    string
	ProjectType string
	Status      JobStatus `gorm:"default:draft"`
	// Provenance only. Deleting the upload ledger row never touches the job.
	CsvUploadID *uint
	Phases      []Phase `gorm:"foreignKey:JobID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PhaseStatus string

const (
	PhaseStatusPending    PhaseStatus = "pending"
	PhaseStatusInProgress PhaseStatus = "in_progress"
	PhaseStatusDone       PhaseStatus = "done"
)

type Phase struct {
	ID                uint   `gorm:"primaryKey"`
	JobID             uint   `gorm:"index;uniqueIndex:idx_phase_job_name"`
	PhaseName         string `gorm:"uniqueIndex:idx_phase_job_name"`
	LabourCostPence   int
	MaterialCostPence int
	// Set once at upload time; the schedule validator consumes it as-is.
	RequiredLabourDays float64
	Status             PhaseStatus `gorm:"default:pending"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Job) TableName() string {
	return "jobs"
}

func (Phase) TableName() string {
	return "phases"
}
