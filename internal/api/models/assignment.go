package models

import (
	"time"
)

type AssignmentStatus string

const (
	AssignmentStatusScheduled AssignmentStatus = "scheduled"
	AssignmentStatusActive    AssignmentStatus = "active"
	AssignmentStatusCompleted AssignmentStatus = "completed"
	AssignmentStatusCancelled AssignmentStatus = "cancelled"
)

// Assignment books one or more contractors onto a job for an inclusive
// calendar window. An empty SelectedPhases set means "all phases".
type Assignment struct {
	ID                  uint         `gorm:"primaryKey"`
	JobID               uint         `gorm:"index;not null"`
	Contractors         []Contractor `gorm:"many2many:assignment_contractors"`
	SelectedPhases      []string     `gorm:"serializer:json"`
	StartDate           time.Time
	EndDate             time.Time
	SpecialInstructions string
	Status              AssignmentStatus `gorm:"default:scheduled"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Assignment) TableName() string {
	return "assignments"
}

// CoversPhase reports whether the assignment's selection includes the
// phase. Empty selection covers everything on the job.
func (a Assignment) CoversPhase(phaseName string) bool {
	if len(a.SelectedPhases) == 0 {
		return true
	}
	for _, p := range a.SelectedPhases {
		if p == phaseName {
			return true
		}
	}
	return false
}

// PhasesOverlap reports whether two selected-phase sets intersect.
// Either side being empty means "all phases" and always overlaps.
func PhasesOverlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(a))
	for _, p := range a {
		set[p] = struct{}{}
	}
	for _, p := range b {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}
