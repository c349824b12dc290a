package repo

import (
	"sitetrack"
	"sitetrack/internal/api/models"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	Db *gorm.DB
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{Db: sitetrack.DB}
}

func (slf *AssignmentRepository) Create(assignment *models.Assignment) error {
	return slf.Db.Create(assignment).Error
}

func (slf *AssignmentRepository) FindByID(id uint) (models.Assignment, error) {
	var assignment models.Assignment
	err := slf.Db.Preload("Contractors").First(&assignment, id).Error
	return assignment, err
}

func (slf *AssignmentRepository) FindByJob(jobID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := slf.Db.Preload("Contractors").Where("job_id = ?", jobID).Order("start_date").Find(&assignments).Error
	return assignments, err
}

// FindOpenByJob returns assignments on a job that still claim contractor
// time, i.e. not completed or cancelled.
func (slf *AssignmentRepository) FindOpenByJob(jobID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := slf.Db.Where("job_id = ? AND status IN ?", jobID,
		[]models.AssignmentStatus{models.AssignmentStatusScheduled, models.AssignmentStatusActive}).
		Find(&assignments).Error
	return assignments, err
}

func (slf *AssignmentRepository) Update(id uint, patch map[string]any) error {
	return slf.Db.Model(&models.Assignment{}).Where("id = ?", id).Updates(patch).Error
}

func (slf *AssignmentRepository) Delete(id uint) error {
	return slf.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM assignment_contractors WHERE assignment_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Assignment{}, id).Error
	})
}
