package repo

import (
	"sitetrack"
	"sitetrack/internal/api/models"

	"gorm.io/gorm"
)

type JobRepository struct {
	Db *gorm.DB
}

func NewJobRepository() *JobRepository {
	return &JobRepository{Db: sitetrack.DB}
}

// FindByID retrieves a job by ID with its phases
func (slf *JobRepository) FindByID(id uint) (models.Job, error) {
	var job models.Job
	err := slf.Db.Preload("Phases").First(&job, id).Error
	return job, err
}

func (slf *JobRepository) FindAll() ([]models.Job, error) {
	var jobs []models.Job
	err := slf.Db.Preload("Phases").Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

// Create persists a job together with any phases attached to it.
func (slf *JobRepository) Create(job *models.Job) error {
	return slf.Db.Create(job).Error
}

func (slf *JobRepository) Update(id uint, patch map[string]any) error {
	return slf.Db.Model(&models.Job{}).Where("id = ?", id).Updates(patch).Error
}

func (slf *JobRepository) Delete(id uint) error {
	return slf.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Phase{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, id).Error
	})
}

// FindPhasesByJob retrieves a job's phases in creation order.
func (slf *JobRepository) FindPhasesByJob(jobID uint) ([]models.Phase, error) {
	var phases []models.Phase
	err := slf.Db.Where("job_id = ?", jobID).Order("id").Find(&phases).Error
	return phases, err
}

func (slf *JobRepository) CreatePhase(phase *models.Phase) error {
	return slf.Db.Create(phase).Error
}
