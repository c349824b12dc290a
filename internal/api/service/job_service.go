package service

import (
	"errors"

	"sitetrack"
	"sitetrack/internal/api/models"
	"sitetrack/internal/api/repo"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobService struct {
	jobRepo *repo.JobRepository
	logger  zerolog.Logger
}

func NewJobService() *JobService {
	return &JobService{
		jobRepo: repo.NewJobRepository(),
		logger:  sitetrack.Logger,
	}
}

func (slf *JobService) FindAll() ([]models.Job, error) {
	jobs, err := slf.jobRepo.FindAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error getting jobs")
		return nil, err
	}
	return jobs, nil
}

// FindByID retrieves a job by ID with its phases
func (slf *JobService) FindByID(id uint) (*models.Job, error) {
	job, err := slf.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error getting job")
		return nil, err
	}
	return &job, nil
}

func (slf *JobService) Create(job models.Job) (*models.Job, error) {
	if err := slf.jobRepo.Create(&job); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating job")
		return nil, err
	}
	return &job, nil
}

// Update applies a partial patch to job fields (not phases).
func (slf *JobService) Update(id uint, patch map[string]any) (*models.Job, error) {
	if err := slf.jobRepo.Update(id, patch); err != nil {
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error updating job")
		return nil, err
	}
	return slf.FindByID(id)
}

func (slf *JobService) Delete(id uint) error {
	if err := slf.jobRepo.Delete(id); err != nil {
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error deleting job")
		return err
	}
	return nil
}
