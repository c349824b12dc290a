package repo

import (
	"sitetrack"
	"sitetrack/internal/api/models"

	"gorm.io/gorm"
)

type CsvUploadRepository struct {
	Db *gorm.DB
}

func NewCsvUploadRepository() *CsvUploadRepository {
	return &CsvUploadRepository{Db: sitetrack.DB}
}

func (slf *CsvUploadRepository) Create(upload *models.CsvUpload) error {
	return slf.Db.Create(upload).Error
}

func (slf *CsvUploadRepository) UpdateStatus(id uint, status models.CsvUploadStatus, jobsCreated int) error {
	return slf.Db.Model(&models.CsvUpload{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "jobs_created": jobsCreated}).Error
}

func (slf *CsvUploadRepository) FindByID(id uint) (models.CsvUpload, error) {
	var upload models.CsvUpload
	err := slf.Db.First(&upload, id).Error
	return upload, err
}

// FindRecent returns ledger rows newest first.
func (slf *CsvUploadRepository) FindRecent(limit int) ([]models.CsvUpload, error) {
	var uploads []models.CsvUpload
	err := slf.Db.Order("created_at DESC").Limit(limit).Find(&uploads).Error
	return uploads, err
}

// Delete removes only the ledger row. Missing ids are a no-op.
func (slf *CsvUploadRepository) Delete(id uint) error {
	return slf.Db.Delete(&models.CsvUpload{}, id).Error
}
