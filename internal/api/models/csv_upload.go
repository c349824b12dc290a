package models

import "time"

type CsvUploadStatus string

const (
	CsvUploadStatusPending   CsvUploadStatus = "pending"
	CsvUploadStatusCompleted CsvUploadStatus = "completed"
	CsvUploadStatusFailed    CsvUploadStatus = "failed"
)

// CsvUpload is the ledger entry for one spreadsheet import. The raw
// content is retained for audit and redo. It is pure provenance: jobs
// created from it are independently owned afterwards.
type CsvUpload struct {
	ID          uint            `gorm:"primaryKey"`
	Reference   string          `gorm:"uniqueIndex"`
	Filename    string
	Content     string          `gorm:"type:text"`
	ContentHash string          `gorm:"index"`
	Status      CsvUploadStatus `gorm:"default:pending"`
	JobsCreated int
	CreatedAt   time.Time
}

func (CsvUpload) TableName() string {
	return "csv_uploads"
}
