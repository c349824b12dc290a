package response

import (
	"time"

	"sitetrack/internal/api/models"
)

type CsvUpload struct {
	ID          uint                   `json:"id"`
	Reference   string                 `json:"reference"`
	Filename    string                 `json:"filename"`
	Status      models.CsvUploadStatus `json:"status"`
	JobsCreated int                    `json:"jobsCreated"`
	CreatedAt   time.Time              `json:"createdAt"`
}

type UploadResult struct {
	Upload      CsvUpload `json:"upload"`
	JobsCreated int       `json:"jobsCreated"`
}
