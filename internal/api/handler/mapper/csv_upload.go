package mapper

import (
	"sitetrack/internal/api/handler/response"
	"sitetrack/internal/api/models"
)

func ToCsvUploadResponse(u models.CsvUpload) response.CsvUpload {
	return response.CsvUpload{
		ID:          u.ID,
		Reference:   u.Reference,
		Filename:    u.Filename,
		Status:      u.Status,
		JobsCreated: u.JobsCreated,
		CreatedAt:   u.CreatedAt,
	}
}

func ToCsvUploadResponses(uploads []models.CsvUpload) []response.CsvUpload {
	out := make([]response.CsvUpload, len(uploads))
	for i, u := range uploads {
		out[i] = ToCsvUploadResponse(u)
	}
	return out
}
