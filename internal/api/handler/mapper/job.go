package mapper

import (
	"sitetrack/internal/api/handler/request"
	"sitetrack/internal/api/handler/response"
	"sitetrack/internal/api/models"
)

func CreateJobToModel(req request.CreateJob) models.Job {
	status := req.Status
	if status == "" {
		status = models.JobStatusDraft
	}
	phases := make([]models.Phase, len(req.Phases))
	for i, p := range req.Phases {
		phases[i] = models.Phase{
			PhaseName:          p.PhaseName,
			LabourCostPence:    p.LabourCost,
			MaterialCostPence:  p.MaterialCost,
			RequiredLabourDays: p.RequiredLabourDays,
			Status:             models.PhaseStatusPending,
		}
	}
	return models.Job{
		Title:       req.Title,
		Address:     req.Address,
		PostCode:    req.PostCode,
		ProjectType: req.ProjectType,
		Status:      status,
		Phases:      phases,
	}
}

func UpdateJobToPatch(req request.UpdateJob) map[string]any {
	patch := map[string]any{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Address != nil {
		patch["address"] = *req.Address
	}
	if req.PostCode != nil {
		patch["post_code"] = *req.PostCode
	}
	if req.ProjectType != nil {
		patch["project_type"] = *req.ProjectType
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	return patch
}

func ToJobResponse(j models.Job) response.Job {
	phases := make([]response.Phase, len(j.Phases))
	for i, p := range j.Phases {
		phases[i] = ToPhaseResponse(p)
	}
	return response.Job{
		ID:          j.ID,
		Title:       j.Title,
		Address:     j.Address,
		PostCode:    j.PostCode,
		ProjectType: j.ProjectType,
		Status:      j.Status,
		CsvUploadID: j.CsvUploadID,
		Phases:      phases,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func ToJobResponses(jobs []models.Job) []response.Job {
	out := make([]response.Job, len(jobs))
	for i, j := range jobs {
		out[i] = ToJobResponse(j)
	}
	return out
}

func ToPhaseResponse(p models.Phase) response.Phase {
	return response.Phase{
		ID:                 p.ID,
		JobID:              p.JobID,
		PhaseName:          p.PhaseName,
		LabourCost:         p.LabourCostPence,
		MaterialCost:       p.MaterialCostPence,
		RequiredLabourDays: p.RequiredLabourDays,
		Status:             p.Status,
	}
}
