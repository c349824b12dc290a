package mapper

import (
	"sitetrack/internal/api/handler/request"
	"sitetrack/internal/api/handler/response"
	"sitetrack/internal/api/models"
)

func CreateContractorToModel(req request.CreateContractor) models.Contractor {
	return models.Contractor{
		Name:      req.Name,
		Trade:     req.Trade,
		Email:     req.Email,
		Phone:     req.Phone,
		CISStatus: req.CISStatus,
		Active:    true,
	}
}

func UpdateContractorToPatch(req request.UpdateContractor) map[string]any {
	patch := map[string]any{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Trade != nil {
		patch["trade"] = *req.Trade
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}
	if req.CISStatus != nil {
		patch["cis_status"] = *req.CISStatus
	}
	if req.Active != nil {
		patch["active"] = *req.Active
	}
	return patch
}

func ToContractorResponse(c models.Contractor) response.Contractor {
	return response.Contractor{
		ID:        c.ID,
		Name:      c.Name,
		Trade:     c.Trade,
		Email:     c.Email,
		Phone:     c.Phone,
		CISStatus: c.CISStatus,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}

func ToContractorResponses(contractors []models.Contractor) []response.Contractor {
	out := make([]response.Contractor, len(contractors))
	for i, c := range contractors {
		out[i] = ToContractorResponse(c)
	}
	return out
}
