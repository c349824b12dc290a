package request

type CreateAssignment struct {
	JobID               uint     `json:"jobId" validate:"required"`
	ContractorIDs       []uint   `json:"contractorIds" validate:"required,min=1"`
	SelectedPhases      []string `json:"selectedPhases"` // empty means all phases
	StartDate           string   `json:"startDate" validate:"required"`
	EndDate             string   `json:"endDate" validate:"required"`
	SpecialInstructions string   `json:"specialInstructions"`
}
