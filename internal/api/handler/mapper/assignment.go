package mapper

import (
	"time"

	"sitetrack/internal/api/handler/response"
	"sitetrack/internal/api/models"
)

// dateLayout is the wire format for assignment dates. Times of day are
// not tracked; the calendar day is the unit of scheduling.
const dateLayout = "2006-01-02"

func ToAssignmentResponse(a models.Assignment) response.Assignment {
	return response.Assignment{
		ID:                  a.ID,
		JobID:               a.JobID,
		Contractors:         ToContractorResponses(a.Contractors),
		SelectedPhases:      a.SelectedPhases,
		StartDate:           a.StartDate.Format(dateLayout),
		EndDate:             a.EndDate.Format(dateLayout),
		SpecialInstructions: a.SpecialInstructions,
		Status:              a.Status,
		CreatedAt:           a.CreatedAt,
	}
}

func ToAssignmentResponses(assignments []models.Assignment) []response.Assignment {
	out := make([]response.Assignment, len(assignments))
	for i, a := range assignments {
		out[i] = ToAssignmentResponse(a)
	}
	return out
}

func ToSuggestedEndDateResponse(endDate time.Time, available bool) response.SuggestedEndDate {
	res := response.SuggestedEndDate{Available: available}
	if available {
		res.EndDate = endDate.Format(dateLayout)
	}
	return res
}

// ParseDate parses a wire-format calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
