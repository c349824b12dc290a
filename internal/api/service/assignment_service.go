package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"sitetrack"
	"sitetrack/internal/api/models"
	"sitetrack/internal/api/repo"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type TimeValidationStatus string

const (
	TimeValidationOK      TimeValidationStatus = "ok"
	TimeValidationWarning TimeValidationStatus = "warning"
	TimeValidationError   TimeValidationStatus = "error"
)

// tightScheduleRatio: below this fraction of the required labour-days
// the schedule is insufficient rather than merely tight.
const tightScheduleRatio = 0.75

// TimeValidation is the tri-state verdict on a proposed schedule. It is
// always a classification, never an exception: the caller decides
// whether to block assignment creation.
type TimeValidation struct {
	RequiredDays  float64              `json:"requiredDays"`
	AvailableDays int                  `json:"availableDays"`
	Status        TimeValidationStatus `json:"status"`
	Message       string               `json:"message"`
}

type AssignmentCosts struct {
	LabourCostPence   int `json:"labourCost"`
	MaterialCostPence int `json:"materialCost"`
	TotalCostPence    int `json:"totalCost"`
}

var (
	ErrNoSuggestion       = errors.New("no labour-time data to suggest an end date from")
	ErrInvalidDateRange   = errors.New("end date is before start date")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

type phaseReader interface {
	FindPhasesByJob(jobID uint) ([]models.Phase, error)
}

type assignmentStore interface {
	Create(assignment *models.Assignment) error
	FindByID(id uint) (models.Assignment, error)
	FindByJob(jobID uint) ([]models.Assignment, error)
	FindOpenByJob(jobID uint) ([]models.Assignment, error)
	Delete(id uint) error
}

type contractorReader interface {
	FindByIDs(ids []uint) ([]models.Contractor, error)
}

// AssignmentService books contractors onto jobs and reconciles required
// labour-days against proposed calendar windows.
type AssignmentService struct {
	phases      phaseReader
	assignments assignmentStore
	contractors contractorReader
	events      eventSink
	logger      zerolog.Logger
}

func NewAssignmentService(events eventSink) *AssignmentService {
	return &AssignmentService{
		phases:      repo.NewJobRepository(),
		assignments: repo.NewAssignmentRepository(),
		contractors: repo.NewContractorRepository(),
		events:      events,
		logger:      sitetrack.Logger,
	}
}

// ValidateTime classifies whether the proposed window gives the selected
// phases enough contractor-days. An empty phase selection means every
// phase on the job; selected names the job does not have contribute
// nothing rather than failing.
func (slf *AssignmentService) ValidateTime(jobID uint, selectedPhases []string, start, end time.Time, contractorCount int) (TimeValidation, error) {
	phases, err := slf.phases.FindPhasesByJob(jobID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Failed to load phases for time validation")
		return TimeValidation{}, err
	}

	required := requiredDays(phases, selectedPhases)
	if contractorCount < 1 {
		contractorCount = 1
	}
	available := inclusiveDays(start, end) * contractorCount

	v := TimeValidation{RequiredDays: required, AvailableDays: available}
	switch {
	case required == 0:
		v.Status = TimeValidationOK
		v.Message = "No labour-time data recorded for the selected phases"
	case float64(available) >= required:
		v.Status = TimeValidationOK
		v.Message = fmt.Sprintf("Schedule covers the required %s labour-days with %s spare",
			fmtDays(required), fmtDays(float64(available)-required))
	case float64(available) >= required*tightScheduleRatio:
		v.Status = TimeValidationWarning
		v.Message = fmt.Sprintf("Schedule is tight: %s labour-days short of the required %s",
			fmtDays(required-float64(available)), fmtDays(required))
	default:
		v.Status = TimeValidationError
		v.Message = fmt.Sprintf("Schedule is insufficient: %s labour-days short of the required %s",
			fmtDays(required-float64(available)), fmtDays(required))
	}
	return v, nil
}

// SuggestEndDate pre-fills the earliest end date that makes the window
// sufficient for one contractor: start + requiredDays - 1, inclusive.
func (slf *AssignmentService) SuggestEndDate(jobID uint, selectedPhases []string, start time.Time) (time.Time, error) {
	phases, err := slf.phases.FindPhasesByJob(jobID)
	if err != nil {
		return time.Time{}, err
	}

	required := requiredDays(phases, selectedPhases)
	if required <= 0 {
		return time.Time{}, ErrNoSuggestion
	}
	days := int(math.Ceil(required))
	return startOfDay(start).AddDate(0, 0, days-1), nil
}

// Costs sums the persisted phase costs over the selection.
func (slf *AssignmentService) Costs(jobID uint, selectedPhases []string) (AssignmentCosts, error) {
	phases, err := slf.phases.FindPhasesByJob(jobID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Failed to load phases for costing")
		return AssignmentCosts{}, err
	}

	var costs AssignmentCosts
	for _, phase := range phases {
		if !phaseSelected(phase.PhaseName, selectedPhases) {
			continue
		}
		costs.LabourCostPence += phase.LabourCostPence
		costs.MaterialCostPence += phase.MaterialCostPence
	}
	costs.TotalCostPence = costs.LabourCostPence + costs.MaterialCostPence
	return costs, nil
}

// Create books an assignment and returns it with its schedule verdict.
// The concurrency count is the number of open assignments on the job
// whose phase selections intersect this one, this one included. Only an
// inverted date range blocks creation; a tight or insufficient verdict
// is the caller's call.
func (slf *AssignmentService) Create(jobID uint, contractorIDs []uint, selectedPhases []string, start, end time.Time, instructions string) (models.Assignment, TimeValidation, error) {
	if inclusiveDays(start, end) == 0 {
		return models.Assignment{}, TimeValidation{}, ErrInvalidDateRange
	}

	contractors, err := slf.contractors.FindByIDs(contractorIDs)
	if err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Failed to load contractors for assignment")
		return models.Assignment{}, TimeValidation{}, err
	}

	open, err := slf.assignments.FindOpenByJob(jobID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Failed to load open assignments")
		return models.Assignment{}, TimeValidation{}, err
	}
	contractorCount := 1
	for _, existing := range open {
		if models.PhasesOverlap(existing.SelectedPhases, selectedPhases) {
			contractorCount++
		}
	}

	verdict, err := slf.ValidateTime(jobID, selectedPhases, start, end, contractorCount)
	if err != nil {
		return models.Assignment{}, TimeValidation{}, err
	}

	assignment := models.Assignment{
		JobID:               jobID,
		Contractors:         contractors,
		SelectedPhases:      selectedPhases,
		StartDate:           startOfDay(start),
		EndDate:             startOfDay(end),
		SpecialInstructions: instructions,
		Status:              models.AssignmentStatusScheduled,
	}
	if err := slf.assignments.Create(&assignment); err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Failed to create assignment")
		return models.Assignment{}, TimeValidation{}, err
	}

	if slf.events != nil {
		slf.events.Publish("assignment.created", assignment)
	}
	return assignment, verdict, nil
}

func (slf *AssignmentService) FindByJob(jobID uint) ([]models.Assignment, error) {
	return slf.assignments.FindByJob(jobID)
}

func (slf *AssignmentService) FindByID(id uint) (models.Assignment, error) {
	assignment, err := slf.assignments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrAssignmentNotFound
		}
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (slf *AssignmentService) Delete(id uint) error {
	return slf.assignments.Delete(id)
}

func requiredDays(phases []models.Phase, selectedPhases []string) float64 {
	total := 0.0
	for _, phase := range phases {
		if phaseSelected(phase.PhaseName, selectedPhases) {
			total += phase.RequiredLabourDays
		}
	}
	return total
}

func phaseSelected(phaseName string, selectedPhases []string) bool {
	if len(selectedPhases) == 0 {
		return true
	}
	for _, name := range selectedPhases {
		if name == phaseName {
			return true
		}
	}
	return false
}

// inclusiveDays counts calendar days in [start, end]; the same day
// counts as 1, an inverted range as 0.
func inclusiveDays(start, end time.Time) int {
	s := startOfDay(start)
	e := startOfDay(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func fmtDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}
