package service

import (
	"testing"
	"time"

	"sitetrack/internal/api/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePhaseReader struct {
	phases []models.Phase
}

func (f *fakePhaseReader) FindPhasesByJob(jobID uint) ([]models.Phase, error) {
	return f.phases, nil
}

type fakeAssignmentStore struct {
	open    []models.Assignment
	created []models.Assignment
	nextID  uint
}

func (f *fakeAssignmentStore) Create(assignment *models.Assignment) error {
	f.nextID++
	assignment.ID = f.nextID
	f.created = append(f.created, *assignment)
	return nil
}

func (f *fakeAssignmentStore) FindByID(id uint) (models.Assignment, error) {
	for _, a := range f.created {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Assignment{}, gorm.ErrRecordNotFound
}

func (f *fakeAssignmentStore) FindByJob(jobID uint) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range f.created {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentStore) FindOpenByJob(jobID uint) ([]models.Assignment, error) {
	return f.open, nil
}

func (f *fakeAssignmentStore) Delete(id uint) error {
	return nil
}

type fakeContractorReader struct {
	contractors []models.Contractor
}

func (f *fakeContractorReader) FindByIDs(ids []uint) ([]models.Contractor, error) {
	return f.contractors, nil
}

type recordedEvent struct {
	eventType string
	payload   any
}

type fakeEventSink struct {
	events []recordedEvent
}

func (f *fakeEventSink) Publish(eventType string, payload any) {
	f.events = append(f.events, recordedEvent{eventType, payload})
}

func newTestAssignmentService(phases []models.Phase, store *fakeAssignmentStore) (*AssignmentService, *fakeEventSink) {
	if store == nil {
		store = &fakeAssignmentStore{}
	}
	sink := &fakeEventSink{}
	svc := &AssignmentService{
		phases:      &fakePhaseReader{phases: phases},
		assignments: store,
		contractors: &fakeContractorReader{},
		events:      sink,
		logger:      zerolog.Nop(),
	}
	return svc, sink
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func phasesWithDays(days ...float64) []models.Phase {
	phases := make([]models.Phase, len(days))
	for i, d := range days {
		phases[i] = models.Phase{
			PhaseName:          []string{"Groundworks", "Plumbing", "Electrical", "Roofing"}[i%4],
			RequiredLabourDays: d,
		}
	}
	return phases
}

func TestValidateTime_NoLabourDataIsOK(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(0, 0), nil)

	v, err := svc.ValidateTime(1, nil, day(2026, 3, 2), day(2026, 3, 6), 1)
	require.NoError(t, err)

	assert.Equal(t, TimeValidationOK, v.Status)
	assert.Zero(t, v.RequiredDays)
	assert.Equal(t, 5, v.AvailableDays)
}

func TestValidateTime_SufficientSchedule(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(3, 2), nil)

	// 5 required, 7 available.
	v, err := svc.ValidateTime(1, nil, day(2026, 3, 2), day(2026, 3, 8), 1)
	require.NoError(t, err)

	assert.Equal(t, TimeValidationOK, v.Status)
	assert.Equal(t, 5.0, v.RequiredDays)
	assert.Equal(t, 7, v.AvailableDays)
}

func TestValidateTime_ExactFitIsOK(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(3, 2), nil)

	// 5 required, exactly 5 available.
	v, err := svc.ValidateTime(1, nil, day(2026, 3, 2), day(2026, 3, 6), 1)
	require.NoError(t, err)

	assert.Equal(t, TimeValidationOK, v.Status)
}

func TestValidateTime_TightSchedule(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(3, 2), nil)

	// 5 required, 4 available: 4 >= 5*0.75 so tight, not insufficient.
	v, err := svc.ValidateTime(1, nil, day(2026, 3, 2), day(2026, 3, 5), 1)
	require.NoError(t, err)

	assert.Equal(t, TimeValidationWarning, v.Status)
	assert.Equal(t, 4, v.AvailableDays)
}

func TestValidateTime_TightBoundaryInclusive(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(4), nil)

	// 4 required, 3 available: exactly 0.75 of required is still a warning.
	v, err := svc.ValidateTime(1, nil, day(2026, 3, 2), day(2026, 3, 4), 1)
	require.NoError(t, err)

	assert.Equal(t, TimeValidationWarning, v.Status)
}

func TestValidateTime_InsufficientSchedule(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(8, 2), nil)

	// 10 required, 5 available.
	v, err := svc.ValidateTime(1, nil, day(2026, 3, 2), day(2026, 3, 6), 1)
	require.NoError(t, err)

	assert.Equal(t, TimeValidationError, v.Status)
}

func TestValidateTime_ContractorCountMultipliesAvailability(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(8, 2), nil)

	// Same window as the insufficient case but two contractors: 10 available.
	v, err := svc.ValidateTime(1, nil, day(2026, 3, 2), day(2026, 3, 6), 2)
	require.NoError(t, err)

	assert.Equal(t, TimeValidationOK, v.Status)
	assert.Equal(t, 10, v.AvailableDays)
}

func TestValidateTime_PhaseSelectionFiltersRequired(t *testing.T) {
	svc, _ := newTestAssignmentService([]models.Phase{
		{PhaseName: "Groundworks", RequiredLabourDays: 3},
		{PhaseName: "Plumbing", RequiredLabourDays: 2},
	}, nil)

	v, err := svc.ValidateTime(1, []string{"Plumbing"}, day(2026, 3, 2), day(2026, 3, 3), 1)
	require.NoError(t, err)

	assert.Equal(t, 2.0, v.RequiredDays)
	assert.Equal(t, TimeValidationOK, v.Status)
}

func TestValidateTime_UnknownPhaseNamesContributeNothing(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(3), nil)

	v, err := svc.ValidateTime(1, []string{"Demolition"}, day(2026, 3, 2), day(2026, 3, 2), 1)
	require.NoError(t, err)

	assert.Equal(t, TimeValidationOK, v.Status)
	assert.Zero(t, v.RequiredDays)
}

func TestValidateTime_SameDayCountsAsOne(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(1), nil)

	v, err := svc.ValidateTime(1, nil, day(2026, 3, 2), day(2026, 3, 2), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, v.AvailableDays)
	assert.Equal(t, TimeValidationOK, v.Status)
}

func TestValidateTime_TimeOfDayIsIgnored(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(2), nil)

	start := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 0, 15, 0, 0, time.UTC)
	v, err := svc.ValidateTime(1, nil, start, end, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, v.AvailableDays)
}

func TestSuggestEndDate_RoundsFractionalDaysUp(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(2.5), nil)

	end, err := svc.SuggestEndDate(1, nil, day(2026, 3, 2))
	require.NoError(t, err)

	// ceil(2.5) = 3 inclusive days: Mar 2, 3, 4.
	assert.Equal(t, day(2026, 3, 4), end)
}

func TestSuggestEndDate_SingleDayJob(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(1), nil)

	end, err := svc.SuggestEndDate(1, nil, day(2026, 3, 2))
	require.NoError(t, err)

	assert.Equal(t, day(2026, 3, 2), end)
}

func TestSuggestEndDate_NoLabourData(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(0), nil)

	_, err := svc.SuggestEndDate(1, nil, day(2026, 3, 2))
	assert.ErrorIs(t, err, ErrNoSuggestion)
}

func TestSuggestEndDate_SuggestionValidatesOK(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(3.25, 1.5), nil)

	start := day(2026, 3, 2)
	end, err := svc.SuggestEndDate(1, nil, start)
	require.NoError(t, err)

	v, err := svc.ValidateTime(1, nil, start, end, 1)
	require.NoError(t, err)
	assert.Equal(t, TimeValidationOK, v.Status)
}

func TestCosts_SumsSelectedPhases(t *testing.T) {
	svc, _ := newTestAssignmentService([]models.Phase{
		{PhaseName: "Groundworks", LabourCostPence: 50000, MaterialCostPence: 20000},
		{PhaseName: "Plumbing", LabourCostPence: 30000, MaterialCostPence: 5000},
	}, nil)

	all, err := svc.Costs(1, nil)
	require.NoError(t, err)
	assert.Equal(t, 80000, all.LabourCostPence)
	assert.Equal(t, 25000, all.MaterialCostPence)
	assert.Equal(t, 105000, all.TotalCostPence)

	one, err := svc.Costs(1, []string{"Plumbing"})
	require.NoError(t, err)
	assert.Equal(t, 35000, one.TotalCostPence)
}

func TestCreate_InvertedRangeIsRejected(t *testing.T) {
	svc, _ := newTestAssignmentService(phasesWithDays(2), nil)

	_, _, err := svc.Create(1, []uint{1}, nil, day(2026, 3, 6), day(2026, 3, 2), "")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreate_CountsOverlappingOpenAssignments(t *testing.T) {
	store := &fakeAssignmentStore{open: []models.Assignment{
		{SelectedPhases: []string{"Groundworks"}},
		{SelectedPhases: []string{"Roofing"}},
	}}
	svc, _ := newTestAssignmentService([]models.Phase{
		{PhaseName: "Groundworks", RequiredLabourDays: 6},
	}, store)

	// Only the Groundworks assignment overlaps this selection, so the crew
	// count is 2 and 3 calendar days give 6 available labour-days.
	_, verdict, err := svc.Create(1, []uint{1}, []string{"Groundworks"}, day(2026, 3, 2), day(2026, 3, 4), "")
	require.NoError(t, err)

	assert.Equal(t, 6, verdict.AvailableDays)
	assert.Equal(t, TimeValidationOK, verdict.Status)
}

func TestCreate_EmptySelectionOverlapsEverything(t *testing.T) {
	store := &fakeAssignmentStore{open: []models.Assignment{
		{SelectedPhases: []string{"Groundworks"}},
		{SelectedPhases: []string{"Roofing"}},
	}}
	svc, _ := newTestAssignmentService(phasesWithDays(1), store)

	_, verdict, err := svc.Create(1, []uint{1}, nil, day(2026, 3, 2), day(2026, 3, 2), "")
	require.NoError(t, err)

	// This booking plus both open assignments.
	assert.Equal(t, 3, verdict.AvailableDays)
}

func TestCreate_TightVerdictDoesNotBlockCreation(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc, sink := newTestAssignmentService(phasesWithDays(4), store)

	assignment, verdict, err := svc.Create(1, []uint{1}, nil, day(2026, 3, 2), day(2026, 3, 4), "bring PPE")
	require.NoError(t, err)

	assert.Equal(t, TimeValidationWarning, verdict.Status)
	assert.NotZero(t, assignment.ID)
	assert.Equal(t, models.AssignmentStatusScheduled, assignment.Status)
	assert.Len(t, store.created, 1)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "assignment.created", sink.events[0].eventType)
}

func TestCreate_NormalizesDatesToMidnight(t *testing.T) {
	store := &fakeAssignmentStore{}
	svc, _ := newTestAssignmentService(phasesWithDays(1), store)

	start := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC)
	assignment, _, err := svc.Create(1, []uint{1}, nil, start, end, "")
	require.NoError(t, err)

	assert.Equal(t, day(2026, 3, 2), assignment.StartDate)
	assert.Equal(t, day(2026, 3, 4), assignment.EndDate)
}

func TestFindByID_NotFound(t *testing.T) {
	svc, _ := newTestAssignmentService(nil, nil)

	_, err := svc.FindByID(99)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestInclusiveDays(t *testing.T) {
	assert.Equal(t, 1, inclusiveDays(day(2026, 3, 2), day(2026, 3, 2)))
	assert.Equal(t, 5, inclusiveDays(day(2026, 3, 2), day(2026, 3, 6)))
	assert.Equal(t, 0, inclusiveDays(day(2026, 3, 6), day(2026, 3, 2)))
}
