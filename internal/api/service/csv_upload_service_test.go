package service

import (
	"errors"
	"testing"

	"sitetrack/internal/api/models"
	"sitetrack/internal/detect"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const uploadCsv = `Name,Site A
Address,1 High Street
Phase,Trade,Labour Cost,Material Cost
Groundworks,General Labourer,£300.00,£100.00
Plumbing,Plumber,£250.00,£50.00

Name,Site B
Phase,Trade,Labour Cost,Material Cost
Electrical,Electrician,£240.00,£0.00
`

type fakeJobWriter struct {
	jobs   []models.Job
	failOn string
}

func (f *fakeJobWriter) Create(job *models.Job) error {
	if f.failOn != "" && job.Title == f.failOn {
		return errors.New("insert failed")
	}
	job.ID = uint(len(f.jobs) + 1)
	f.jobs = append(f.jobs, *job)
	return nil
}

type fakeUploadLedger struct {
	rows   map[uint]*models.CsvUpload
	nextID uint
}

func newFakeUploadLedger() *fakeUploadLedger {
	return &fakeUploadLedger{rows: make(map[uint]*models.CsvUpload)}
}

func (f *fakeUploadLedger) Create(upload *models.CsvUpload) error {
	f.nextID++
	upload.ID = f.nextID
	stored := *upload
	f.rows[upload.ID] = &stored
	return nil
}

func (f *fakeUploadLedger) UpdateStatus(id uint, status models.CsvUploadStatus, jobsCreated int) error {
	row, ok := f.rows[id]
	if !ok {
		return errors.New("upload not found")
	}
	row.Status = status
	row.JobsCreated = jobsCreated
	return nil
}

func (f *fakeUploadLedger) FindRecent(limit int) ([]models.CsvUpload, error) {
	var out []models.CsvUpload
	for _, row := range f.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (f *fakeUploadLedger) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

type fakeDetectionCache struct {
	store map[string]detect.Result
	hits  int
	sets  int
}

func newFakeDetectionCache() *fakeDetectionCache {
	return &fakeDetectionCache{store: make(map[string]detect.Result)}
}

func (f *fakeDetectionCache) Get(hash string) (detect.Result, bool) {
	result, ok := f.store[hash]
	if ok {
		f.hits++
	}
	return result, ok
}

func (f *fakeDetectionCache) Set(hash string, result detect.Result) {
	f.sets++
	f.store[hash] = result
}

func newTestCsvUploadService(jw *fakeJobWriter) (*CsvUploadService, *fakeUploadLedger, *fakeDetectionCache, *fakeEventSink) {
	ledger := newFakeUploadLedger()
	cache := newFakeDetectionCache()
	sink := &fakeEventSink{}
	svc := &CsvUploadService{
		detector:             detect.NewDetector(zerolog.Nop()),
		jobs:                 jw,
		uploads:              ledger,
		cache:                cache,
		events:               sink,
		standardDayRatePence: 12000,
		logger:               zerolog.Nop(),
	}
	return svc, ledger, cache, sink
}

func TestUpload_CreatesJobsAndCompletesLedger(t *testing.T) {
	jw := &fakeJobWriter{}
	svc, ledger, _, sink := newTestCsvUploadService(jw)

	upload, err := svc.Upload("jobs.csv", uploadCsv)
	require.NoError(t, err)

	assert.Equal(t, models.CsvUploadStatusCompleted, upload.Status)
	assert.Equal(t, 2, upload.JobsCreated)
	assert.NotEmpty(t, upload.Reference)
	assert.Equal(t, ContentHash(uploadCsv), upload.ContentHash)

	require.Len(t, jw.jobs, 2)
	siteA := jw.jobs[0]
	assert.Equal(t, "Site A", siteA.Title)
	assert.Equal(t, "1 High Street", siteA.Address)
	assert.Equal(t, models.JobStatusDraft, siteA.Status)
	require.NotNil(t, siteA.CsvUploadID)
	assert.Equal(t, upload.ID, *siteA.CsvUploadID)

	row := ledger.rows[upload.ID]
	require.NotNil(t, row)
	assert.Equal(t, models.CsvUploadStatusCompleted, row.Status)
	assert.Equal(t, 2, row.JobsCreated)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "upload.completed", sink.events[0].eventType)
}

func TestUpload_PhasesCarryCostsAndLabourDays(t *testing.T) {
	jw := &fakeJobWriter{}
	svc, _, _, _ := newTestCsvUploadService(jw)

	_, err := svc.Upload("jobs.csv", uploadCsv)
	require.NoError(t, err)
	require.Len(t, jw.jobs, 2)

	siteA := jw.jobs[0]
	require.Len(t, siteA.Phases, 2)

	groundworks := siteA.Phases[0]
	assert.Equal(t, "Groundworks", groundworks.PhaseName)
	assert.Equal(t, 30000, groundworks.LabourCostPence)
	assert.Equal(t, 10000, groundworks.MaterialCostPence)
	// 30000p at the 12000p standard day rate is exactly 2.5 days.
	assert.Equal(t, 2.5, groundworks.RequiredLabourDays)

	plumbing := siteA.Phases[1]
	assert.Equal(t, 25000, plumbing.LabourCostPence)
	// 25000/12000 ~= 2.083 rounds up to the next quarter day.
	assert.Equal(t, 2.25, plumbing.RequiredLabourDays)

	siteB := jw.jobs[1]
	require.Len(t, siteB.Phases, 1)
	assert.Equal(t, 2.0, siteB.Phases[0].RequiredLabourDays)
}

func TestUpload_PartialFailureIsSurfacedNotRolledBack(t *testing.T) {
	jw := &fakeJobWriter{failOn: "Site B"}
	svc, ledger, _, sink := newTestCsvUploadService(jw)

	upload, err := svc.Upload("jobs.csv", uploadCsv)
	require.Error(t, err)

	// Site A survived; the ledger says exactly how far the batch got.
	require.Len(t, jw.jobs, 1)
	assert.Equal(t, "Site A", jw.jobs[0].Title)

	assert.Equal(t, models.CsvUploadStatusFailed, upload.Status)
	assert.Equal(t, 1, upload.JobsCreated)

	row := ledger.rows[upload.ID]
	require.NotNil(t, row)
	assert.Equal(t, models.CsvUploadStatusFailed, row.Status)
	assert.Equal(t, 1, row.JobsCreated)

	require.Len(t, sink.events, 1)
	assert.Equal(t, "upload.failed", sink.events[0].eventType)
}

func TestUpload_EmptyContentCompletesWithNoJobs(t *testing.T) {
	jw := &fakeJobWriter{}
	svc, _, _, _ := newTestCsvUploadService(jw)

	upload, err := svc.Upload("empty.csv", "")
	require.NoError(t, err)

	assert.Equal(t, models.CsvUploadStatusCompleted, upload.Status)
	assert.Zero(t, upload.JobsCreated)
	assert.Empty(t, jw.jobs)
}

func TestDetectJobs_MemoizedByContentHash(t *testing.T) {
	svc, _, cache, _ := newTestCsvUploadService(&fakeJobWriter{})

	first, err := svc.DetectJobs(uploadCsv)
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalJobs)
	assert.Equal(t, 1, cache.sets)
	assert.Zero(t, cache.hits)

	second, err := svc.DetectJobs(uploadCsv)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 1, cache.hits)
}

func TestDeleteUpload_IsIdempotent(t *testing.T) {
	svc, ledger, _, _ := newTestCsvUploadService(&fakeJobWriter{})

	upload, err := svc.Upload("jobs.csv", uploadCsv)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUpload(upload.ID))
	assert.NotContains(t, ledger.rows, upload.ID)

	// Deleting again, or deleting an id that never existed, is a no-op.
	require.NoError(t, svc.DeleteUpload(upload.ID))
	require.NoError(t, svc.DeleteUpload(9999))
}

func TestLabourDays_RoundsUpToQuarterDays(t *testing.T) {
	svc := &CsvUploadService{standardDayRatePence: 12000}

	cases := []struct {
		pence int
		days  float64
	}{
		{0, 0},
		{3000, 0.25},
		{3001, 0.5},
		{12000, 1},
		{25000, 2.25},
		{30000, 2.5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.days, svc.labourDays(tc.pence), "pence=%d", tc.pence)
	}
}
