package service

import (
	"crypto/sha256"
	"encoding/hex"
	"math"

	"sitetrack"
	"sitetrack/internal/api/models"
	"sitetrack/internal/api/repo"
	"sitetrack/internal/api/websocket"
	"sitetrack/internal/detect"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const recentUploadsLimit = 20

// Narrow persistence contracts the registrar works against. The gorm
// repositories satisfy them; tests use in-memory fakes.
type jobWriter interface {
	Create(job *models.Job) error
}

type uploadLedger interface {
	Create(upload *models.CsvUpload) error
	UpdateStatus(id uint, status models.CsvUploadStatus, jobsCreated int) error
	FindRecent(limit int) ([]models.CsvUpload, error)
	Delete(id uint) error
}

type detectionCache interface {
	Get(hash string) (detect.Result, bool)
	Set(hash string, result detect.Result)
}

type eventSink interface {
	Publish(eventType string, payload any)
}

// CsvUploadService turns an approved detection result into persisted
// jobs and keeps the upload ledger.
type CsvUploadService struct {
	detector             detect.Detector
	jobs                 jobWriter
	uploads              uploadLedger
	cache                detectionCache
	events               eventSink
	standardDayRatePence int
	logger               zerolog.Logger
}

func NewCsvUploadService(hub *websocket.Hub) *CsvUploadService {
	cfg := sitetrack.GetConfig()
	return &CsvUploadService{
		detector:             detect.NewDetector(sitetrack.Logger),
		jobs:                 repo.NewJobRepository(),
		uploads:              repo.NewCsvUploadRepository(),
		cache:                newRedisDetectionCache(cfg.CsvConfig.DetectionCacheTTL),
		events:               hub,
		standardDayRatePence: cfg.StandardDayRatePence,
		logger:               sitetrack.Logger,
	}
}

// DetectJobs runs detection, memoized by content hash so the review step
// and the subsequent upload of the same file share one parse. A cache
// failure just means detecting again.
func (slf *CsvUploadService) DetectJobs(content string) (detect.Result, error) {
	hash := ContentHash(content)
	if slf.cache != nil {
		if result, ok := slf.cache.Get(hash); ok {
			return result, nil
		}
	}

	result, err := slf.detector.Detect(content)
	if err != nil {
		slf.logger.Error().Err(err).Msg("CSV detection failed")
		return detect.Result{}, err
	}

	if slf.cache != nil {
		slf.cache.Set(hash, result)
	}
	return result, nil
}

// Upload persists one Job with its Phases per detected job that carries
// a name, and records the ledger row. If a job fails partway through the
// batch the upload is marked failed with the count actually created;
// jobs already created stay in place. Partial success is surfaced, never
// rolled back or hidden.
func (slf *CsvUploadService) Upload(filename, content string) (models.CsvUpload, error) {
	result, err := slf.DetectJobs(content)
	if err != nil {
		return models.CsvUpload{}, err
	}

	upload := models.CsvUpload{
		Reference:   uuid.NewString(),
		Filename:    filename,
		Content:     content,
		ContentHash: ContentHash(content),
		Status:      models.CsvUploadStatusPending,
	}
	if err := slf.uploads.Create(&upload); err != nil {
		slf.logger.Error().Err(err).Str("filename", filename).Msg("Failed to create upload ledger row")
		return models.CsvUpload{}, err
	}

	created := 0
	for _, detected := range result.Jobs {
		if detected.Name == "" {
			continue
		}
		job := slf.buildJob(detected, upload.ID)
		if err := slf.jobs.Create(&job); err != nil {
			slf.logger.Error().Err(err).
				Str("jobTitle", detected.Name).
				Int("jobsCreated", created).
				Msg("Job persistence failed partway through upload batch")

			upload.Status = models.CsvUploadStatusFailed
			upload.JobsCreated = created
			if uerr := slf.uploads.UpdateStatus(upload.ID, models.CsvUploadStatusFailed, created); uerr != nil {
				slf.logger.Error().Err(uerr).Uint("uploadId", upload.ID).Msg("Failed to mark upload as failed")
			}
			slf.publish("upload.failed", upload)
			return upload, err
		}
		created++
	}

	upload.Status = models.CsvUploadStatusCompleted
	upload.JobsCreated = created
	if err := slf.uploads.UpdateStatus(upload.ID, models.CsvUploadStatusCompleted, created); err != nil {
		slf.logger.Error().Err(err).Uint("uploadId", upload.ID).Msg("Failed to mark upload as completed")
		return upload, err
	}

	slf.logger.Info().Uint("uploadId", upload.ID).Int("jobsCreated", created).Msg("CSV upload completed")
	slf.publish("upload.completed", upload)
	return upload, nil
}

// RecentUploads returns ledger rows newest first.
func (slf *CsvUploadService) RecentUploads() ([]models.CsvUpload, error) {
	uploads, err := slf.uploads.FindRecent(recentUploadsLimit)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to list uploads")
		return nil, err
	}
	return uploads, nil
}

// DeleteUpload removes only the ledger row; jobs created from it are
// independently owned and stay. Deleting an unknown id is a no-op.
func (slf *CsvUploadService) DeleteUpload(id uint) error {
	if err := slf.uploads.Delete(id); err != nil {
		slf.logger.Error().Err(err).Uint("uploadId", id).Msg("Failed to delete upload")
		return err
	}
	return nil
}

func (slf *CsvUploadService) buildJob(detected detect.Job, uploadID uint) models.Job {
	phases := make([]models.Phase, 0, len(detected.PhaseCosts))
	for _, pc := range detected.PhaseCosts {
		phases = append(phases, models.Phase{
			PhaseName:          pc.PhaseName,
			LabourCostPence:    pc.LabourPence,
			MaterialCostPence:  pc.MaterialPence,
			RequiredLabourDays: slf.labourDays(pc.LabourPence),
			Status:             models.PhaseStatusPending,
		})
	}
	return models.Job{
		Title:       detected.Name,
		Address:     detected.Address,
		PostCode:    detected.PostCode,
		ProjectType: detected.ProjectType,
		Status:      models.JobStatusDraft,
		CsvUploadID: &uploadID,
		Phases:      phases,
	}
}

// labourDays converts a phase's labour cost into required labour-days at
// the standard day rate, rounded up to the quarter day.
func (slf *CsvUploadService) labourDays(labourPence int) float64 {
	if slf.standardDayRatePence <= 0 || labourPence <= 0 {
		return 0
	}
	days := float64(labourPence) / float64(slf.standardDayRatePence)
	return math.Ceil(days*4) / 4
}

func (slf *CsvUploadService) publish(eventType string, upload models.CsvUpload) {
	if slf.events != nil {
		slf.events.Publish(eventType, upload)
	}
}

// ContentHash is the dedup key for textually identical uploads.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
