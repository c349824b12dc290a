package endpoints

import (
	"net/http"
	"sitetrack"
	"sitetrack/internal/api/handler/mapper"
	"sitetrack/internal/api/handler/middleware"
	"sitetrack/internal/api/handler/request"
	"sitetrack/internal/api/handler/response"
	"sitetrack/internal/api/service"
	"sitetrack/internal/api/websocket"
	"sitetrack/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type csvHandler struct {
	uploadService *service.CsvUploadService
	config        sitetrack.AppConfig
	logger        zerolog.Logger
}

func newCsvHandler(hub *websocket.Hub) *csvHandler {
	return &csvHandler{
		uploadService: service.NewCsvUploadService(hub),
		config:        sitetrack.GetConfig(),
		logger:        sitetrack.Logger,
	}
}

func CsvHandler(router *graceful.Graceful, hub *websocket.Hub) {
	h := newCsvHandler(hub)

	routes := router.Group("/api/v1/csv")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.POST("/detect", h.detect)
		routes.POST("/upload", h.upload)
		routes.GET("/uploads", h.recentUploads)
		routes.DELETE("/uploads/:id", h.deleteUpload)
	}
}

// detect runs the spreadsheet through job detection without persisting
// anything, so the user can review before committing.
func (slf *csvHandler) detect(c *gin.Context) {
	var dto request.DetectJobs
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating detect DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	if !slf.withinSizeLimit(c, dto.Content) {
		return
	}

	result, err := slf.uploadService.DetectJobs(dto.Content)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to detect jobs in CSV content")
		c.JSON(http.StatusUnprocessableEntity, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (slf *csvHandler) upload(c *gin.Context) {
	var dto request.UploadCsv
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating upload DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	if !slf.withinSizeLimit(c, dto.Content) {
		return
	}

	upload, err := slf.uploadService.Upload(dto.Filename, dto.Content)
	if err != nil {
		if upload.ID != 0 {
			// Partial failure: some jobs may exist, the ledger says so.
			c.JSON(http.StatusMultiStatus, response.UploadResult{
				Upload:      mapper.ToCsvUploadResponse(upload),
				JobsCreated: upload.JobsCreated,
			})
			return
		}
		slf.logger.Error().Err(err).Str("filename", dto.Filename).Msg("Failed to upload CSV")
		c.JSON(http.StatusUnprocessableEntity, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.UploadResult{
		Upload:      mapper.ToCsvUploadResponse(upload),
		JobsCreated: upload.JobsCreated,
	})
}

func (slf *csvHandler) recentUploads(c *gin.Context) {
	uploads, err := slf.uploadService.RecentUploads()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to list uploads")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve uploads"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToCsvUploadResponses(uploads))
}

// deleteUpload removes the ledger entry only. Jobs created from the
// upload keep their provenance pointer and are deleted through the job
// endpoints.
func (slf *csvHandler) deleteUpload(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := slf.uploadService.DeleteUpload(id); err != nil {
		slf.logger.Error().Err(err).Uint("uploadId", id).Msg("Failed to delete upload")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to delete upload"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (slf *csvHandler) withinSizeLimit(c *gin.Context, content string) bool {
	if max := slf.config.CsvConfig.MaxUploadBytes; max > 0 && int64(len(content)) > max {
		c.JSON(http.StatusRequestEntityTooLarge, response.APIError{Message: "CSV content exceeds the upload size limit"})
		return false
	}
	return true
}
