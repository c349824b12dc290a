package endpoints

import (
	"errors"
	"net/http"
	"sitetrack"
	"sitetrack/internal/api/handler/mapper"
	"sitetrack/internal/api/handler/middleware"
	"sitetrack/internal/api/handler/request"
	"sitetrack/internal/api/handler/response"
	"sitetrack/internal/api/service"
	"sitetrack/pkg"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type jobHandler struct {
	jobService *service.JobService
	config     sitetrack.AppConfig
	logger     zerolog.Logger
}

func newJobHandler() *jobHandler {
	return &jobHandler{
		jobService: service.NewJobService(),
		config:     sitetrack.GetConfig(),
		logger:     sitetrack.Logger,
	}
}

func JobHandler(router *graceful.Graceful) {
	h := newJobHandler()

	routes := router.Group("/api/v1/jobs")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.POST("", h.create)
		routes.PUT("/:id", h.update)
		routes.DELETE("/:id", h.delete)
	}
}

func (slf *jobHandler) getAll(c *gin.Context) {
	jobs, err := slf.jobService.FindAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to get all jobs")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve jobs"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToJobResponses(jobs))
}

func (slf *jobHandler) getByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	job, err := slf.jobService.FindByID(id)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Failed to get job")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve job"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToJobResponse(*job))
}

func (slf *jobHandler) create(c *gin.Context) {
	var dto request.CreateJob
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating create job DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	job, err := slf.jobService.Create(mapper.CreateJobToModel(dto))
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to create job")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, mapper.ToJobResponse(*job))
}

func (slf *jobHandler) update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var dto request.UpdateJob
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating update job DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	job, err := slf.jobService.Update(id, mapper.UpdateJobToPatch(dto))
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Failed to update job")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to update job"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToJobResponse(*job))
}

func (slf *jobHandler) delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := slf.jobService.Delete(id); err != nil {
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Failed to delete job")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to delete job"})
		return
	}

	c.Status(http.StatusNoContent)
}

// parseIDParam reads the :id path segment, answering 400 itself on bad
// input.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}
