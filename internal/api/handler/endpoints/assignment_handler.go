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
	"sitetrack/internal/api/websocket"
	"sitetrack/pkg"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type assignmentHandler struct {
	assignmentService *service.AssignmentService
	config            sitetrack.AppConfig
	logger            zerolog.Logger
}

func newAssignmentHandler(hub *websocket.Hub) *assignmentHandler {
	return &assignmentHandler{
		assignmentService: service.NewAssignmentService(hub),
		config:            sitetrack.GetConfig(),
		logger:            sitetrack.Logger,
	}
}

func AssignmentHandler(router *graceful.Graceful, hub *websocket.Hub) {
	h := newAssignmentHandler(hub)

	jobScoped := router.Group("/api/v1/jobs/:id/assignments")
	jobScoped.Use(middleware.AuthMiddleware(h.config))
	{
		jobScoped.GET("", h.getByJob)
		jobScoped.GET("/time-validation", h.validateTime)
		jobScoped.GET("/suggested-end-date", h.suggestEndDate)
		jobScoped.GET("/costs", h.costs)
	}

	routes := router.Group("/api/v1/assignments")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.POST("", h.create)
		routes.GET("/:id", h.getByID)
		routes.DELETE("/:id", h.delete)
	}
}

func (slf *assignmentHandler) getByJob(c *gin.Context) {
	jobID, ok := parseIDParam(c)
	if !ok {
		return
	}

	assignments, err := slf.assignmentService.FindByJob(jobID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Failed to list assignments")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve assignments"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToAssignmentResponses(assignments))
}

// validateTime answers the schedule verdict for a prospective booking
// without creating anything.
func (slf *assignmentHandler) validateTime(c *gin.Context) {
	jobID, ok := parseIDParam(c)
	if !ok {
		return
	}

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	contractors := 1
	if raw := c.Query("contractors"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, response.APIError{Message: "contractors must be a positive integer"})
			return
		}
		contractors = n
	}

	validation, err := slf.assignmentService.ValidateTime(jobID, parsePhases(c), start, end, contractors)
	if err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Failed to validate assignment time")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to validate assignment time"})
		return
	}

	c.JSON(http.StatusOK, validation)
}

func (slf *assignmentHandler) suggestEndDate(c *gin.Context) {
	jobID, ok := parseIDParam(c)
	if !ok {
		return
	}

	start, ok := parseDateQuery(c, "startDate")
	if !ok {
		return
	}

	endDate, err := slf.assignmentService.SuggestEndDate(jobID, parsePhases(c), start)
	if err != nil {
		if errors.Is(err, service.ErrNoSuggestion) {
			c.JSON(http.StatusOK, mapper.ToSuggestedEndDateResponse(time.Time{}, false))
			return
		}
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Failed to suggest end date")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to suggest end date"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToSuggestedEndDateResponse(endDate, true))
}

func (slf *assignmentHandler) costs(c *gin.Context) {
	jobID, ok := parseIDParam(c)
	if !ok {
		return
	}

	costs, err := slf.assignmentService.Costs(jobID, parsePhases(c))
	if err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Failed to total assignment costs")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to total assignment costs"})
		return
	}

	c.JSON(http.StatusOK, costs)
}

func (slf *assignmentHandler) create(c *gin.Context) {
	var dto request.CreateAssignment
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating create assignment DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	start, err := mapper.ParseDate(dto.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "startDate must be formatted YYYY-MM-DD"})
		return
	}
	end, err := mapper.ParseDate(dto.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "endDate must be formatted YYYY-MM-DD"})
		return
	}

	assignment, validation, err := slf.assignmentService.Create(dto.JobID, dto.ContractorIDs, dto.SelectedPhases, start, end, dto.SpecialInstructions)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Uint("jobId", dto.JobID).Msg("Failed to create assignment")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create assignment"})
		return
	}

	c.JSON(http.StatusCreated, response.CreatedAssignment{
		Assignment: mapper.ToAssignmentResponse(assignment),
		Validation: validation,
	})
}

func (slf *assignmentHandler) getByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	assignment, err := slf.assignmentService.FindByID(id)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Uint("assignmentId", id).Msg("Failed to get assignment")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve assignment"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToAssignmentResponse(assignment))
}

func (slf *assignmentHandler) delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := slf.assignmentService.Delete(id); err != nil {
		slf.logger.Error().Err(err).Uint("assignmentId", id).Msg("Failed to delete assignment")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to delete assignment"})
		return
	}

	c.Status(http.StatusNoContent)
}

// parsePhases reads the optional phases query parameter. Empty means
// all phases on the job.
func parsePhases(c *gin.Context) []string {
	raw := c.Query("phases")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	phases := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			phases = append(phases, p)
		}
	}
	return phases
}

func parseDateRange(c *gin.Context) (start, end time.Time, ok bool) {
	start, ok = parseDateQuery(c, "startDate")
	if !ok {
		return
	}
	end, ok = parseDateQuery(c, "endDate")
	return
}

func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	t, err := mapper.ParseDate(c.Query(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: name + " must be formatted YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
