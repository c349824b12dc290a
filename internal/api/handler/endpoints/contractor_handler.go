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
	"sitetrack/internal/rates"
	"sitetrack/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type contractorHandler struct {
	contractorService *service.ContractorService
	config            sitetrack.AppConfig
	logger            zerolog.Logger
}

func newContractorHandler() *contractorHandler {
	return &contractorHandler{
		contractorService: service.NewContractorService(rates.Default()),
		config:            sitetrack.GetConfig(),
		logger:            sitetrack.Logger,
	}
}

func ContractorHandler(router *graceful.Graceful) {
	h := newContractorHandler()

	routes := router.Group("/api/v1/contractors")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.GET("/:id/rate", h.getRate)
		routes.POST("", h.create)
		routes.PUT("/:id", h.update)
		routes.DELETE("/:id", h.delete)
	}
}

func (slf *contractorHandler) getAll(c *gin.Context) {
	contractors, err := slf.contractorService.FindAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to get all contractors")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve contractors"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToContractorResponses(contractors))
}

func (slf *contractorHandler) getByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	contractor, err := slf.contractorService.FindByID(id)
	if err != nil {
		if errors.Is(err, service.ErrContractorNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Uint("contractorId", id).Msg("Failed to get contractor")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve contractor"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToContractorResponse(*contractor))
}

// getRate answers the agency day rate for the contractor's trade.
func (slf *contractorHandler) getRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	contractor, err := slf.contractorService.FindByID(id)
	if err != nil {
		if errors.Is(err, service.ErrContractorNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Uint("contractorId", id).Msg("Failed to get contractor")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve contractor"})
		return
	}

	dayRate, known, err := slf.contractorService.DayRateFor(id)
	if err != nil {
		slf.logger.Error().Err(err).Uint("contractorId", id).Msg("Failed to look up day rate")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to look up day rate"})
		return
	}

	c.JSON(http.StatusOK, response.ContractorRate{
		ContractorID: id,
		Trade:        contractor.Trade,
		DayRate:      dayRate,
		Known:        known,
	})
}

func (slf *contractorHandler) create(c *gin.Context) {
	var dto request.CreateContractor
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating create contractor DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	contractor, err := slf.contractorService.Create(mapper.CreateContractorToModel(dto))
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to create contractor")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create contractor"})
		return
	}

	c.JSON(http.StatusCreated, mapper.ToContractorResponse(*contractor))
}

func (slf *contractorHandler) update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var dto request.UpdateContractor
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating update contractor DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	contractor, err := slf.contractorService.Update(id, mapper.UpdateContractorToPatch(dto))
	if err != nil {
		if errors.Is(err, service.ErrContractorNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Uint("contractorId", id).Msg("Failed to update contractor")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to update contractor"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToContractorResponse(*contractor))
}

func (slf *contractorHandler) delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := slf.contractorService.Delete(id); err != nil {
		slf.logger.Error().Err(err).Uint("contractorId", id).Msg("Failed to delete contractor")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to delete contractor"})
		return
	}

	c.Status(http.StatusNoContent)
}
