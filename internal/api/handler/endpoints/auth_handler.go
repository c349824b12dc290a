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

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type authHandler struct {
	userService *service.UserService
	logger      zerolog.Logger
	config      sitetrack.AppConfig
}

func newAuthHandler() *authHandler {
	return &authHandler{
		userService: service.NewUserService(),
		logger:      sitetrack.Logger,
		config:      sitetrack.GetConfig(),
	}
}

func AuthHandler(router *graceful.Graceful) {
	h := newAuthHandler()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refreshToken)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(h.config))
	{
		protected.GET("/me", h.getMe)
	}
}

func (slf *authHandler) register(c *gin.Context) {
	var registerDTO request.RegisterDTO
	if err := pkg.ParseAndValidate(c, &registerDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating register DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	user, tokens, err := slf.userService.Register(registerDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error registering user")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, mapper.ToAuthResponse(user, tokens))
}

func (slf *authHandler) login(c *gin.Context) {
	var loginDTO request.LoginDTO
	if err := pkg.ParseAndValidate(c, &loginDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating login DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	user, tokens, err := slf.userService.Login(loginDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error logging in user")
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapper.ToAuthResponse(user, tokens))
}

func (slf *authHandler) refreshToken(c *gin.Context) {
	var refreshDTO request.RefreshDTO
	if err := pkg.ParseAndValidate(c, &refreshDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating refresh DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	user, tokens, err := slf.userService.RefreshToken(refreshDTO.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapper.ToAuthResponse(user, tokens))
}

func (slf *authHandler) getMe(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	user, err := slf.userService.GetByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Uint("userId", userID).Msg("Error getting user")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserResponse(user))
}
