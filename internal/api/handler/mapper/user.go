package mapper

import (
	"sitetrack/internal/api/handler/response"
	"sitetrack/internal/api/models"
	"sitetrack/internal/api/service"
)

func ToUserResponse(u models.User) response.UserResponseDTO {
	return response.UserResponseDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

func ToAuthResponse(u models.User, tokens service.AuthTokens) response.AuthResponseDTO {
	return response.AuthResponseDTO{
		Token:        tokens.Token,
		RefreshToken: tokens.RefreshToken,
		User:         ToUserResponse(u),
	}
}
