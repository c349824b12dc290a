package service

import (
	"errors"
	"sitetrack"
	"sitetrack/internal/api/handler/request"
	"sitetrack/internal/api/models"
	"sitetrack/internal/api/repo"
	"sitetrack/pkg"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)

// AuthTokens is the signed token pair issued on register, login and
// refresh.
type AuthTokens struct {
	Token        string
	RefreshToken string
}

type UserService struct {
	userRepo *repo.UserRepository
	config   sitetrack.AppConfig
	logger   zerolog.Logger
}

func NewUserService() *UserService {
	return &UserService{
		userRepo: repo.NewUserRepository(),
		config:   sitetrack.GetConfig(),
		logger:   sitetrack.Logger,
	}
}

func (slf *UserService) Register(registerDTO request.RegisterDTO) (models.User, AuthTokens, error) {
	exists, err := slf.userRepo.ExistsByEmail(registerDTO.Email)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error checking if user exists")
		return models.User{}, AuthTokens{}, err
	}
	if exists {
		return models.User{}, AuthTokens{}, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registerDTO.Password), bcrypt.DefaultCost)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error hashing password")
		return models.User{}, AuthTokens{}, err
	}

	user := models.User{
		Email:     registerDTO.Email,
		Password:  string(hashedPassword),
		FirstName: registerDTO.FirstName,
		LastName:  registerDTO.LastName,
		Role:      models.RoleUser,
		Active:    true,
	}

	if err = slf.userRepo.Create(&user); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating user")
		return models.User{}, AuthTokens{}, err
	}

	tokens, err := slf.issueTokens(&user)
	if err != nil {
		return models.User{}, AuthTokens{}, err
	}

	slf.logger.Info().Uint("userId", user.ID).Msg("User registered successfully")
	return user, tokens, nil
}

func (slf *UserService) Login(loginDTO request.LoginDTO) (models.User, AuthTokens, error) {
	user, err := slf.userRepo.FindByEmail(loginDTO.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, AuthTokens{}, ErrInvalidCredentials
		}
		slf.logger.Error().Err(err).Msg("Error finding user by email")
		return models.User{}, AuthTokens{}, err
	}

	if !user.Active {
		return models.User{}, AuthTokens{}, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginDTO.Password)); err != nil {
		return models.User{}, AuthTokens{}, ErrInvalidCredentials
	}

	tokens, err := slf.issueTokens(&user)
	if err != nil {
		return models.User{}, AuthTokens{}, err
	}

	slf.logger.Info().Uint("userId", user.ID).Msg("User logged in successfully")
	return user, tokens, nil
}

func (slf *UserService) GetByID(id uint) (models.User, error) {
	user, err := slf.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		slf.logger.Error().Err(err).Uint("userId", id).Msg("Error finding user by ID")
		return models.User{}, err
	}
	return user, nil
}

func (slf *UserService) RefreshToken(refreshToken string) (models.User, AuthTokens, error) {
	claims, err := pkg.ValidateRefreshToken(refreshToken, slf.config.JWTConfig.Secret)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Invalid refresh token")
		return models.User{}, AuthTokens{}, ErrInvalidRefresh
	}

	user, err := slf.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, AuthTokens{}, ErrUserNotFound
		}
		slf.logger.Error().Err(err).Uint("userId", claims.UserID).Msg("Error finding user by ID")
		return models.User{}, AuthTokens{}, err
	}

	if !user.Active {
		return models.User{}, AuthTokens{}, ErrAccountInactive
	}

	if user.RefreshToken != refreshToken {
		slf.logger.Warn().Uint("userId", user.ID).Msg("Refresh token mismatch")
		return models.User{}, AuthTokens{}, ErrInvalidRefresh
	}

	tokens, err := slf.issueTokens(&user)
	if err != nil {
		return models.User{}, AuthTokens{}, err
	}

	slf.logger.Info().Uint("userId", user.ID).Msg("Token refreshed successfully")
	return user, tokens, nil
}

// issueTokens signs a fresh pair and persists the rotated refresh token.
func (slf *UserService) issueTokens(user *models.User) (AuthTokens, error) {
	token, err := pkg.GenerateToken(user.ID, user.Email, string(user.Role), slf.config.JWTConfig.Secret, slf.config.JWTConfig.Expiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating token")
		return AuthTokens{}, err
	}

	refreshToken, err := pkg.GenerateRefreshToken(user.ID, slf.config.JWTConfig.Secret, slf.config.JWTConfig.RefreshExpiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating refresh token")
		return AuthTokens{}, err
	}

	user.RefreshToken = refreshToken
	if err = slf.userRepo.Update(user); err != nil {
		slf.logger.Error().Err(err).Msg("Error updating user with refresh token")
		return AuthTokens{}, err
	}

	return AuthTokens{Token: token, RefreshToken: refreshToken}, nil
}
