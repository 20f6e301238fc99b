package services

import (
	"errors"
	"strings"
	"time"

	"sports-events-backend/internal/config"
	"sports-events-backend/internal/models"
	"sports-events-backend/internal/repositories"
	"sports-events-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type AuthService struct {
	users repositories.UserRepository
	cfg   *config.Config
}

func NewAuthService(users repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *AuthService) Authenticate(email, password string) (*LoginResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" || password == "" {
		return nil, NewDomainError("email and password are required", ErrInvalidInput, nil)
	}

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, NewDomainError("invalid credentials", ErrPermissionDenied, nil)
	}
	if !user.IsActive {
		return nil, NewDomainError("account is disabled", ErrPermissionDenied, nil)
	}

	if err := utils.CheckPassword(password, user.Password); err != nil {
		return nil, NewDomainError("invalid credentials", ErrPermissionDenied, nil)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, NewDomainError("failed to generate token", ErrDatabaseError, err)
	}

	user.Password = ""
	return &LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

func (s *AuthService) RegisterUser(email, displayName, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	displayName = strings.TrimSpace(displayName)

	if email == "" {
		return nil, NewDomainError("email is required", ErrInvalidInput, nil)
	}
	if displayName == "" {
		return nil, NewDomainError("display name is required", ErrInvalidInput, nil)
	}

	// Check if user already exists
	if existing, _ := s.users.GetUserByEmail(email); existing != nil {
		return nil, NewDomainError("email already registered", ErrInvalidInput, nil)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, NewDomainError(err.Error(), ErrInvalidInput, err)
	}

	user := &models.User{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: displayName,
		Password:    hashedPassword,
		IsActive:    true,
	}

	if err := s.users.CreateUser(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewDomainError("email already registered", ErrInvalidInput, err)
		}
		return nil, NewDomainError("failed to create user", ErrDatabaseError, err)
	}

	// Remove password from response
	user.Password = ""
	return user, nil
}

func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"email":    user.Email,
		"is_staff": user.IsStaff,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) GetUserProfile(userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, NewDomainError("user not found", ErrUserNotFound, err)
	}

	// Remove sensitive data
	user.Password = ""
	return user, nil
}

func (s *AuthService) UpdateProfile(userID, displayName string) (*models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, NewDomainError("user not found", ErrUserNotFound, err)
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, NewDomainError("display name is required", ErrInvalidInput, nil)
	}

	user.DisplayName = displayName
	if err := s.users.UpdateUser(user); err != nil {
		return nil, NewDomainError("failed to update profile", ErrDatabaseError, err)
	}

	user.Password = ""
	return user, nil
}
