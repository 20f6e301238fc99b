package handlers

import (
	"sports-events-backend/internal/middleware"
	"sports-events-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	Password    string `json:"password" validate:"required,min=6"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authSvc.Authenticate(req.Email, req.Password)
	if err != nil {
		return utils.Error(c, "Invalid credentials", fiber.StatusUnauthorized)
	}

	return utils.Success(c, resp, "Login successful")
}

// RegisterUser creates a new user account
func (h *Handler) RegisterUser(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	user, err := h.authSvc.RegisterUser(req.Email, req.DisplayName, req.Password)
	if err != nil {
		return err
	}

	return utils.Success(c, user, "User registered successfully", fiber.StatusCreated)
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.authSvc.GetUserProfile(userID)
	if err != nil {
		return err
	}

	return utils.Success(c, user, "Profile retrieved successfully")
}

// UpdateProfile changes the authenticated user's display name
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	user, err := h.authSvc.UpdateProfile(userID, req.DisplayName)
	if err != nil {
		return err
	}

	return utils.Success(c, user, "Profile updated successfully")
}
