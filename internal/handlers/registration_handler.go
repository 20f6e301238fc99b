package handlers

import (
	"sports-events-backend/internal/middleware"
	"sports-events-backend/internal/models"
	"sports-events-backend/internal/services"
	"sports-events-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateRegistrationRequest struct {
	// UserID is only honored when the caller is the event's organizer:
	// it registers that user directly with a confirmed slot.
	UserID      string `json:"user_id" validate:"omitempty,uuid"`
	NotesByUser string `json:"notes_by_user"`
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateRegistration registers the caller (or, for organizers, a named
// user) for an event.
// @Summary Register for event
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body CreateRegistrationRequest false "Registration data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /events/{id}/register [post]
func (h *Handler) CreateRegistration(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	var req CreateRegistrationRequest
	if len(c.Body()) > 0 {
		if err := middleware.ValidateBody(c, &req); err != nil {
			return err
		}
	}

	reg, err := h.registrationSvc.Register(services.RegisterRequest{
		EventID:      eventID,
		ActorUserID:  userID,
		TargetUserID: req.UserID,
		Notes:        req.NotesByUser,
	})
	if err != nil {
		return err
	}

	return utils.Success(c, reg, "Registration created successfully", fiber.StatusCreated)
}

// CancelRegistration withdraws the caller's registration for an event.
// @Summary Cancel own registration
// @Tags Registrations
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204
// @Failure 404 {object} utils.Response
// @Router /events/{id}/register [delete]
func (h *Handler) CancelRegistration(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	if err := h.registrationSvc.Cancel(eventID, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListEventRegistrations returns all registrations for an event
// (organizer only).
func (h *Handler) ListEventRegistrations(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	regs, err := h.registrationSvc.ListForEvent(eventID, userID)
	if err != nil {
		return err
	}

	return utils.Success(c, regs, "Registrations retrieved successfully")
}

// ListMyRegistrations returns the caller's registrations.
func (h *Handler) ListMyRegistrations(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	regs, err := h.registrationSvc.ListForUser(userID)
	if err != nil {
		return err
	}

	return utils.Success(c, regs, "Registrations retrieved successfully")
}

// UpdateRegistrationStatus applies an organizer status change
// (confirm, reject, mark attended).
// @Summary Update registration status
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Param request body UpdateRegistrationStatusRequest true "New status"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /registrations/{id}/status [put]
func (h *Handler) UpdateRegistrationStatus(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	registrationID := c.Params("id")
	if _, err := uuid.Parse(registrationID); err != nil {
		return utils.Error(c, "Invalid registration ID", fiber.StatusBadRequest)
	}

	var req UpdateRegistrationStatusRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	reg, err := h.registrationSvc.UpdateStatus(registrationID, userID, models.RegistrationStatus(req.Status))
	if err != nil {
		return err
	}

	return utils.Success(c, reg, "Registration status updated successfully")
}
