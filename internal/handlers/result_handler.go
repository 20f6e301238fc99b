package handlers

import (
	"sports-events-backend/internal/middleware"
	"sports-events-backend/internal/services"
	"sports-events-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecordResultRequest struct {
	ParticipantUserID      string `json:"participant_user_id" validate:"omitempty,uuid"`
	TeamNameIfApplicable   string `json:"team_name_if_applicable" validate:"omitempty,max=100"`
	Position               *int   `json:"position" validate:"omitempty,gt=0"`
	Score                  string `json:"score" validate:"omitempty,max=100"`
	AchievementDescription string `json:"achievement_description"`
}

// RecordResult records an outcome for an event (organizer only).
// @Summary Record event result
// @Tags Results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body RecordResultRequest true "Result data"
// @Success 201 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /events/{id}/results [post]
func (h *Handler) RecordResult(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	var req RecordResultRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	result, err := h.resultSvc.RecordResult(services.RecordResultRequest{
		EventID:                eventID,
		ActorUserID:            userID,
		ParticipantUserID:      req.ParticipantUserID,
		TeamNameIfApplicable:   req.TeamNameIfApplicable,
		Position:               req.Position,
		Score:                  req.Score,
		AchievementDescription: req.AchievementDescription,
	})
	if err != nil {
		return err
	}

	return utils.Success(c, result, "Result recorded successfully", fiber.StatusCreated)
}

// ListResults returns all results for an event. Public.
func (h *Handler) ListResults(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	results, err := h.resultSvc.ListResults(eventID)
	if err != nil {
		return err
	}

	return utils.Success(c, results, "Results retrieved successfully")
}
