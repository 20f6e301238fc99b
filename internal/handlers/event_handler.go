package handlers

import (
	"strconv"
	"time"

	"sports-events-backend/internal/middleware"
	"sports-events-backend/internal/models"
	"sports-events-backend/internal/repositories"
	"sports-events-backend/internal/services"
	"sports-events-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title                string   `json:"title" validate:"required,max=200"`
	Description          string   `json:"description" validate:"required"`
	SportTypeID          string   `json:"sport_type_id" validate:"required,uuid"`
	EventTypeID          string   `json:"event_type_id" validate:"required,uuid"`
	LocationID           string   `json:"location_id" validate:"omitempty,uuid"`
	CustomLocationText   string   `json:"custom_location_text"`
	StartDatetime        string   `json:"start_datetime" validate:"required"`
	EndDatetime          string   `json:"end_datetime"`
	RegistrationDeadline string   `json:"registration_deadline"`
	MaxParticipants      *int     `json:"max_participants" validate:"omitempty,gt=0"`
	Status               string   `json:"status"`
	IsPublic             *bool    `json:"is_public"`
	EntryFee             *float64 `json:"entry_fee" validate:"omitempty,gte=0"`
	ContactEmail         string   `json:"contact_email" validate:"omitempty,email"`
	ContactPhone         string   `json:"contact_phone" validate:"omitempty,max=50"`
}

type UpdateEventRequest struct {
	Title                *string  `json:"title" validate:"omitempty,max=200"`
	Description          *string  `json:"description"`
	LocationID           *string  `json:"location_id"`
	CustomLocationText   *string  `json:"custom_location_text"`
	StartDatetime        *string  `json:"start_datetime"`
	EndDatetime          *string  `json:"end_datetime"`
	RegistrationDeadline *string  `json:"registration_deadline"`
	MaxParticipants      *int     `json:"max_participants" validate:"omitempty,gt=0"`
	Status               *string  `json:"status"`
	IsPublic             *bool    `json:"is_public"`
	EntryFee             *float64 `json:"entry_fee" validate:"omitempty,gte=0"`
	ContactEmail         *string  `json:"contact_email" validate:"omitempty,email"`
	ContactPhone         *string  `json:"contact_phone" validate:"omitempty,max=50"`
}

func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateEvent creates a new event
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "Event data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /events [post]
func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req CreateEventRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartDatetime)
	if err != nil {
		return utils.Error(c, "Invalid start_datetime format", fiber.StatusBadRequest)
	}
	endsAt, err := parseOptionalTime(req.EndDatetime)
	if err != nil {
		return utils.Error(c, "Invalid end_datetime format", fiber.StatusBadRequest)
	}
	deadline, err := parseOptionalTime(req.RegistrationDeadline)
	if err != nil {
		return utils.Error(c, "Invalid registration_deadline format", fiber.StatusBadRequest)
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	event, err := h.eventSvc.CreateEvent(services.CreateEventRequest{
		OrganizerID:          userID,
		Title:                req.Title,
		Description:          req.Description,
		SportTypeID:          req.SportTypeID,
		EventTypeID:          req.EventTypeID,
		LocationID:           req.LocationID,
		CustomLocationText:   req.CustomLocationText,
		StartDatetime:        startsAt,
		EndDatetime:          endsAt,
		RegistrationDeadline: deadline,
		MaxParticipants:      req.MaxParticipants,
		Status:               models.EventStatus(req.Status),
		IsPublic:             isPublic,
		EntryFee:             req.EntryFee,
		ContactEmail:         req.ContactEmail,
		ContactPhone:         req.ContactPhone,
	})
	if err != nil {
		return err
	}

	return utils.Success(c, event, "Event created successfully", fiber.StatusCreated)
}

// ListEvents returns paginated list of events
// @Summary List events
// @Tags Events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.Response
// @Router /events [get]
func (h *Handler) ListEvents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	filters := &repositories.EventFilters{
		IncludePrivate: c.Query("include_private") == "true",
		Status:         models.EventStatus(c.Query("status")),
		SportTypeID:    c.Query("sport_type_id"),
		EventTypeID:    c.Query("event_type_id"),
		City:           c.Query("city"),
		Search:         c.Query("search"),
	}
	if from, err := parseOptionalTime(c.Query("date_from")); err == nil {
		filters.DateFrom = from
	}
	if to, err := parseOptionalTime(c.Query("date_to")); err == nil {
		filters.DateTo = to
	}

	events, total, totalPages, err := h.eventSvc.ListEvents(page, pageSize, filters)
	if err != nil {
		return err
	}

	meta := &utils.Meta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages,
	}

	return utils.SuccessWithMeta(c, events, meta, "Events retrieved successfully")
}

// GetEvent returns event by ID
// @Summary Get event by ID
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /events/{id} [get]
func (h *Handler) GetEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	event, err := h.eventSvc.GetEvent(eventID)
	if err != nil {
		return err
	}

	return utils.Success(c, event, "Event retrieved successfully")
}

// UpdateEvent updates an event (organizer only)
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body UpdateEventRequest true "Changed fields"
// @Success 200 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /events/{id} [put]
func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	var req UpdateEventRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	update := services.UpdateEventRequest{
		Title:              req.Title,
		Description:        req.Description,
		LocationID:         req.LocationID,
		CustomLocationText: req.CustomLocationText,
		MaxParticipants:    req.MaxParticipants,
		IsPublic:           req.IsPublic,
		EntryFee:           req.EntryFee,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
	}

	if req.StartDatetime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartDatetime)
		if err != nil {
			return utils.Error(c, "Invalid start_datetime format", fiber.StatusBadRequest)
		}
		update.StartDatetime = &t
	}
	if req.EndDatetime != nil {
		t, err := parseOptionalTime(*req.EndDatetime)
		if err != nil {
			return utils.Error(c, "Invalid end_datetime format", fiber.StatusBadRequest)
		}
		update.EndDatetime = t
	}
	if req.RegistrationDeadline != nil {
		t, err := parseOptionalTime(*req.RegistrationDeadline)
		if err != nil {
			return utils.Error(c, "Invalid registration_deadline format", fiber.StatusBadRequest)
		}
		update.RegistrationDeadline = t
	}
	if req.Status != nil {
		status := models.EventStatus(*req.Status)
		update.Status = &status
	}

	event, err := h.eventSvc.UpdateEvent(eventID, userID, update)
	if err != nil {
		return err
	}

	return utils.Success(c, event, "Event updated successfully")
}

// DeleteEvent removes an event (organizer only)
// @Summary Delete event
// @Tags Events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204
// @Failure 403 {object} utils.Response
// @Router /events/{id} [delete]
func (h *Handler) DeleteEvent(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	eventID := c.Params("id")
	if _, err := uuid.Parse(eventID); err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	if err := h.eventSvc.DeleteEvent(eventID, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
