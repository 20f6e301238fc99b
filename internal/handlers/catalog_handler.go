package handlers

import (
	"strconv"

	"sports-events-backend/internal/middleware"
	"sports-events-backend/internal/services"
	"sports-events-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CreateEventTypeRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type CreateLocationRequest struct {
	Name      string `json:"name" validate:"required,max=150"`
	Address   string `json:"address" validate:"required,max=255"`
	City      string `json:"city" validate:"required,max=100"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Details   string `json:"details"`
}

// CreateSportType creates a sport type, with an optional icon image
// sent as multipart form data (staff only).
func (h *Handler) CreateSportType(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return utils.Error(c, "name is required", fiber.StatusBadRequest)
	}
	description := c.FormValue("description")

	iconPath := ""
	file, err := c.FormFile("icon")
	if err == nil && file != nil {
		if err := utils.ValidateImageFile(file, h.cfg.MaxUploadSize); err != nil {
			return utils.Error(c, err.Error(), fiber.StatusBadRequest)
		}

		filename := utils.GenerateUniqueFilename(file.Filename)
		if err := utils.SaveUploadedFile(file, h.cfg.IconDir, filename); err != nil {
			return utils.Error(c, "Failed to save icon", fiber.StatusInternalServerError)
		}
		iconPath = "/icons/" + filename
	}

	st, err := h.catalogSvc.CreateSportType(name, description, iconPath)
	if err != nil {
		return err
	}

	return utils.Success(c, st, "Sport type created successfully", fiber.StatusCreated)
}

func (h *Handler) ListSportTypes(c *fiber.Ctx) error {
	types, err := h.catalogSvc.ListSportTypes()
	if err != nil {
		return err
	}
	return utils.Success(c, types, "Sport types retrieved successfully")
}

// CreateEventType creates an event type (staff only).
func (h *Handler) CreateEventType(c *fiber.Ctx) error {
	var req CreateEventTypeRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	et, err := h.catalogSvc.CreateEventType(req.Name, req.Description)
	if err != nil {
		return err
	}

	return utils.Success(c, et, "Event type created successfully", fiber.StatusCreated)
}

func (h *Handler) ListEventTypes(c *fiber.Ctx) error {
	types, err := h.catalogSvc.ListEventTypes()
	if err != nil {
		return err
	}
	return utils.Success(c, types, "Event types retrieved successfully")
}

// CreateLocation creates a location owned by the caller.
func (h *Handler) CreateLocation(c *fiber.Ctx) error {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req CreateLocationRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	svcReq := services.CreateLocationRequest{
		Name:            req.Name,
		Address:         req.Address,
		City:            req.City,
		Details:         req.Details,
		CreatedByUserID: userID,
	}
	if req.Latitude != "" {
		lat, err := strconv.ParseFloat(req.Latitude, 64)
		if err != nil {
			return utils.Error(c, "Invalid latitude", fiber.StatusBadRequest)
		}
		svcReq.Latitude = &lat
	}
	if req.Longitude != "" {
		lng, err := strconv.ParseFloat(req.Longitude, 64)
		if err != nil {
			return utils.Error(c, "Invalid longitude", fiber.StatusBadRequest)
		}
		svcReq.Longitude = &lng
	}

	loc, err := h.catalogSvc.CreateLocation(svcReq)
	if err != nil {
		return err
	}

	return utils.Success(c, loc, "Location created successfully", fiber.StatusCreated)
}

func (h *Handler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.catalogSvc.ListLocations(c.Query("city"))
	if err != nil {
		return err
	}
	return utils.Success(c, locations, "Locations retrieved successfully")
}
