package handlers

import (
	"errors"

	"sports-events-backend/internal/config"
	"sports-events-backend/internal/middleware"
	"sports-events-backend/internal/services"
	"sports-events-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authSvc         *services.AuthService
	eventSvc        *services.EventService
	registrationSvc *services.RegistrationService
	resultSvc       *services.ResultService
	catalogSvc      *services.CatalogService
	cfg             *config.Config
}

func NewHandler(
	authSvc *services.AuthService,
	eventSvc *services.EventService,
	registrationSvc *services.RegistrationService,
	resultSvc *services.ResultService,
	catalogSvc *services.CatalogService,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authSvc:         authSvc,
		eventSvc:        eventSvc,
		registrationSvc: registrationSvc,
		resultSvc:       resultSvc,
		catalogSvc:      catalogSvc,
		cfg:             cfg,
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	// Public routes
	auth := router.Group("/auth")
	{
		auth.Post("/login", h.Login)
		auth.Post("/register", h.RegisterUser)
	}

	// Catalog, read side is public
	router.Get("/sport-types", h.ListSportTypes)
	router.Get("/event-types", h.ListEventTypes)
	router.Get("/locations", h.ListLocations)

	// Event discovery
	router.Get("/events", h.ListEvents)
	router.Get("/events/:id", h.GetEvent)
	router.Get("/events/:id/results", h.ListResults)

	// Protected routes (JWT required)
	protected := router.Group("", middleware.JWTMiddleware(h.cfg))
	{
		protected.Get("/profile", h.GetProfile)
		protected.Put("/profile", h.UpdateProfile)

		// Catalog management
		protected.Post("/sport-types", middleware.StaffOnly, h.CreateSportType)
		protected.Post("/event-types", middleware.StaffOnly, h.CreateEventType)
		protected.Post("/locations", h.CreateLocation)

		// Event management (organizer checks live in the services)
		protected.Post("/events", h.CreateEvent)
		protected.Put("/events/:id", h.UpdateEvent)
		protected.Delete("/events/:id", h.DeleteEvent)

		// Registration lifecycle
		protected.Post("/events/:id/register", h.CreateRegistration)
		protected.Delete("/events/:id/register", h.CancelRegistration)
		protected.Get("/events/:id/registrations", h.ListEventRegistrations)
		protected.Get("/registrations", h.ListMyRegistrations)
		protected.Put("/registrations/:id/status", h.UpdateRegistrationStatus)

		// Results
		protected.Post("/events/:id/results", h.RecordResult)
	}
}

// statusForCode maps service failure kinds onto HTTP statuses.
func statusForCode(code services.DomainErrorCode) int {
	switch code {
	case services.ErrPermissionDenied:
		return fiber.StatusForbidden
	case services.ErrEventNotFound, services.ErrUserNotFound, services.ErrNotRegistered:
		return fiber.StatusNotFound
	case services.ErrTransientStorage:
		return fiber.StatusServiceUnavailable
	case services.ErrDatabaseError:
		return fiber.StatusInternalServerError
	default:
		// Validation failures: AlreadyRegistered, RegistrationClosed,
		// CapacityExceeded, SelfOrganizerConflict, InvalidStatusValue,
		// InvalidEventState, ParticipantNotEligible, InvalidInput.
		return fiber.StatusBadRequest
	}
}

// ErrorHandler translates errors escaping the handlers into the
// response envelope. Typed service errors keep their message; anything
// else is reported as an internal failure.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		code := statusForCode(domainErr.Code)
		if code >= 500 {
			logrus.WithError(err).Error("request failed")
		}
		return utils.Error(c, domainErr.Message, code)
	}

	if e, ok := err.(*fiber.Error); ok {
		return utils.Error(c, e.Message, e.Code)
	}

	logrus.WithError(err).Error("unhandled error")
	return utils.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
}
