package middleware

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateBody parses the request body into dest and runs the struct
// validation tags. Failures come back as 400 fiber errors for the
// global error handler to render.
func ValidateBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validate.Struct(dest); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		firstError := validationErrors[0]

		var errorMessage string
		switch firstError.Tag() {
		case "required":
			errorMessage = firstError.Field() + " is required"
		case "email":
			errorMessage = "Invalid email format"
		case "min":
			errorMessage = firstError.Field() + " is too short"
		case "max":
			errorMessage = firstError.Field() + " is too long"
		case "uuid":
			errorMessage = "Invalid UUID format"
		case "oneof":
			errorMessage = firstError.Field() + " must be one of: " + firstError.Param()
		case "gt":
			errorMessage = firstError.Field() + " must be greater than " + firstError.Param()
		default:
			errorMessage = "Validation failed for " + firstError.Field()
		}

		return fiber.NewError(fiber.StatusBadRequest, errorMessage)
	}

	return nil
}
