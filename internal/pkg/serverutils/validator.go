package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a request DTO and maps
// the first failure to a 400 with a readable field message.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed on '%s' rule",
			strings.ToLower(fieldErr.Field()),
			fieldErr.Tag(),
		))
	}

	return fiber.NewError(fiber.StatusBadRequest, strings.Join(messages, "; "))
}
