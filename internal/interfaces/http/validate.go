package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/incassopro/incasso-api/internal/application/dto"
)

var validate = validator.New()

// parseBody decodes the JSON body into out and runs struct validation.
// Returns a non-nil fiber response on failure, so handlers can do:
//
//	if resp := parseBody(c, &in); resp != nil { return resp }
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := validate.Struct(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return nil
}
