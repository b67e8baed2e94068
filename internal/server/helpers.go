// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"errors"

	"harbor/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// validate checks request struct tags.
var validate = validator.New()

// parseBody decodes and validates a JSON request body. On failure it writes a
// 400 response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c, models.NewInvalidInputError("Invalid request body"))
		return errResponseWritten
	}
	if err := validate.Struct(dest); err != nil {
		var verrs validator.ValidationErrors
		msg := "Invalid request body"
		if errors.As(err, &verrs) && len(verrs) > 0 {
			msg = "Invalid value for field '" + verrs[0].Field() + "'"
		}
		_ = models.RespondWithError(c, models.NewInvalidInputError(msg))
		return errResponseWritten
	}
	return nil
}

// parseID extracts a route parameter by name as a positive uint. On failure
// it writes a 400 JSON response and returns errResponseWritten. Callers
// should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewInvalidInputError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// Pagination holds parsed page/page_size query parameters. Page is 1-based.
type Pagination struct {
	Page     int
	PageSize int
}

func parsePagination(c *fiber.Ctx, defaultSize int) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	size := c.QueryInt("page_size", defaultSize)
	if size <= 0 {
		size = defaultSize
	}
	return Pagination{Page: page, PageSize: size}
}

// currentUserID reads the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
