package server

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// sessionCookie carries the session token for browser clients.
const sessionCookie = "token"

// parseID extracts the "id" route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseListQuery reads the listing query parameters. Filter values pass
// through the repository's allow-list; anything else is ignored here.
func parseListQuery(c *fiber.Ctx) repository.ListQuery {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", repository.DefaultPageSize)
	if limit <= 0 {
		limit = repository.DefaultPageSize
	}
	if limit > repository.MaxPageSize {
		limit = repository.MaxPageSize
	}

	var authorID uint
	if a := c.QueryInt("author", 0); a > 0 {
		authorID = uint(a)
	}

	return repository.ListQuery{
		Page:    page,
		Limit:   limit,
		OrderBy: c.Query("order_by"),
		Filter: repository.BlogFilter{
			State:    models.BlogState(c.Query("state")),
			Title:    c.Query("title"),
			Tags:     c.Query("tags"),
			AuthorID: authorID,
		},
	}
}
