package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type blogRequest struct {
	Title       string           `json:"title" form:"title"`
	Description string           `json:"description" form:"description"`
	Tags        string           `json:"tags" form:"tags"`
	Body        string           `json:"body" form:"body"`
	State       models.BlogState `json:"state" form:"state"`
}

// GetBlogs handles GET /blogs. Public listing of published blogs with
// filtering, ordering and pagination.
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	blogs, err := s.blogService.ListBlogs(c.UserContext(), parseListQuery(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"blogs": blogs})
}

// GetBlog handles GET /blogs/:id. Every successful fetch counts as a read.
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	blog, err := s.blogService.GetBlog(c.UserContext(), id, true)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if blog == nil {
		return models.RespondWithAppError(c, models.NewNotFoundError("Blog", id))
	}
	return c.JSON(fiber.Map{"blog": blog})
}

// GetMyBlogs handles GET /blogs/my-blogs. Lists the caller's own blogs in
// every state, drafts included.
func (s *Server) GetMyBlogs(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	blogs, err := s.blogService.OwnerBlogs(c.UserContext(), userID, parseListQuery(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"blogs": blogs})
}

// CreateBlog handles POST /blogs. New blogs always start in draft state.
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req blogRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.CreateBlog(c.UserContext(), service.CreateBlogInput{
		AuthorID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Body:        req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"blog": blog})
}

// UpdateBlog handles PUT /blogs/:id. Only the author may edit; setting state
// to published is how a draft goes live.
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req blogRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.UpdateBlog(c.UserContext(), service.UpdateBlogInput{
		ActorID:     userID,
		BlogID:      id,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Body:        req.Body,
		State:       req.State,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"blog": blog})
}

// DeleteBlog handles DELETE /blogs/:id.
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.blogService.DeleteBlog(c.UserContext(), userID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Blog deleted successfully"})
}
