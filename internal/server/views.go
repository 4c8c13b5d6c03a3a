package server

import (
	"embed"
	"html/template"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func renderPage(c *fiber.Ctx, name string, data any) error {
	c.Type("html", "utf-8")
	return pageTemplates.ExecuteTemplate(c.Response().BodyWriter(), name, data)
}

// IndexPage handles GET /. The landing page lists published blogs.
func (s *Server) IndexPage(c *fiber.Ctx) error {
	blogs, err := s.blogService.ListBlogs(c.UserContext(), parseListQuery(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	_, signedIn := s.optionalUserID(c)
	return renderPage(c, "index.html", fiber.Map{
		"Blogs":    blogs,
		"SignedIn": signedIn,
	})
}

// SignupPage handles GET /signup.
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return renderPage(c, "signup.html", nil)
}

// SigninPage handles GET /signin.
func (s *Server) SigninPage(c *fiber.Ctx) error {
	return renderPage(c, "signin.html", nil)
}

// BlogPage handles GET /blogs/:id/page. Rendering the page counts as a read,
// same as fetching the blog through the JSON API.
func (s *Server) BlogPage(c *fiber.Ctx) error {
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
	return renderPage(c, "show.html", fiber.Map{"Blog": blog})
}

// DashboardPage handles GET /web/dashboard. Shows the signed-in author's own
// blogs in every state.
func (s *Server) DashboardPage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	blogs, err := s.blogService.OwnerBlogs(c.UserContext(), userID, parseListQuery(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return renderPage(c, "dashboard.html", fiber.Map{
		"Blogs": blogs,
		"User":  user,
	})
}

// NewBlogPage handles GET /web/blogs/new.
func (s *Server) NewBlogPage(c *fiber.Ctx) error {
	return renderPage(c, "new_blog.html", nil)
}

// EditBlogPage handles GET /web/blogs/:id/edit.
func (s *Server) EditBlogPage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	blog, err := s.blogService.GetBlog(c.UserContext(), id, false)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if blog == nil {
		return models.RespondWithAppError(c, models.NewNotFoundError("Blog", id))
	}
	if blog.AuthorID != userID {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("You can only edit your own blogs"))
	}
	return renderPage(c, "edit_blog.html", fiber.Map{
		"Blog":   blog,
		"States": []models.BlogState{models.StateDraft, models.StatePublished},
	})
}
