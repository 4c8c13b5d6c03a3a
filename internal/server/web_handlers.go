package server

import (
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(service.TokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production",
		Path:     "/",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
}

// SignupForm handles POST /web/signup. On success the browser gets a session
// cookie and lands on the dashboard; on failure it is sent back to the form.
func (s *Server) SignupForm(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Redirect("/signup", fiber.StatusSeeOther)
	}

	_, token, err := s.authService.Signup(c.UserContext(), service.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return c.Redirect("/signup", fiber.StatusSeeOther)
	}

	s.setSessionCookie(c, token)
	return c.Redirect("/web/dashboard", fiber.StatusSeeOther)
}

// SigninForm handles POST /web/signin.
func (s *Server) SigninForm(c *fiber.Ctx) error {
	var req signinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Redirect("/signin", fiber.StatusSeeOther)
	}

	_, token, err := s.authService.Signin(c.UserContext(), service.SigninInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return c.Redirect("/signin", fiber.StatusSeeOther)
	}

	s.setSessionCookie(c, token)
	return c.Redirect("/web/dashboard", fiber.StatusSeeOther)
}

// SignoutForm handles POST /web/signout.
func (s *Server) SignoutForm(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// CreateBlogForm handles POST /web/blogs.
func (s *Server) CreateBlogForm(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req blogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Redirect("/web/blogs/new", fiber.StatusSeeOther)
	}

	_, err := s.blogService.CreateBlog(c.UserContext(), service.CreateBlogInput{
		AuthorID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Body:        req.Body,
	})
	if err != nil {
		return c.Redirect("/web/blogs/new", fiber.StatusSeeOther)
	}
	return c.Redirect("/web/dashboard", fiber.StatusSeeOther)
}

// UpdateBlogForm handles POST /web/blogs/:id. HTML forms cannot send PUT, so
// edits arrive as POSTs on the edit endpoint.
func (s *Server) UpdateBlogForm(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req blogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Redirect("/web/dashboard", fiber.StatusSeeOther)
	}

	_, err = s.blogService.UpdateBlog(c.UserContext(), service.UpdateBlogInput{
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
	return c.Redirect("/web/dashboard", fiber.StatusSeeOther)
}

// DeleteBlogForm handles POST /web/blogs/:id/delete.
func (s *Server) DeleteBlogForm(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.blogService.DeleteBlog(c.UserContext(), userID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Redirect("/web/dashboard", fiber.StatusSeeOther)
}
