package server

import (
	"time"

	"harbor/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.authService.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, _, err := s.authService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	token, user, err := s.authService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Refresh handles POST /api/auth/refresh. Issues a fresh token for the
// current session.
func (s *Server) Refresh(c *fiber.Ctx) error {
	token, err := s.authService.Refresh(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

// Logout handles POST /api/auth/logout. Revokes the presented token's jti
// until it would have expired on its own.
func (s *Server) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("sessionJTI").(string)
	exp, _ := c.Locals("sessionExp").(time.Time)

	if err := s.authService.Logout(c.UserContext(), jti, exp); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}
