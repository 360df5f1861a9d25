package user

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
	"github.com/wichananm65/page-flow-backend/internal/session"
)

type Handler struct {
	service  *Service
	sessions *session.Manager
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/register", h.register)
	app.Post("/api/login", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Post("/api/logout", h.logout)
	app.Get("/api/session", h.currentSession)
	app.Get("/api/users", h.getUsers)
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(Registration)
	if err := c.BodyParser(payload); err != nil {
		return apperror.BadRequest(c, "invalid request body")
	}

	created, err := h.service.Register(c.UserContext(), *payload)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    created,
	})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperror.BadRequest(c, "invalid request body")
	}

	u, err := h.service.Authenticate(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return apperror.Respond(c, err)
	}

	s, token, err := h.sessions.Begin(c.UserContext(), u.ID, u.Email, u.Role)
	if err != nil {
		return apperror.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Login successful",
		"user":      u,
		"token":     token,
		"expiresAt": s.ExpiresAt,
	})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	s, err := session.FromCtx(c)
	if err != nil {
		return apperror.Respond(c, err)
	}
	if err := h.sessions.End(c.UserContext(), s.ID); err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *Handler) currentSession(c *fiber.Ctx) error {
	s, err := session.FromCtx(c)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(s)
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	if _, err := session.RequireRole(c, session.RoleAdmin); err != nil {
		return apperror.Respond(c, err)
	}

	users, err := h.service.List(c.UserContext())
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(users)
}
