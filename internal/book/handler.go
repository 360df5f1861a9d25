package book

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
	"github.com/wichananm65/page-flow-backend/internal/session"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/books", h.getBooks)
	app.Get("/api/books/:id", h.getBook)
}

// RegisterProtectedRoutes mounts the catalog management endpoints. Each one
// requires an administrator session.
func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Post("/api/books", h.createBook)
	app.Put("/api/books/:id", h.updateBook)
	app.Delete("/api/books/:id", h.deleteBook)
}

func (h *Handler) getBooks(c *fiber.Ctx) error {
	books, err := h.service.List(c.UserContext())
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(books)
}

func (h *Handler) getBook(c *fiber.Ctx) error {
	b, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(b)
}

// bookPayload tells an omitted price apart from an explicit zero.
type bookPayload struct {
	Book
	Price *decimal.Decimal `json:"price"`
}

func (p bookPayload) book() Book {
	b := p.Book
	b.Price = DefaultPrice
	if p.Price != nil {
		b.Price = *p.Price
	}
	return b
}

func (h *Handler) createBook(c *fiber.Ctx) error {
	if _, err := session.RequireRole(c, session.RoleAdmin); err != nil {
		return apperror.Respond(c, err)
	}

	var payload bookPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperror.BadRequest(c, "invalid request body")
	}
	b := payload.book()

	created, err := h.service.Create(c.UserContext(), b)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateBook(c *fiber.Ctx) error {
	if _, err := session.RequireRole(c, session.RoleAdmin); err != nil {
		return apperror.Respond(c, err)
	}

	var payload bookPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperror.BadRequest(c, "invalid request body")
	}
	b := payload.book()

	updated, err := h.service.Update(c.UserContext(), c.Params("id"), b)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) deleteBook(c *fiber.Ctx) error {
	if _, err := session.RequireRole(c, session.RoleAdmin); err != nil {
		return apperror.Respond(c, err)
	}

	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Book deleted successfully"})
}
