package cart

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
	"github.com/wichananm65/page-flow-backend/internal/checkout"
)

// Handler exposes the cart under the id the client keeps from POST /api/carts.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/carts", h.createCart)
	app.Get("/api/carts/:id", h.getCart)
	app.Delete("/api/carts/:id", h.clearCart)
	app.Post("/api/carts/:id/items", h.addItem)
	app.Patch("/api/carts/:id/items/:bookId", h.updateQuantity)
	app.Delete("/api/carts/:id/items/:bookId", h.removeItem)
	app.Post("/api/carts/:id/checkout", h.checkout)
}

type addItemRequest struct {
	BookID   string `json:"bookId"`
	Quantity *int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

type checkoutRequest struct {
	Customer checkout.CustomerInfo `json:"customer"`
}

func (h *Handler) createCart(c *fiber.Ctx) error {
	cart, err := h.service.Create(c.UserContext())
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	cart, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(cart)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	cart, err := h.service.Clear(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(cart)
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperror.BadRequest(c, "invalid request body")
	}
	if payload.BookID == "" {
		return apperror.Respond(c, apperror.Validation(map[string]string{"bookId": "bookId is required"}))
	}
	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}

	cart, err := h.service.AddItem(c.UserContext(), c.Params("id"), payload.BookID, quantity)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(cart)
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	payload := new(updateQuantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperror.BadRequest(c, "invalid request body")
	}

	cart, err := h.service.SetQuantity(c.UserContext(), c.Params("id"), c.Params("bookId"), payload.Delta)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(cart)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(c.UserContext(), c.Params("id"), c.Params("bookId"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(cart)
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperror.BadRequest(c, "invalid request body")
	}

	placed, err := h.service.Checkout(c.UserContext(), c.Params("id"), payload.Customer)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(placed)
}
