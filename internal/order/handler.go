package order

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/wichananm65/page-flow-backend/internal/apperror"
	"github.com/wichananm65/page-flow-backend/internal/checkout"
	"github.com/wichananm65/page-flow-backend/internal/session"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/api/orders", h.createOrder)
}

// RegisterProtectedRoutes mounts the order administration endpoints.
func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/api/orders", h.getOrders)
	app.Get("/api/orders/:id", h.getOrder)
	app.Patch("/api/orders/:id/status", h.updateStatus)
}

type createOrderRequest struct {
	Customer checkout.CustomerInfo `json:"customer"`
	Items    []Item                `json:"items"`
	Total    decimal.Decimal       `json:"total"`
}

type updateStatusRequest struct {
	Status  Status `json:"status"`
	Version *int   `json:"version"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperror.BadRequest(c, "invalid request body")
	}

	created, err := h.service.Create(c.UserContext(), payload.Customer, payload.Items, payload.Total)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	if _, err := session.RequireRole(c, session.RoleAdmin); err != nil {
		return apperror.Respond(c, err)
	}

	orders, err := h.service.List(c.UserContext(), ParseStatuses(c.Query("status")))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	if _, err := session.RequireRole(c, session.RoleAdmin); err != nil {
		return apperror.Respond(c, err)
	}

	o, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	if _, err := session.RequireRole(c, session.RoleAdmin); err != nil {
		return apperror.Respond(c, err)
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return apperror.BadRequest(c, "invalid request body")
	}

	updated, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), payload.Status, payload.Version)
	if err != nil {
		return apperror.Respond(c, err)
	}
	return c.JSON(updated)
}
