package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"vendora/internal/domain"
	applog "vendora/internal/log"
	"vendora/internal/services"
	"vendora/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// Checkout turns the session's cart into an order and clears the cart.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	sid := sessionID(c)

	var addr domain.ShippingAddress
	if err := c.BodyParser(&addr); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid shipping address")
	}
	if missing := validate.Address(addr); len(missing) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "missing required fields",
			"fields": missing,
		})
	}

	ord, err := h.Orders.Checkout(sid, addr)
	if errors.Is(err, services.ErrCartEmpty) {
		return jsonError(c, fiber.StatusBadRequest, "cart is empty")
	}
	if err != nil {
		applog.Error(c, "checkout.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not place order")
	}
	applog.Info(c, "checkout.placed", map[string]any{"order": ord.ID, "total": ord.Total.String()})
	return c.Status(fiber.StatusCreated).JSON(ord)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.List()
	if err != nil {
		applog.Error(c, "orders.list.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "order not found")
	}
	ord, found, err := h.Orders.Get(id)
	if err != nil {
		applog.Error(c, "orders.get.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load order")
	}
	if !found {
		return jsonError(c, fiber.StatusNotFound, "order not found")
	}
	return c.JSON(ord)
}
