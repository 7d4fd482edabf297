package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "vendora/internal/log"
	"vendora/internal/services"
	"vendora/internal/validate"
)

type CartHandler struct {
	Cart    *services.CartService
	Catalog *services.CatalogService
}

// sessionID reads the sid cookie, minting one on first contact. The
// cart lives under this key and survives reloads.
func sessionID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: "sid", Value: sid, Path: "/", HTTPOnly: true})
	}
	return sid
}

func (h *CartHandler) view(c *fiber.Ctx, sid string) error {
	cv, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "cart.view.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load cart")
	}
	return c.JSON(cv)
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return h.view(c, sessionID(c))
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := sessionID(c)

	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid cart payload")
	}
	id, ok := validate.ID(body.ProductID)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}
	if body.Quantity < 1 {
		return jsonError(c, fiber.StatusBadRequest, "quantity must be at least 1")
	}

	p, found, err := h.Catalog.GetProduct(id)
	if err != nil {
		applog.Error(c, "cart.add.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not add to cart")
	}
	if !found {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}

	if err := h.Cart.Add(sid, p, body.Quantity); err != nil {
		applog.Error(c, "cart.add.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not add to cart")
	}
	return h.view(c, sid)
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	sid := sessionID(c)
	id, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid cart payload")
	}
	if err := h.Cart.UpdateQuantity(sid, id, body.Quantity); err != nil {
		applog.Error(c, "cart.update.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not update cart")
	}
	return h.view(c, sid)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := sessionID(c)
	id, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}
	if err := h.Cart.Remove(sid, id); err != nil {
		applog.Error(c, "cart.remove.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not update cart")
	}
	return h.view(c, sid)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := sessionID(c)
	if err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "cart.clear.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not update cart")
	}
	return h.view(c, sid)
}
