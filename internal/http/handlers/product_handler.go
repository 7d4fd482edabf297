package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"vendora/internal/domain"
	applog "vendora/internal/log"
	"vendora/internal/services"
	"vendora/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProducts()
	if err != nil {
		applog.Error(c, "products.list.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	p, found, err := h.Catalog.GetProduct(id)
	if err != nil {
		applog.Error(c, "products.get.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load product")
	}
	if !found {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var np domain.NewProduct
	if err := c.BodyParser(&np); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid product payload")
	}
	if strings.TrimSpace(np.Name) == "" {
		return jsonError(c, fiber.StatusBadRequest, "name is required")
	}
	if np.Price.IsNegative() {
		return jsonError(c, fiber.StatusBadRequest, "price must not be negative")
	}
	// A product must belong to an existing vendor at creation time.
	if _, found, err := h.Catalog.GetVendor(np.VendorID); err != nil {
		applog.Error(c, "products.create.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not create product")
	} else if !found {
		return jsonError(c, fiber.StatusBadRequest, "unknown vendor")
	}

	p, err := h.Catalog.CreateProduct(np)
	if err != nil {
		applog.Error(c, "products.create.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not create product")
	}
	applog.Info(c, "products.create", map[string]any{"id": p.ID, "vendor": p.VendorID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	var patch domain.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid product payload")
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return jsonError(c, fiber.StatusBadRequest, "price must not be negative")
	}
	// A re-homed product still needs a real vendor.
	if patch.VendorID != nil {
		if _, found, err := h.Catalog.GetVendor(*patch.VendorID); err != nil {
			applog.Error(c, "products.update.error", err, nil)
			return jsonError(c, fiber.StatusInternalServerError, "could not update product")
		} else if !found {
			return jsonError(c, fiber.StatusBadRequest, "unknown vendor")
		}
	}

	p, found, err := h.Catalog.UpdateProduct(id, patch)
	if err != nil {
		applog.Error(c, "products.update.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not update product")
	}
	if !found {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	deleted, err := h.Catalog.DeleteProduct(id)
	if err != nil {
		applog.Error(c, "products.delete.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not delete product")
	}
	if deleted {
		applog.Info(c, "products.delete", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
