package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"vendora/internal/domain"
	applog "vendora/internal/log"
	"vendora/internal/query"
	"vendora/internal/services"
	"vendora/internal/validate"
)

type VendorHandler struct {
	Catalog *services.CatalogService
}

func (h *VendorHandler) List(c *fiber.Ctx) error {
	vendors, err := h.Catalog.ListVendors()
	if err != nil {
		applog.Error(c, "vendors.list.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load vendors")
	}
	return c.JSON(vendors)
}

func (h *VendorHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "vendor not found")
	}
	v, found, err := h.Catalog.GetVendor(id)
	if err != nil {
		applog.Error(c, "vendors.get.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load vendor")
	}
	if !found {
		return jsonError(c, fiber.StatusNotFound, "vendor not found")
	}
	return c.JSON(v)
}

// Products lists the catalog subset owned by one vendor.
func (h *VendorHandler) Products(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "vendor not found")
	}
	products, err := h.Catalog.ListProducts()
	if err != nil {
		applog.Error(c, "vendors.products.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(query.ByVendor(products, id))
}

func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var nv domain.NewVendor
	if err := c.BodyParser(&nv); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid vendor payload")
	}
	if strings.TrimSpace(nv.Name) == "" {
		return jsonError(c, fiber.StatusBadRequest, "name is required")
	}
	v, err := h.Catalog.CreateVendor(nv)
	if err != nil {
		applog.Error(c, "vendors.create.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not create vendor")
	}
	applog.Info(c, "vendors.create", map[string]any{"id": v.ID})
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *VendorHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "vendor not found")
	}
	var patch domain.VendorPatch
	if err := c.BodyParser(&patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid vendor payload")
	}
	v, found, err := h.Catalog.UpdateVendor(id, patch)
	if err != nil {
		applog.Error(c, "vendors.update.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not update vendor")
	}
	if !found {
		return jsonError(c, fiber.StatusNotFound, "vendor not found")
	}
	return c.JSON(v)
}

// Delete removes the vendor and, atomically with it, every product the
// vendor owns.
func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "vendor not found")
	}
	deleted, err := h.Catalog.DeleteVendor(id)
	if err != nil {
		applog.Error(c, "vendors.delete.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not delete vendor")
	}
	if deleted {
		applog.Info(c, "vendors.delete", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
