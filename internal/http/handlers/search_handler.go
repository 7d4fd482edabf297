package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "vendora/internal/log"
	"vendora/internal/query"
	"vendora/internal/services"
	"vendora/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

// Search runs the query engine over a fresh catalog snapshot. With a
// query, matching happens first and filters narrow the matches; without
// one, the filters narrow the whole catalog (browse mode).
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := validate.Q(c.Query("q"))
	category := strings.TrimSpace(c.Query("category"))
	vendorID := strings.TrimSpace(c.Query("vendor"))

	min, ok := validate.Price(c.Query("min"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid min price")
	}
	max, ok := validate.Price(c.Query("max"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid max price")
	}

	products, err := h.Catalog.ListProducts()
	if err != nil {
		applog.Error(c, "search.error", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load results")
	}

	results := products
	if q != "" {
		results = query.Search(products, q)
	}
	f := query.Filter{Category: category, VendorID: vendorID, MinPrice: min, MaxPrice: max}
	results = f.Apply(results)

	return c.JSON(fiber.Map{"query": q, "count": len(results), "products": results})
}
