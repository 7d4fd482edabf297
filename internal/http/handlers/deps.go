package handlers

import (
	"github.com/jmoiron/sqlx"

	"vendora/internal/config"
	"vendora/internal/repos"
	"vendora/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	VendorHandler   *VendorHandler
	CategoryHandler *CategoryHandler
	SearchHandler   *SearchHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	vendRepo := repos.NewVendorRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, vendRepo)
	cartSvc := services.NewCartService(cartRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo, cfg.ShippingFee)

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		VendorHandler:   &VendorHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc, Catalog: catalogSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
	}
}
