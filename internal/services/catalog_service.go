package services

import (
	"vendora/internal/domain"
	"vendora/internal/repos"
)

// CatalogService is the entity-store facade: products, vendors and the
// derived category list.
type CatalogService struct {
	Products *repos.ProductRepo
	Vendors  *repos.VendorRepo
}

func NewCatalogService(products *repos.ProductRepo, vendors *repos.VendorRepo) *CatalogService {
	return &CatalogService{Products: products, Vendors: vendors}
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Products.List()
}

func (s *CatalogService) GetProduct(id string) (domain.Product, bool, error) {
	return s.Products.Get(id)
}

func (s *CatalogService) CreateProduct(np domain.NewProduct) (domain.Product, error) {
	return s.Products.Create(np)
}

func (s *CatalogService) UpdateProduct(id string, patch domain.ProductPatch) (domain.Product, bool, error) {
	return s.Products.Update(id, patch)
}

func (s *CatalogService) DeleteProduct(id string) (bool, error) {
	return s.Products.Delete(id)
}

func (s *CatalogService) ListVendors() ([]domain.Vendor, error) {
	return s.Vendors.List()
}

func (s *CatalogService) GetVendor(id string) (domain.Vendor, bool, error) {
	return s.Vendors.Get(id)
}

func (s *CatalogService) CreateVendor(nv domain.NewVendor) (domain.Vendor, error) {
	return s.Vendors.Create(nv)
}

func (s *CatalogService) UpdateVendor(id string, patch domain.VendorPatch) (domain.Vendor, bool, error) {
	return s.Vendors.Update(id, patch)
}

// DeleteVendor cascades to the vendor's products; see VendorRepo.Delete.
func (s *CatalogService) DeleteVendor(id string) (bool, error) {
	return s.Vendors.Delete(id)
}

func (s *CatalogService) ListCategories() ([]string, error) {
	return s.Products.Categories()
}
