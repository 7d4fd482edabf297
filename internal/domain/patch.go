package domain

import "github.com/shopspring/decimal"

// NewProduct is the authoring payload for product creation. The store
// assigns the id and zeroes rating/reviewCount itself, so neither is
// accepted here.
type NewProduct struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Gallery     []string        `json:"gallery"`
	VendorID    string          `json:"vendorId"`
	Category    string          `json:"category"`
}

type NewVendor struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	LogoURL       string `json:"logoUrl"`
	CoverImageURL string `json:"coverImageUrl"`
}

// ProductPatch is a partial update: nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	Gallery     *[]string        `json:"gallery"`
	VendorID    *string          `json:"vendorId"`
	Category    *string          `json:"category"`
	Rating      *float64         `json:"rating"`
	ReviewCount *int             `json:"reviewCount"`
}

type VendorPatch struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	LogoURL       *string  `json:"logoUrl"`
	CoverImageURL *string  `json:"coverImageUrl"`
	Rating        *float64 `json:"rating"`
}
