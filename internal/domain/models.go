package domain

import "github.com/shopspring/decimal"

type Vendor struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	LogoURL       string  `json:"logoUrl"`
	CoverImageURL string  `json:"coverImageUrl"`
	Rating        float64 `json:"rating"` // 0..5
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Gallery     []string        `json:"gallery"`
	VendorID    string          `json:"vendorId"`
	Category    string          `json:"category"`
	Rating      float64         `json:"rating"` // 0..5
	ReviewCount int             `json:"reviewCount"`
}

// CartItem carries a point-in-time snapshot of the product, not a
// reference. Quantity is always >= 1 once stored.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order is append-only: once written it is never mutated, and its total
// is the checkout-time figure, never recomputed from current prices.
type Order struct {
	ID              string          `json:"id"`
	CreatedAt       string          `json:"date"` // RFC3339
	Items           []CartItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}
