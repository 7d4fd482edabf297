package services

import (
	"github.com/shopspring/decimal"

	"vendora/internal/domain"
	"vendora/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

// CartView is the cart plus its derived aggregates, recomputed from the
// authoritative item sequence on every read so the counters can never
// drift.
type CartView struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"total"`
}

// Add increments the line for an already-carted product, otherwise
// appends a new line. Callers validate qty >= 1 before calling.
func (s *CartService) Add(sessionID string, p domain.Product, qty int) error {
	return s.Carts.Upsert(sessionID, p, qty)
}

func (s *CartService) Remove(sessionID, productID string) error {
	return s.Carts.Remove(sessionID, productID)
}

// UpdateQuantity sets the line's quantity outright. Anything <= 0 is a
// removal.
func (s *CartService) UpdateQuantity(sessionID, productID string, qty int) error {
	if qty <= 0 {
		return s.Carts.Remove(sessionID, productID)
	}
	return s.Carts.SetQuantity(sessionID, productID, qty)
}

func (s *CartService) Clear(sessionID string) error {
	return s.Carts.Clear(sessionID)
}

func (s *CartService) View(sessionID string) (CartView, error) {
	items, err := s.Carts.Items(sessionID)
	if err != nil {
		return CartView{}, err
	}
	count := 0
	total := decimal.Zero
	for _, it := range items {
		count += it.Quantity
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return CartView{Items: items, Count: count, Total: total}, nil
}
