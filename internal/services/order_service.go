package services

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"vendora/internal/domain"
	"vendora/internal/repos"
)

var ErrCartEmpty = errors.New("cart is empty")

type OrderService struct {
	Carts       *repos.CartRepo
	Orders      *repos.OrderRepo
	ShippingFee decimal.Decimal
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo, shippingFee decimal.Decimal) *OrderService {
	return &OrderService{Carts: carts, Orders: orders, ShippingFee: shippingFee}
}

// Checkout is the one linear flow in the layer: non-empty cart, order
// created, cart cleared. There is no persisted in-between state; the
// order either exists fully or not at all.
func (s *OrderService) Checkout(sessionID string, addr domain.ShippingAddress) (domain.Order, error) {
	items, err := s.Carts.Items(sessionID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(items) == 0 {
		return domain.Order{}, ErrCartEmpty
	}

	total := s.ShippingFee
	for _, it := range items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	ord, err := s.Orders.Create(items, total, addr)
	if err != nil {
		return domain.Order{}, err
	}
	// The order is already committed; a failed clear leaves stale cart
	// lines behind but must not undo the checkout.
	if err := s.Carts.Clear(sessionID); err != nil {
		log.Printf("[checkout] clearing cart for session %s after order %s: %v", sessionID, ord.ID, err)
	}
	return ord, nil
}

func (s *OrderService) Get(id string) (domain.Order, bool, error) {
	return s.Orders.Get(id)
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.Orders.List()
}
