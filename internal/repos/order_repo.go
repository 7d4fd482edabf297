package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"vendora/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

var (
	orderIDMu   sync.Mutex
	lastOrderMs int64
)

// nextOrderID yields generation-ordered ids. Two orders created in the
// same millisecond still get strictly increasing ids.
func nextOrderID() string {
	orderIDMu.Lock()
	defer orderIDMu.Unlock()
	ms := time.Now().UnixMilli()
	if ms <= lastOrderMs {
		ms = lastOrderMs + 1
	}
	lastOrderMs = ms
	return fmt.Sprintf("ord_%d", ms)
}

type orderRow struct {
	ID             string          `db:"id"`
	Total          decimal.Decimal `db:"total"`
	ShipName       string          `db:"ship_name"`
	ShipAddress    string          `db:"ship_address"`
	ShipCity       string          `db:"ship_city"`
	ShipPostalCode string          `db:"ship_postal_code"`
	ShipCountry    string          `db:"ship_country"`
	CreatedAt      string          `db:"created_at"`
}

func (r orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Items:     []domain.CartItem{},
		Total:     r.Total,
		ShippingAddress: domain.ShippingAddress{
			Name:       r.ShipName,
			Address:    r.ShipAddress,
			City:       r.ShipCity,
			PostalCode: r.ShipPostalCode,
			Country:    r.ShipCountry,
		},
	}
}

type orderItemRow struct {
	OrderID     string `db:"order_id"`
	Position    int    `db:"position"`
	ProductJSON string `db:"product_json"`
	Qty         int    `db:"qty"`
}

// Create appends an order built from a deep copy of the given items, so
// later cart mutation cannot reach into a placed order.
func (r *OrderRepo) Create(items []domain.CartItem, total decimal.Decimal, addr domain.ShippingAddress) (domain.Order, error) {
	id := nextOrderID()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
	  INSERT INTO orders(id, total, ship_name, ship_address, ship_city, ship_postal_code, ship_country, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, id, total, addr.Name, addr.Address, addr.City, addr.PostalCode, addr.Country, createdAt)
	if err != nil {
		return domain.Order{}, err
	}

	snapshot := make([]domain.CartItem, 0, len(items))
	for i, it := range items {
		b, err := json.Marshal(it.Product)
		if err != nil {
			return domain.Order{}, err
		}
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, position, product_json, qty) VALUES(?, ?, ?, ?)
		`, id, i, string(b), it.Quantity); err != nil {
			return domain.Order{}, err
		}
		// Rebuild the item from its serialized form: the returned order
		// shares nothing with the caller's slice.
		var p domain.Product
		if err := json.Unmarshal(b, &p); err != nil {
			return domain.Order{}, err
		}
		if p.Gallery == nil {
			p.Gallery = []string{}
		}
		snapshot = append(snapshot, domain.CartItem{Product: p, Quantity: it.Quantity})
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		ID:              id,
		CreatedAt:       createdAt,
		Items:           snapshot,
		Total:           total,
		ShippingAddress: addr,
	}, nil
}

func (r *OrderRepo) Get(id string) (domain.Order, bool, error) {
	var row orderRow
	err := r.db.Get(&row, `
	  SELECT id, total, ship_name, ship_address, ship_city, ship_postal_code, ship_country, created_at
	  FROM orders WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, err
	}

	items, err := r.itemsFor([]string{id})
	if err != nil {
		return domain.Order{}, false, err
	}
	o := row.toDomain()
	o.Items = items[id]
	if o.Items == nil {
		o.Items = []domain.CartItem{}
	}
	return o, true, nil
}

// List returns every order, most recent first. Dashboards depend on
// this ordering.
func (r *OrderRepo) List() ([]domain.Order, error) {
	var rows []orderRow
	err := r.db.Select(&rows, `
	  SELECT id, total, ship_name, ship_address, ship_city, ship_postal_code, ship_country, created_at
	  FROM orders
	  ORDER BY datetime(created_at) DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	grouped, err := r.itemsFor(ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o := row.toDomain()
		if items := grouped[row.ID]; items != nil {
			o.Items = items
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepo) itemsFor(orderIDs []string) (map[string][]domain.CartItem, error) {
	out := map[string][]domain.CartItem{}
	if len(orderIDs) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`
	  SELECT order_id, position, product_json, qty
	  FROM order_items WHERE order_id IN (?)
	  ORDER BY order_id, position
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	var rows []orderItemRow
	if err := r.db.Select(&rows, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		var p domain.Product
		if err := json.Unmarshal([]byte(row.ProductJSON), &p); err != nil {
			return nil, fmt.Errorf("order %s item %d: %w", row.OrderID, row.Position, err)
		}
		if p.Gallery == nil {
			p.Gallery = []string{}
		}
		out[row.OrderID] = append(out[row.OrderID], domain.CartItem{Product: p, Quantity: row.Qty})
	}
	return out, nil
}
