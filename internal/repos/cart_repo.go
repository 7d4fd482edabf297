package repos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"vendora/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type cartItemRow struct {
	ProductID   string `db:"product_id"`
	ProductJSON string `db:"product_json"`
	Qty         int    `db:"qty"`
}

// Upsert adds the product with the given quantity, or increments the
// existing line's quantity. The snapshot taken at first add is kept.
func (r *CartRepo) Upsert(sessionID string, p domain.Product, qty int) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO cart_items(session_id, product_id, product_json, qty, created_at)
	  VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(session_id, product_id) DO UPDATE
	  SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, sessionID, p.ID, string(b), qty)
	return err
}

// SetQuantity replaces the line's quantity. Absent lines are left
// absent; the missing update is the signal.
func (r *CartRepo) SetQuantity(sessionID, productID string, qty int) error {
	_, err := r.db.Exec(`
	  UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE session_id = ? AND product_id = ?
	`, qty, sessionID, productID)
	return err
}

func (r *CartRepo) Remove(sessionID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE session_id = ? AND product_id = ?`, sessionID, productID)
	return err
}

func (r *CartRepo) Clear(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE session_id = ?`, sessionID)
	return err
}

// Items returns the session's cart in insertion order. A line whose
// stored snapshot no longer parses is dropped rather than failing the
// whole cart.
func (r *CartRepo) Items(sessionID string) ([]domain.CartItem, error) {
	var rows []cartItemRow
	err := r.db.Select(&rows, `
	  SELECT product_id, product_json, qty
	  FROM cart_items WHERE session_id = ?
	  ORDER BY rowid
	`, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CartItem, 0, len(rows))
	for _, row := range rows {
		var p domain.Product
		if err := json.Unmarshal([]byte(row.ProductJSON), &p); err != nil {
			continue
		}
		if p.Gallery == nil {
			p.Gallery = []string{}
		}
		out = append(out, domain.CartItem{Product: p, Quantity: row.Qty})
	}
	return out, nil
}
