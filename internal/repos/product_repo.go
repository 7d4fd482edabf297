package repos

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"vendora/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID          string          `db:"id"`
	VendorID    string          `db:"vendor_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	ImageURL    string          `db:"image_url"`
	GalleryJSON string          `db:"gallery_json"`
	Category    string          `db:"category"`
	Rating      float64         `db:"rating"`
	ReviewCount int             `db:"review_count"`
}

const productCols = `
  id, vendor_id, name, COALESCE(description,'') AS description, price,
  COALESCE(image_url,'') AS image_url, COALESCE(gallery_json,'[]') AS gallery_json,
  category, rating, review_count`

func (r productRow) toDomain() domain.Product {
	gallery := []string{}
	if r.GalleryJSON != "" {
		_ = json.Unmarshal([]byte(r.GalleryJSON), &gallery)
	}
	if gallery == nil {
		gallery = []string{}
	}
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Gallery:     gallery,
		VendorID:    r.VendorID,
		Category:    r.Category,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
	}
}

func marshalGallery(g []string) string {
	if g == nil {
		g = []string{}
	}
	b, _ := json.Marshal(g)
	return string(b)
}

// List returns the full catalog in insertion order.
func (r *ProductRepo) List() ([]domain.Product, error) {
	var rows []productRow
	err := r.db.Select(&rows, `SELECT `+productCols+` FROM products ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Get reports ok=false for an unknown id; that is an empty result, not
// an error.
func (r *ProductRepo) Get(id string) (domain.Product, bool, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, err
	}
	return row.toDomain(), true, nil
}

// Create assigns a fresh id and zeroes rating/reviewCount no matter
// what the authoring flow supplied.
func (r *ProductRepo) Create(np domain.NewProduct) (domain.Product, error) {
	p := domain.Product{
		ID:          "p-" + uuid.NewString(),
		Name:        np.Name,
		Description: np.Description,
		Price:       np.Price,
		ImageURL:    np.ImageURL,
		Gallery:     append([]string{}, np.Gallery...),
		VendorID:    np.VendorID,
		Category:    np.Category,
		Rating:      0,
		ReviewCount: 0,
	}
	_, err := r.db.Exec(`
	  INSERT INTO products(id, vendor_id, name, description, price, image_url, gallery_json, category, rating, review_count)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, 0, 0)
	`, p.ID, p.VendorID, p.Name, p.Description, p.Price, p.ImageURL, marshalGallery(p.Gallery), p.Category)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Update merges non-nil patch fields into the stored product. A missing
// id yields ok=false with no error.
func (r *ProductRepo) Update(id string, patch domain.ProductPatch) (domain.Product, bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Product{}, false, err
	}
	defer func() { _ = tx.Rollback() }()

	var row productRow
	err = tx.Get(&row, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, err
	}

	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.Price != nil {
		row.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		row.ImageURL = *patch.ImageURL
	}
	if patch.Gallery != nil {
		row.GalleryJSON = marshalGallery(*patch.Gallery)
	}
	if patch.VendorID != nil {
		row.VendorID = *patch.VendorID
	}
	if patch.Category != nil {
		row.Category = *patch.Category
	}
	if patch.Rating != nil {
		row.Rating = *patch.Rating
	}
	if patch.ReviewCount != nil {
		row.ReviewCount = *patch.ReviewCount
	}

	_, err = tx.Exec(`
	  UPDATE products
	  SET vendor_id=?, name=?, description=?, price=?, image_url=?, gallery_json=?, category=?, rating=?, review_count=?
	  WHERE id=?
	`, row.VendorID, row.Name, row.Description, row.Price, row.ImageURL, row.GalleryJSON, row.Category, row.Rating, row.ReviewCount, id)
	if err != nil {
		return domain.Product{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Product{}, false, err
	}
	return row.toDomain(), true, nil
}

// Delete reports whether a row was actually removed.
func (r *ProductRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Categories lists the distinct category labels currently in the
// catalog, sorted, no duplicates.
func (r *ProductRepo) Categories() ([]string, error) {
	out := []string{}
	err := r.db.Select(&out, `SELECT DISTINCT category FROM products ORDER BY category`)
	return out, err
}
