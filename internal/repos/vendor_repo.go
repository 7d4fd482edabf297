package repos

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"vendora/internal/domain"
)

type VendorRepo struct{ db *sqlx.DB }

func NewVendorRepo(db *sqlx.DB) *VendorRepo { return &VendorRepo{db: db} }

type vendorRow struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	Description   string  `db:"description"`
	LogoURL       string  `db:"logo_url"`
	CoverImageURL string  `db:"cover_image_url"`
	Rating        float64 `db:"rating"`
}

const vendorCols = `
  id, name, COALESCE(description,'') AS description,
  COALESCE(logo_url,'') AS logo_url, COALESCE(cover_image_url,'') AS cover_image_url, rating`

func (r vendorRow) toDomain() domain.Vendor {
	return domain.Vendor{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		LogoURL:       r.LogoURL,
		CoverImageURL: r.CoverImageURL,
		Rating:        r.Rating,
	}
}

func (r *VendorRepo) List() ([]domain.Vendor, error) {
	var rows []vendorRow
	err := r.db.Select(&rows, `SELECT `+vendorCols+` FROM vendors ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Vendor, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *VendorRepo) Get(id string) (domain.Vendor, bool, error) {
	var row vendorRow
	err := r.db.Get(&row, `SELECT `+vendorCols+` FROM vendors WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vendor{}, false, nil
	}
	if err != nil {
		return domain.Vendor{}, false, err
	}
	return row.toDomain(), true, nil
}

// Create assigns a fresh id and forces rating to 0.
func (r *VendorRepo) Create(nv domain.NewVendor) (domain.Vendor, error) {
	v := domain.Vendor{
		ID:            "v-" + uuid.NewString(),
		Name:          nv.Name,
		Description:   nv.Description,
		LogoURL:       nv.LogoURL,
		CoverImageURL: nv.CoverImageURL,
		Rating:        0,
	}
	_, err := r.db.Exec(`
	  INSERT INTO vendors(id, name, description, logo_url, cover_image_url, rating)
	  VALUES(?, ?, ?, ?, ?, 0)
	`, v.ID, v.Name, v.Description, v.LogoURL, v.CoverImageURL)
	if err != nil {
		return domain.Vendor{}, err
	}
	return v, nil
}

func (r *VendorRepo) Update(id string, patch domain.VendorPatch) (domain.Vendor, bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Vendor{}, false, err
	}
	defer func() { _ = tx.Rollback() }()

	var row vendorRow
	err = tx.Get(&row, `SELECT `+vendorCols+` FROM vendors WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vendor{}, false, nil
	}
	if err != nil {
		return domain.Vendor{}, false, err
	}

	if patch.Name != nil {
		row.Name = *patch.Name
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.LogoURL != nil {
		row.LogoURL = *patch.LogoURL
	}
	if patch.CoverImageURL != nil {
		row.CoverImageURL = *patch.CoverImageURL
	}
	if patch.Rating != nil {
		row.Rating = *patch.Rating
	}

	_, err = tx.Exec(`
	  UPDATE vendors SET name=?, description=?, logo_url=?, cover_image_url=?, rating=? WHERE id=?
	`, row.Name, row.Description, row.LogoURL, row.CoverImageURL, row.Rating, id)
	if err != nil {
		return domain.Vendor{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Vendor{}, false, err
	}
	return row.toDomain(), true, nil
}

// Delete removes the vendor and every product it owns in one
// transaction, so no caller can observe a half-applied cascade.
func (r *VendorRepo) Delete(id string) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM products WHERE vendor_id = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.Exec(`DELETE FROM vendors WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}
