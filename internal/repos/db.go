package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	// Enforce foreign keys on every pooled connection, not just the
	// one that happens to run the schema bootstrap.
	if !strings.Contains(dsn, "_pragma") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// First-run only: if the catalog already holds data the seed is
	// never reapplied.
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Vendors
CREATE TABLE IF NOT EXISTS vendors(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  logo_url TEXT,
  cover_image_url TEXT,
  rating NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL REFERENCES vendors(id),
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image_url TEXT,
  gallery_json TEXT,
  category TEXT NOT NULL,
  rating NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  review_count INTEGER NOT NULL DEFAULT 0 CHECK (review_count >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_vendor   ON products(vendor_id);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Orders (append-only: no UPDATE or DELETE is ever issued)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  total NUMERIC NOT NULL,
  ship_name TEXT NOT NULL,
  ship_address TEXT NOT NULL,
  ship_city TEXT NOT NULL,
  ship_postal_code TEXT NOT NULL,
  ship_country TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  product_json TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  PRIMARY KEY (order_id, position)
);

-- Carts (one row per session/product pair, snapshot taken at add time)
CREATE TABLE IF NOT EXISTS cart_items(
  session_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_json TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  PRIMARY KEY (session_id, product_id)
);
CREATE INDEX IF NOT EXISTS idx_cart_items_session ON cart_items(session_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	// A store with any vendor or product has been used before, even if
	// the catalog was later emptied through the API; only a genuinely
	// fresh store gets the demo data.
	var products, vendors int
	if err := db.Get(&products, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if err := db.Get(&vendors, `SELECT COUNT(*) FROM vendors`); err != nil {
		return err
	}
	if products > 0 || vendors > 0 {
		return nil
	}

	log.Println("[seed] inserting demo vendors/products")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO vendors(id,name,description,logo_url,cover_image_url,rating) VALUES
	  ('v-aurora','Aurora Goods','Hand-finished homeware from small workshops.','vendors/v-aurora/logo.jpg','vendors/v-aurora/cover.jpg',4.7),
	  ('v-peak','Peak Supply Co.','Trail-tested outdoor gear.','vendors/v-peak/logo.jpg','vendors/v-peak/cover.jpg',4.4),
	  ('v-bytecraft','ByteCraft','Refurbished and boutique electronics.','vendors/v-bytecraft/logo.jpg','vendors/v-bytecraft/cover.jpg',4.1)`); err != nil {
		return err
	}

	if _, err := tx.Exec(`INSERT INTO products(id,vendor_id,name,description,price,image_url,gallery_json,category,rating,review_count) VALUES
	  ('p-walnut-board','v-aurora','Walnut Serving Board','End-grain walnut board, food-safe oil finish.',64.00,'products/p-walnut-board/main.jpg','["products/p-walnut-board/1.jpg","products/p-walnut-board/2.jpg"]','Home',4.8,112),
	  ('p-stone-vase','v-aurora','Stoneware Vase','Wheel-thrown vase with matte glaze.',38.50,'products/p-stone-vase/main.jpg','[]','Home',4.6,57),
	  ('p-ridge-tent','v-peak','Ridgeline 2P Tent','Two-person three-season tent, 1.9kg.',289.99,'products/p-ridge-tent/main.jpg','["products/p-ridge-tent/1.jpg"]','Outdoor',4.5,203),
	  ('p-ember-stove','v-peak','Ember Micro Stove','Titanium canister stove, 45g.',59.95,'products/p-ember-stove/main.jpg','[]','Outdoor',4.3,164),
	  ('p-deck-64','v-bytecraft','Deck64 Keyboard','Hot-swappable 60% mechanical keyboard.',119.00,'products/p-deck-64/main.jpg','["products/p-deck-64/1.jpg","products/p-deck-64/2.jpg"]','Electronics',4.2,88),
	  ('p-tube-amp','v-bytecraft','TA-10 Tube Amp','Restored single-ended tube amplifier.',449.00,'products/p-tube-amp/main.jpg','[]','Electronics',4.9,31)`); err != nil {
		return err
	}

	return tx.Commit()
}
