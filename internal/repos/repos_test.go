package repos

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"vendora/internal/domain"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	if err := ensureSchema(db); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustVendor(t *testing.T, vendors *VendorRepo, name string) domain.Vendor {
	t.Helper()
	v, err := vendors.Create(domain.NewVendor{Name: name})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func mustProduct(t *testing.T, products *ProductRepo, np domain.NewProduct) domain.Product {
	t.Helper()
	p, err := products.Create(np)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestProductCreateAssignsFreshIdentity(t *testing.T) {
	db := testDB(t)
	vendors := NewVendorRepo(db)
	products := NewProductRepo(db)
	v := mustVendor(t, vendors, "Aurora Goods")

	a := mustProduct(t, products, domain.NewProduct{
		Name: "Widget", Price: decimal.NewFromFloat(9.99), VendorID: v.ID, Category: "Tools",
	})
	b := mustProduct(t, products, domain.NewProduct{
		Name: "Widget", Price: decimal.NewFromFloat(9.99), VendorID: v.ID, Category: "Tools",
	})

	if !strings.HasPrefix(a.ID, "p-") || a.ID == b.ID {
		t.Fatalf("want distinct p- ids, got %q and %q", a.ID, b.ID)
	}
	if a.Rating != 0 || a.ReviewCount != 0 {
		t.Fatalf("create must zero rating/reviewCount, got %+v", a)
	}

	got, found, err := products.Get(a.ID)
	if err != nil || !found {
		t.Fatalf("get after create: found=%v err=%v", found, err)
	}
	if got.Name != "Widget" || !got.Price.Equal(decimal.NewFromFloat(9.99)) {
		t.Fatalf("stored product mismatch: %+v", got)
	}
}

func TestProductUpdateIsPartial(t *testing.T) {
	db := testDB(t)
	vendors := NewVendorRepo(db)
	products := NewProductRepo(db)
	v := mustVendor(t, vendors, "Aurora Goods")
	p := mustProduct(t, products, domain.NewProduct{
		Name: "Widget", Description: "A widget", Price: decimal.NewFromFloat(9.99),
		VendorID: v.ID, Category: "Tools", Gallery: []string{"a.jpg"},
	})

	name := "Super Widget"
	updated, found, err := products.Update(p.ID, domain.ProductPatch{Name: &name})
	if err != nil || !found {
		t.Fatalf("update: found=%v err=%v", found, err)
	}
	if updated.Name != "Super Widget" {
		t.Fatalf("name not applied: %+v", updated)
	}
	if updated.Description != "A widget" || !updated.Price.Equal(p.Price) || len(updated.Gallery) != 1 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	// Unknown id: no error, just no update.
	_, found, err = products.Update("p-missing", domain.ProductPatch{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("update of missing product reported found")
	}
}

func TestProductDeleteReportsRemoval(t *testing.T) {
	db := testDB(t)
	vendors := NewVendorRepo(db)
	products := NewProductRepo(db)
	v := mustVendor(t, vendors, "Aurora Goods")
	p := mustProduct(t, products, domain.NewProduct{
		Name: "Widget", Price: decimal.NewFromInt(1), VendorID: v.ID, Category: "Tools",
	})

	deleted, err := products.Delete(p.ID)
	if err != nil || !deleted {
		t.Fatalf("first delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = products.Delete(p.ID)
	if err != nil || deleted {
		t.Fatalf("second delete: deleted=%v err=%v", deleted, err)
	}
}

func TestCategoriesDistinctSorted(t *testing.T) {
	db := testDB(t)
	vendors := NewVendorRepo(db)
	products := NewProductRepo(db)
	v := mustVendor(t, vendors, "Aurora Goods")

	for _, cat := range []string{"Outdoor", "Home", "Outdoor", "Electronics"} {
		mustProduct(t, products, domain.NewProduct{
			Name: "X", Price: decimal.NewFromInt(1), VendorID: v.ID, Category: cat,
		})
	}

	cats, err := products.Categories()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Electronics", "Home", "Outdoor"}
	if len(cats) != len(want) {
		t.Fatalf("want %v, got %v", want, cats)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Fatalf("want %v, got %v", want, cats)
		}
	}
}

func TestVendorDeleteCascadesToProducts(t *testing.T) {
	db := testDB(t)
	vendors := NewVendorRepo(db)
	products := NewProductRepo(db)
	a := mustVendor(t, vendors, "Aurora Goods")
	b := mustVendor(t, vendors, "Peak Supply Co.")

	mustProduct(t, products, domain.NewProduct{Name: "A1", Price: decimal.NewFromInt(1), VendorID: a.ID, Category: "Home"})
	mustProduct(t, products, domain.NewProduct{Name: "A2", Price: decimal.NewFromInt(2), VendorID: a.ID, Category: "Home"})
	keeper := mustProduct(t, products, domain.NewProduct{Name: "B1", Price: decimal.NewFromInt(3), VendorID: b.ID, Category: "Outdoor"})

	deleted, err := vendors.Delete(a.ID)
	if err != nil || !deleted {
		t.Fatalf("vendor delete: deleted=%v err=%v", deleted, err)
	}

	left, err := products.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 1 || left[0].ID != keeper.ID {
		t.Fatalf("cascade must remove exactly the vendor's products, left %+v", left)
	}
	if _, found, _ := vendors.Get(a.ID); found {
		t.Fatal("vendor still present after delete")
	}

	deleted, err = vendors.Delete(a.ID)
	if err != nil || deleted {
		t.Fatalf("repeat delete: deleted=%v err=%v", deleted, err)
	}
}

func TestVendorCreateForcesZeroRating(t *testing.T) {
	db := testDB(t)
	vendors := NewVendorRepo(db)
	v := mustVendor(t, vendors, "Aurora Goods")
	if v.Rating != 0 {
		t.Fatalf("want rating 0, got %v", v.Rating)
	}
	if !strings.HasPrefix(v.ID, "v-") {
		t.Fatalf("want v- id, got %q", v.ID)
	}
}

func TestSeedAppliesOnlyOnFirstRun(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "vendora.db")

	db, err := OpenDB(dsn)
	if err != nil {
		t.Fatal(err)
	}
	products := NewProductRepo(db)
	seeded, err := products.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(seeded) == 0 {
		t.Fatal("fresh store must be seeded")
	}

	created := mustProduct(t, products, domain.NewProduct{
		Name: "Reload Survivor", Price: decimal.NewFromFloat(12.50), VendorID: seeded[0].VendorID, Category: "Home",
	})
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	// Second open: data present, seed not reapplied.
	db2, err := OpenDB(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db2.Close()
	products2 := NewProductRepo(db2)
	after, err := products2.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(seeded)+1 {
		t.Fatalf("want %d products after reload, got %d", len(seeded)+1, len(after))
	}

	got, found, err := products2.Get(created.ID)
	if err != nil || !found {
		t.Fatalf("created product lost on reload: found=%v err=%v", found, err)
	}
	if got.Name != created.Name || !got.Price.Equal(created.Price) || got.VendorID != created.VendorID {
		t.Fatalf("round-trip mismatch: want %+v, got %+v", created, got)
	}
}

func TestOpenDBEnforcesForeignKeys(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "vendora.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// Exhaust the pool's first connection so the insert below runs on a
	// fresh one; enforcement must not depend on which connection serves it.
	db.SetMaxIdleConns(0)

	products := NewProductRepo(db)
	if _, err := products.Create(domain.NewProduct{
		Name: "Orphan", Price: decimal.NewFromInt(1), VendorID: "v-nobody", Category: "Home",
	}); err == nil {
		t.Fatal("product referencing an unknown vendor must be rejected")
	}
}

func TestSeedNotReappliedAfterCatalogEmptied(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "vendora.db")

	db, err := OpenDB(dsn)
	if err != nil {
		t.Fatal(err)
	}
	products := NewProductRepo(db)
	vendors := NewVendorRepo(db)

	seeded, err := products.List()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range seeded {
		if _, err := products.Delete(p.ID); err != nil {
			t.Fatal(err)
		}
	}
	vendorList, err := vendors.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(vendorList) == 0 {
		t.Fatal("seed vendors missing")
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	// The surviving vendors mark the store as used: reopening must not
	// reinsert the demo rows (their ids would collide) or fail.
	db2, err := OpenDB(dsn)
	if err != nil {
		t.Fatalf("reopen after emptying catalog: %v", err)
	}
	defer db2.Close()

	after, err := NewProductRepo(db2).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 0 {
		t.Fatalf("emptied catalog was reseeded: %d products", len(after))
	}
	vendorsAfter, err := NewVendorRepo(db2).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(vendorsAfter) != len(vendorList) {
		t.Fatalf("want %d vendors untouched, got %d", len(vendorList), len(vendorsAfter))
	}
}
