package repos

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartAddIncrementsExistingLine(t *testing.T) {
	db := testDB(t)
	carts := NewCartRepo(db)
	p := sampleItem("p-1", 9.99, 0).Product

	if err := carts.Upsert("sid-1", p, 2); err != nil {
		t.Fatal(err)
	}
	if err := carts.Upsert("sid-1", p, 3); err != nil {
		t.Fatal(err)
	}

	items, err := carts.Items("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("want one merged line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("want quantity 5, got %d", items[0].Quantity)
	}
}

func TestCartKeepsInsertionOrderAndSessions(t *testing.T) {
	db := testDB(t)
	carts := NewCartRepo(db)
	a := sampleItem("p-a", 1, 0).Product
	b := sampleItem("p-b", 2, 0).Product

	if err := carts.Upsert("sid-1", a, 1); err != nil {
		t.Fatal(err)
	}
	if err := carts.Upsert("sid-1", b, 1); err != nil {
		t.Fatal(err)
	}
	if err := carts.Upsert("sid-2", b, 4); err != nil {
		t.Fatal(err)
	}

	items, err := carts.Items("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Product.ID != "p-a" || items[1].Product.ID != "p-b" {
		t.Fatalf("insertion order lost: %+v", items)
	}

	other, err := carts.Items("sid-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 1 || other[0].Quantity != 4 {
		t.Fatalf("sessions must not share carts: %+v", other)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	db := testDB(t)
	carts := NewCartRepo(db)
	a := sampleItem("p-a", 1, 0).Product
	b := sampleItem("p-b", 2, 0).Product

	if err := carts.Upsert("sid-1", a, 1); err != nil {
		t.Fatal(err)
	}
	if err := carts.Upsert("sid-1", b, 1); err != nil {
		t.Fatal(err)
	}

	if err := carts.Remove("sid-1", "p-a"); err != nil {
		t.Fatal(err)
	}
	// Removing an absent line is a no-op, not an error.
	if err := carts.Remove("sid-1", "p-a"); err != nil {
		t.Fatal(err)
	}

	items, _ := carts.Items("sid-1")
	if len(items) != 1 || items[0].Product.ID != "p-b" {
		t.Fatalf("remove left wrong lines: %+v", items)
	}

	if err := carts.Clear("sid-1"); err != nil {
		t.Fatal(err)
	}
	items, _ = carts.Items("sid-1")
	if len(items) != 0 {
		t.Fatalf("clear left lines: %+v", items)
	}
}

func TestCartCorruptSnapshotIsDropped(t *testing.T) {
	db := testDB(t)
	carts := NewCartRepo(db)
	good := sampleItem("p-good", 3.25, 0).Product

	if err := carts.Upsert("sid-1", good, 1); err != nil {
		t.Fatal(err)
	}
	// Simulate a corrupted persisted row.
	if _, err := db.Exec(`
	  INSERT INTO cart_items(session_id, product_id, product_json, qty) VALUES('sid-1','p-bad','{not json',1)
	`); err != nil {
		t.Fatal(err)
	}

	items, err := carts.Items("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Product.ID != "p-good" {
		t.Fatalf("corrupt row must be skipped: %+v", items)
	}
	if !items[0].Product.Price.Equal(decimal.NewFromFloat(3.25)) {
		t.Fatalf("snapshot price mismatch: %s", items[0].Product.Price)
	}
}
