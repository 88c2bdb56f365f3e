package user

import (
	"testing"

	"swadbazaar-backend/internal/models"
)

func TestMergeItemSumsQuantity(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Variant: "500g", Quantity: 1, Price: 120},
	}

	items = mergeItem(items, models.CartItem{ProductID: "p1", Variant: "500g", Quantity: 2, Price: 120})

	if len(items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3 after merge, got %d", items[0].Quantity)
	}
}

func TestMergeItemDifferentVariant(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Variant: "500g", Quantity: 1},
	}

	items = mergeItem(items, models.CartItem{ProductID: "p1", Variant: "1kg", Quantity: 1})

	if len(items) != 2 {
		t.Fatalf("different pack sizes must stay separate lines, got %d", len(items))
	}
}

func TestMergeItemNewProduct(t *testing.T) {
	var items []models.CartItem

	items = mergeItem(items, models.CartItem{ProductID: "p1", Quantity: 1})
	items = mergeItem(items, models.CartItem{ProductID: "p2", Quantity: 4})

	if len(items) != 2 {
		t.Fatalf("expected two lines, got %d", len(items))
	}
	if items[1].Quantity != 4 {
		t.Fatalf("expected quantity 4 on second line, got %d", items[1].Quantity)
	}
}

func TestRemoveItemAbsentIsNoOp(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
	}

	items = removeItem(items, "missing")

	if len(items) != 2 {
		t.Fatalf("removing an absent product must not change the cart, got %d lines", len(items))
	}
}

func TestRemoveItem(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
	}

	items = removeItem(items, "p1")

	if len(items) != 1 {
		t.Fatalf("expected one remaining line, got %d", len(items))
	}
	if items[0].ProductID != "p2" {
		t.Fatalf("wrong line removed, remaining %s", items[0].ProductID)
	}
}

func TestSetQuantity(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Quantity: 1},
	}

	items = setQuantity(items, "p1", 7)

	if items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", items[0].Quantity)
	}
}
