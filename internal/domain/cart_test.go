package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartAddSnapshotsProduct(t *testing.T) {
	product := Product{
		ID:         "p1",
		Name:       "Empanada de Pino",
		Price:      decimal.NewFromInt(2500),
		CostMethod: CostDetailed,
		Ingredients: []Ingredient{
			{Name: "Harina", Quantity: decimal.RequireFromString("0.2"), Unit: "kg", UnitCost: decimal.NewFromInt(1000)},
		},
	}

	var cart Cart
	cart.Add(product)
	cart.Add(product)

	product.Price = decimal.NewFromInt(9999)
	product.Ingredients[0].UnitCost = decimal.NewFromInt(1)

	if len(cart.Items) != 1 {
		t.Fatalf("expected one cart line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", cart.Items[0].Quantity)
	}
	if !cart.Items[0].Price.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("catalog edit leaked into cart price: %s", cart.Items[0].Price)
	}
	if !cart.Items[0].Ingredients[0].UnitCost.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("catalog edit leaked into cart ingredients")
	}
	if !cart.Total().Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected total 5000, got %s", cart.Total())
	}
}

func TestCartUpdateQuantityDropsEmptyLines(t *testing.T) {
	var cart Cart
	cart.Add(Product{ID: "p1", Price: decimal.NewFromInt(100)})
	cart.Add(Product{ID: "p2", Price: decimal.NewFromInt(300)})
	cart.UpdateQuantity("p2", 2)

	cart.UpdateQuantity("p1", -5)
	if len(cart.Items) != 1 || cart.Items[0].ID != "p2" {
		t.Fatalf("expected only p2 to remain, got %+v", cart.Items)
	}
	if cart.ItemCount() != 3 {
		t.Fatalf("expected 3 units, got %d", cart.ItemCount())
	}

	cart.Clear()
	if cart.ItemCount() != 0 || !cart.Total().IsZero() {
		t.Fatalf("expected empty cart after clear")
	}
}
