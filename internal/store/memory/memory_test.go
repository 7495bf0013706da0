package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"gastropos/internal/domain"
	"gastropos/internal/store"
)

func testSale(id string, ts int64) domain.Sale {
	return domain.Sale{
		ID:        id,
		Timestamp: ts,
		Items: []domain.CartItem{{
			Product:  domain.Product{ID: "p2", Name: "Pollo Asado Entero", Price: decimal.NewFromInt(8500)},
			Quantity: 1,
		}},
		Total: decimal.NewFromInt(8500),
	}
}

func TestSalesKeepInsertionOrderAndRemove(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	for i, id := range []string{"s-b", "s-a", "s-c"} {
		if err := s.AppendSale(ctx, testSale(id, int64(1000-i))); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	if err := s.RemoveSale(ctx, "s-a"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	sales, _ := s.ListSales(ctx)
	if len(sales) != 2 || sales[0].ID != "s-b" || sales[1].ID != "s-c" {
		t.Fatalf("unexpected sales after removal: %+v", sales)
	}

	if err := s.RemoveSale(ctx, "s-a"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found on second removal, got %v", err)
	}
}

func TestAppendSaleRejectsInvalidAndDuplicate(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	if err := s.AppendSale(ctx, domain.Sale{ID: "empty"}); !errors.Is(err, store.ErrInvalidSale) {
		t.Fatalf("expected invalid sale, got %v", err)
	}
	if err := s.AppendSale(ctx, testSale("s-1", 1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendSale(ctx, testSale("s-1", 2)); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListSalesReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()
	if err := s.AppendSale(ctx, testSale("s-1", 1)); err != nil {
		t.Fatalf("append: %v", err)
	}

	sales, _ := s.ListSales(ctx)
	sales[0].Items[0].Name = "mutated"
	sales[0].Items = append(sales[0].Items, sales[0].Items[0])

	again, _ := s.ListSales(ctx)
	if again[0].Items[0].Name != "Pollo Asado Entero" || len(again[0].Items) != 1 {
		t.Fatalf("store state leaked through list: %+v", again[0])
	}
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	products, _ := s.ListProducts(ctx)
	if len(products) != 3 {
		t.Fatalf("expected 3 seeded products, got %d", len(products))
	}

	created, err := s.CreateProduct(ctx, domain.Product{ID: "p9", Name: "Bebida", CategoryID: "5", CostMethod: domain.CostFixed})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateProduct(ctx, *created); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	created.Name = "Bebida 500ml"
	if _, err := s.UpdateProduct(ctx, *created); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.GetProduct(ctx, "p9")
	if err != nil || got.Name != "Bebida 500ml" {
		t.Fatalf("expected updated product, got %+v (%v)", got, err)
	}

	if err := s.DeleteProduct(ctx, "p9"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetProduct(ctx, "p9"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.UpdateProduct(ctx, domain.Product{ID: "missing", Name: "x"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	if _, err := s.CreateCategory(ctx, domain.Category{ID: "6", Name: "Postres"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.UpdateCategory(ctx, domain.Category{ID: "6", Name: "Postres", SellerName: "Ana"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.DeleteCategory(ctx, "6"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	categories, _ := s.ListCategories(ctx)
	if len(categories) != 5 {
		t.Fatalf("expected seeded categories only, got %d", len(categories))
	}
	if _, err := s.CreateCategory(ctx, domain.Category{ID: "7"}); !errors.Is(err, store.ErrInvalidCategory) {
		t.Fatalf("expected invalid category, got %v", err)
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s := NewSeeded()

	cfg, _ := s.GetSettings(ctx)
	if cfg.AppName != "GastroMaster Pro" {
		t.Fatalf("unexpected default app name %q", cfg.AppName)
	}

	cfg.Phone = "+56912345678"
	if _, err := s.UpdateSettings(ctx, cfg); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if got, _ := s.GetSettings(ctx); got.Phone != "+56912345678" {
		t.Fatalf("expected phone to persist, got %q", got.Phone)
	}
	if _, err := s.UpdateSettings(ctx, domain.AppConfig{}); !errors.Is(err, store.ErrInvalidSettings) {
		t.Fatalf("expected invalid settings, got %v", err)
	}
}
