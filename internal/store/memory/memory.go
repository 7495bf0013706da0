package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"gastropos/internal/domain"
	"gastropos/internal/store"
)

// Store keeps the catalog, the sale log and the settings in process memory.
// Everything handed out is a copy.
type Store struct {
	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	sales      []domain.Sale
	config     domain.AppConfig
}

// Snapshot is the full persisted state of a Store.
type Snapshot struct {
	Products   []domain.Product
	Categories []domain.Category
	Sales      []domain.Sale
	Config     domain.AppConfig
}

func New(snap Snapshot) *Store {
	s := &Store{config: snap.Config}
	s.ReplaceProducts(snap.Products)
	s.ReplaceCategories(snap.Categories)
	s.ReplaceSales(snap.Sales)
	if s.config.AppName == "" {
		s.config = domain.DefaultAppConfig()
	}
	return s
}

// NewSeeded starts with the demo catalog and an empty sale log.
func NewSeeded() *Store {
	return New(SeedSnapshot())
}

func SeedSnapshot() Snapshot {
	return Snapshot{
		Categories: []domain.Category{
			{ID: "1", Name: "Empanadas", Icon: "🥟", Color: "amber", SellerName: "Juan"},
			{ID: "2", Name: "Pollos Asados", Icon: "🍗", Color: "orange", SellerName: "Maria"},
			{ID: "3", Name: "Hand Rolls", Icon: "🍱", Color: "emerald", SellerName: "Luis"},
			{ID: "4", Name: "Completos", Icon: "🌭", Color: "blue", SellerName: "Juan"},
			{ID: "5", Name: "Bebidas", Icon: "🥤", Color: "sky", SellerName: "Admin"},
		},
		Products: []domain.Product{
			{
				ID: "p1", Name: "Empanada de Pino", CategoryID: "1", Icon: "🥟",
				Price:      decimal.NewFromInt(2500),
				CostMethod: domain.CostDetailed,
				Yield:      1,
				Ingredients: []domain.Ingredient{
					{ID: "i1", Name: "Harina", Quantity: decimal.RequireFromString("0.2"), Unit: "kg", UnitCost: decimal.NewFromInt(1000)},
					{ID: "i2", Name: "Carne", Quantity: decimal.RequireFromString("0.15"), Unit: "kg", UnitCost: decimal.NewFromInt(8500)},
					{ID: "i3", Name: "Cebolla", Quantity: decimal.RequireFromString("0.1"), Unit: "kg", UnitCost: decimal.NewFromInt(600)},
				},
			},
			{
				ID: "p2", Name: "Pollo Asado Entero", CategoryID: "2", Icon: "🍗",
				Price:       decimal.NewFromInt(8500),
				CostMethod:  domain.CostFixed,
				FixedCost:   decimal.NewFromInt(4200),
				Yield:       1,
				Ingredients: []domain.Ingredient{},
			},
			{
				ID: "p3", Name: "Completo Italiano", CategoryID: "4", Icon: "🌭",
				Price:      decimal.NewFromInt(3200),
				CostMethod: domain.CostDetailed,
				Yield:      1,
				Ingredients: []domain.Ingredient{
					{ID: "i4", Name: "Pan", Quantity: decimal.NewFromInt(1), Unit: "un", UnitCost: decimal.NewFromInt(250)},
					{ID: "i5", Name: "Palta", Quantity: decimal.RequireFromString("0.1"), Unit: "kg", UnitCost: decimal.NewFromInt(5000)},
					{ID: "i6", Name: "Tomate", Quantity: decimal.RequireFromString("0.1"), Unit: "kg", UnitCost: decimal.NewFromInt(1200)},
				},
			},
		},
		Sales:  []domain.Sale{},
		Config: domain.DefaultAppConfig(),
	}
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products)
}

func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

func (s *Store) Sales() []domain.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSales(s.sales)
}

func (s *Store) Config() domain.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Store) ReplaceProducts(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = cloneProducts(products)
}

func (s *Store) ReplaceCategories(categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = slices.Clone(categories)
	if s.categories == nil {
		s.categories = []domain.Category{}
	}
}

func (s *Store) ReplaceSales(sales []domain.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = cloneSales(sales)
}

func (s *Store) ReplaceConfig(cfg domain.AppConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

func (s *Store) AppendSale(_ context.Context, sale domain.Sale) error {
	if strings.TrimSpace(sale.ID) == "" || len(sale.Items) == 0 {
		return store.ErrInvalidSale
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.sales, func(existing domain.Sale) bool { return existing.ID == sale.ID }) {
		return fmt.Errorf("sale %s: %w", sale.ID, store.ErrConflict)
	}
	s.sales = append(s.sales, sale.Clone())
	return nil
}

func (s *Store) RemoveSale(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.sales, func(existing domain.Sale) bool { return existing.ID == id })
	if idx < 0 {
		return store.ErrNotFound
	}
	s.sales = slices.Delete(s.sales, idx, idx+1)
	return nil
}

func (s *Store) ListSales(_ context.Context) ([]domain.Sale, error) {
	return s.Sales(), nil
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	return s.Products(), nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.productIndex(id)
	if idx < 0 {
		return nil, store.ErrNotFound
	}
	product := s.products[idx].Clone()
	return &product, nil
}

func (s *Store) CreateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" || product.Name == "" {
		return nil, store.ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productIndex(product.ID) >= 0 {
		return nil, fmt.Errorf("product %s: %w", product.ID, store.ErrConflict)
	}
	s.products = append(s.products, product.Clone())
	created := product.Clone()
	return &created, nil
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" || product.Name == "" {
		return nil, store.ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.productIndex(product.ID)
	if idx < 0 {
		return nil, store.ErrNotFound
	}
	s.products[idx] = product.Clone()
	updated := product.Clone()
	return &updated, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.productIndex(id)
	if idx < 0 {
		return store.ErrNotFound
	}
	s.products = slices.Delete(s.products, idx, idx+1)
	return nil
}

func (s *Store) ListCategories(_ context.Context) ([]domain.Category, error) {
	return s.Categories(), nil
}

func (s *Store) CreateCategory(_ context.Context, category domain.Category) (*domain.Category, error) {
	if category.ID == "" || category.Name == "" {
		return nil, store.ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categoryIndex(category.ID) >= 0 {
		return nil, fmt.Errorf("category %s: %w", category.ID, store.ErrConflict)
	}
	s.categories = append(s.categories, category)
	created := category
	return &created, nil
}

func (s *Store) UpdateCategory(_ context.Context, category domain.Category) (*domain.Category, error) {
	if category.ID == "" || category.Name == "" {
		return nil, store.ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.categoryIndex(category.ID)
	if idx < 0 {
		return nil, store.ErrNotFound
	}
	s.categories[idx] = category
	updated := category
	return &updated, nil
}

// DeleteCategory leaves products and past sales pointing at the removed id;
// reports then show them as uncategorized.
func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.categoryIndex(id)
	if idx < 0 {
		return store.ErrNotFound
	}
	s.categories = slices.Delete(s.categories, idx, idx+1)
	return nil
}

func (s *Store) GetSettings(_ context.Context) (domain.AppConfig, error) {
	return s.Config(), nil
}

func (s *Store) UpdateSettings(_ context.Context, cfg domain.AppConfig) (domain.AppConfig, error) {
	if strings.TrimSpace(cfg.AppName) == "" {
		return domain.AppConfig{}, fmt.Errorf("app name required: %w", store.ErrInvalidSettings)
	}
	s.ReplaceConfig(cfg)
	return cfg, nil
}

func (s *Store) productIndex(id string) int {
	return slices.IndexFunc(s.products, func(p domain.Product) bool { return p.ID == id })
}

func (s *Store) categoryIndex(id string) int {
	return slices.IndexFunc(s.categories, func(c domain.Category) bool { return c.ID == id })
}

func cloneProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

func cloneSales(sales []domain.Sale) []domain.Sale {
	out := make([]domain.Sale, len(sales))
	for i, sale := range sales {
		out[i] = sale.Clone()
	}
	return out
}
