package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"gastropos/internal/domain"
	"gastropos/internal/store"
	"gastropos/internal/store/memory"
)

// Store serves reads from memory and writes every mutated collection back to
// the KV before returning. A failed write restores the previous collection.
type Store struct {
	mem *memory.Store
	kv  KV
	log *zap.Logger

	// serialises mutate+persist so snapshots reach the KV in order
	mu sync.Mutex
}

var _ store.Repository = (*Store)(nil)

// Open loads every collection from backend. Missing keys fall back to the
// seeded catalog and an empty sale log; nothing is written until the first
// mutation.
func Open(ctx context.Context, backend KV, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	seed := memory.SeedSnapshot()

	sales, err := load(ctx, backend, KeySales, seed.Sales)
	if err != nil {
		return nil, err
	}
	products, err := load(ctx, backend, KeyProducts, seed.Products)
	if err != nil {
		return nil, err
	}
	categories, err := load(ctx, backend, KeyCategories, seed.Categories)
	if err != nil {
		return nil, err
	}
	cfg, err := load(ctx, backend, KeyConfig, seed.Config)
	if err != nil {
		return nil, err
	}

	log.Info("store loaded",
		zap.Int("sales", len(sales)),
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)),
	)

	return &Store{
		mem: memory.New(memory.Snapshot{Products: products, Categories: categories, Sales: sales, Config: cfg}),
		kv:  backend,
		log: log,
	}, nil
}

func load[T any](ctx context.Context, backend KV, key string, fallback T) (T, error) {
	raw, ok, err := backend.Get(ctx, key)
	if err != nil {
		return fallback, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return fallback, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return fallback, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

func (s *Store) save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, payload); err != nil {
		s.log.Error("persist failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) AppendSale(ctx context.Context, sale domain.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.mem.Sales()
	if err := s.mem.AppendSale(ctx, sale); err != nil {
		return err
	}
	if err := s.save(ctx, KeySales, s.mem.Sales()); err != nil {
		s.mem.ReplaceSales(previous)
		return err
	}
	return nil
}

func (s *Store) RemoveSale(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.mem.Sales()
	if err := s.mem.RemoveSale(ctx, id); err != nil {
		return err
	}
	if err := s.save(ctx, KeySales, s.mem.Sales()); err != nil {
		s.mem.ReplaceSales(previous)
		return err
	}
	return nil
}

func (s *Store) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.mem.ListSales(ctx)
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.mem.ListProducts(ctx)
}

func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.mem.GetProduct(ctx, id)
}

func (s *Store) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	return mutateProducts(ctx, s, func() (*domain.Product, error) { return s.mem.CreateProduct(ctx, product) })
}

func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	return mutateProducts(ctx, s, func() (*domain.Product, error) { return s.mem.UpdateProduct(ctx, product) })
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	_, err := mutateProducts(ctx, s, func() (struct{}, error) { return struct{}{}, s.mem.DeleteProduct(ctx, id) })
	return err
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.mem.ListCategories(ctx)
}

func (s *Store) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	return mutateCategories(ctx, s, func() (*domain.Category, error) { return s.mem.CreateCategory(ctx, category) })
}

func (s *Store) UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	return mutateCategories(ctx, s, func() (*domain.Category, error) { return s.mem.UpdateCategory(ctx, category) })
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	_, err := mutateCategories(ctx, s, func() (struct{}, error) { return struct{}{}, s.mem.DeleteCategory(ctx, id) })
	return err
}

func (s *Store) GetSettings(ctx context.Context) (domain.AppConfig, error) {
	return s.mem.GetSettings(ctx)
}

func (s *Store) UpdateSettings(ctx context.Context, cfg domain.AppConfig) (domain.AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.mem.Config()
	updated, err := s.mem.UpdateSettings(ctx, cfg)
	if err != nil {
		return domain.AppConfig{}, err
	}
	if err := s.save(ctx, KeyConfig, updated); err != nil {
		s.mem.ReplaceConfig(previous)
		return domain.AppConfig{}, err
	}
	return updated, nil
}

func mutateProducts[T any](ctx context.Context, s *Store, apply func() (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.mem.Products()
	out, err := apply()
	if err != nil {
		return out, err
	}
	if err := s.save(ctx, KeyProducts, s.mem.Products()); err != nil {
		s.mem.ReplaceProducts(previous)
		var zero T
		return zero, err
	}
	return out, nil
}

func mutateCategories[T any](ctx context.Context, s *Store, apply func() (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.mem.Categories()
	out, err := apply()
	if err != nil {
		return out, err
	}
	if err := s.save(ctx, KeyCategories, s.mem.Categories()); err != nil {
		s.mem.ReplaceCategories(previous)
		var zero T
		return zero, err
	}
	return out, nil
}
