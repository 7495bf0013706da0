package store

import (
	"context"
	"errors"

	"gastropos/internal/domain"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidSale     = errors.New("invalid sale")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrConflict        = errors.New("already exists")
)

// SaleStore is the append-only sale log. Appends and removals are whole-record
// operations; ListSales returns copies in insertion order.
type SaleStore interface {
	AppendSale(ctx context.Context, sale domain.Sale) error
	RemoveSale(ctx context.Context, id string) error
	ListSales(ctx context.Context) ([]domain.Sale, error)
}

type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type Settings interface {
	GetSettings(ctx context.Context) (domain.AppConfig, error)
	UpdateSettings(ctx context.Context, cfg domain.AppConfig) (domain.AppConfig, error)
}

type Repository interface {
	SaleStore
	Catalog
	Settings
}
