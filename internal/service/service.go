package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"gastropos/internal/analytics"
	"gastropos/internal/domain"
	"gastropos/internal/export"
	"gastropos/internal/insight"
	"gastropos/internal/metrics"
	"gastropos/internal/store"
	"gastropos/internal/xid"
)

var (
	ErrInvalidQuery   = errors.New("invalid report query")
	ErrExportDisabled = errors.New("export sink not configured")
)

type Service struct {
	repo    store.Repository
	advisor *insight.Advisor
	sink    export.Sink
	metrics *metrics.Recorder
	log     *zap.Logger
	loc     *time.Location
	now     func() time.Time
}

type Option func(*Service)

// WithLocation sets the zone used for calendar days, hours and TODAY.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithExportSink(sink export.Sink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = recorder
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func New(repo store.Repository, advisor *insight.Advisor, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		advisor: advisor,
		log:     zap.NewNop(),
		loc:     time.Local,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.advisor == nil {
		s.advisor = insight.NewAdvisor(nil, nil, 0, s.log)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) ListProducts(ctx context.Context) ([]ProductView, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return productViews(products), nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (ProductView, error) {
	product, err := s.repo.GetProduct(ctx, strings.TrimSpace(id))
	if err != nil {
		return ProductView{}, err
	}
	return NewProductView(*product), nil
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductRequest) (ProductView, error) {
	product, err := s.productFromRequest(ctx, xid.New("p"), req)
	if err != nil {
		return ProductView{}, err
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return ProductView{}, err
	}
	s.log.Info("product created", zap.String("product_id", created.ID), zap.String("name", created.Name))
	return NewProductView(*created), nil
}

// UpdateProduct replaces the whole product definition. Past sales keep the
// snapshot taken when they were recorded.
func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductRequest) (ProductView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ProductView{}, store.ErrInvalidProduct
	}
	product, err := s.productFromRequest(ctx, id, req)
	if err != nil {
		return ProductView{}, err
	}
	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return ProductView{}, err
	}
	return NewProductView(*updated), nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, strings.TrimSpace(id))
}

func (s *Service) productFromRequest(ctx context.Context, id string, req domain.ProductRequest) (domain.Product, error) {
	product := domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		CategoryID:  strings.TrimSpace(req.CategoryID),
		Price:       req.Price,
		Icon:        strings.TrimSpace(req.Icon),
		SellerName:  strings.TrimSpace(req.SellerName),
		CostMethod:  req.CostMethod,
		FixedCost:   req.FixedCost,
		Yield:       max(req.Yield, 1),
		Ingredients: make([]domain.Ingredient, 0, len(req.Ingredients)),
	}

	if product.Name == "" || product.CategoryID == "" {
		return domain.Product{}, store.ErrInvalidProduct
	}
	if product.CostMethod != domain.CostFixed && product.CostMethod != domain.CostDetailed {
		return domain.Product{}, fmt.Errorf("%w: unknown cost method %q", store.ErrInvalidProduct, req.CostMethod)
	}
	if product.Price.IsNegative() || product.FixedCost.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: amounts must not be negative", store.ErrInvalidProduct)
	}

	for _, ing := range req.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" || ing.Quantity.IsNegative() || ing.UnitCost.IsNegative() {
			return domain.Product{}, fmt.Errorf("%w: invalid ingredient %q", store.ErrInvalidProduct, ing.Name)
		}
		product.Ingredients = append(product.Ingredients, domain.Ingredient{
			ID:       xid.New("i"),
			Name:     name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			UnitCost: ing.UnitCost,
		})
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	if !slices.ContainsFunc(categories, func(c domain.Category) bool { return c.ID == product.CategoryID }) {
		return domain.Product{}, fmt.Errorf("%w: unknown category %q", store.ErrInvalidProduct, product.CategoryID)
	}
	return product, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, req domain.CategoryRequest) (domain.Category, error) {
	category := categoryFromRequest(xid.New("c"), req)
	if category.Name == "" {
		return domain.Category{}, store.ErrInvalidCategory
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, err
	}
	return *created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req domain.CategoryRequest) (domain.Category, error) {
	category := categoryFromRequest(strings.TrimSpace(id), req)
	if category.ID == "" || category.Name == "" {
		return domain.Category{}, store.ErrInvalidCategory
	}
	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, err
	}
	return *updated, nil
}

// DeleteCategory keeps products and sales that reference it; reports then
// group them under the uncategorized label.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, strings.TrimSpace(id))
}

func categoryFromRequest(id string, req domain.CategoryRequest) domain.Category {
	return domain.Category{
		ID:         id,
		Name:       strings.TrimSpace(req.Name),
		Icon:       strings.TrimSpace(req.Icon),
		Color:      strings.TrimSpace(req.Color),
		SellerName: strings.TrimSpace(req.SellerName),
	}
}

// Sellers lists every seller a report can be scoped to: category sellers
// (Admin when unset) plus per-product overrides, sorted.
func (s *Service) Sellers(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, c := range categories {
		name := strings.TrimSpace(c.SellerName)
		if name == "" {
			name = analytics.DefaultSeller
		}
		seen[name] = struct{}{}
	}
	for _, p := range products {
		if name := strings.TrimSpace(p.SellerName); name != "" {
			seen[name] = struct{}{}
		}
	}

	sellers := make([]string, 0, len(seen))
	for name := range seen {
		sellers = append(sellers, name)
	}
	slices.Sort(sellers)
	return sellers, nil
}

func (s *Service) GetSettings(ctx context.Context) (domain.AppConfig, error) {
	return s.repo.GetSettings(ctx)
}

func (s *Service) UpdateSettings(ctx context.Context, req domain.SettingsRequest) (domain.AppConfig, error) {
	current, err := s.repo.GetSettings(ctx)
	if err != nil {
		return domain.AppConfig{}, err
	}

	next := domain.AppConfig{
		AppName:    strings.TrimSpace(req.AppName),
		Phone:      strings.TrimSpace(req.Phone),
		ThemeColor: strings.TrimSpace(req.ThemeColor),
		Currency:   strings.TrimSpace(req.Currency),
	}
	if next.ThemeColor == "" {
		next.ThemeColor = current.ThemeColor
	}
	if next.Currency == "" {
		next.Currency = current.Currency
	}
	return s.repo.UpdateSettings(ctx, next)
}

// Insights never fails on model errors; the advisor turns them into a
// fixed message.
func (s *Service) Insights(ctx context.Context) (domain.Insight, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return domain.Insight{}, err
	}
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return domain.Insight{}, err
	}

	result, outcome := s.advisor.Generate(ctx, products, sales)
	s.metrics.Insight(string(outcome))
	return result, nil
}
