package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"gastropos/internal/analytics"
	"gastropos/internal/domain"
	"gastropos/internal/store"
	"gastropos/internal/xid"
)

// CompleteSale snapshots the requested products from the current catalog and
// appends the resulting sale. Later catalog edits never touch it.
func (s *Service) CompleteSale(ctx context.Context, req domain.SaleRequest) (domain.Sale, error) {
	if len(req.Items) == 0 {
		return domain.Sale{}, fmt.Errorf("%w: empty cart", store.ErrInvalidSale)
	}

	var cart domain.Cart
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return domain.Sale{}, fmt.Errorf("%w: quantity must be positive", store.ErrInvalidSale)
		}
		product, err := s.repo.GetProduct(ctx, strings.TrimSpace(line.ProductID))
		if err != nil {
			return domain.Sale{}, fmt.Errorf("product %s: %w", line.ProductID, err)
		}
		cart.Add(*product)
		cart.UpdateQuantity(product.ID, line.Quantity-1)
	}

	timestamp, err := s.saleTimestamp(req)
	if err != nil {
		return domain.Sale{}, err
	}

	total, profit := analytics.SaleTotals(cart.Items)
	sale := domain.Sale{
		ID:        xid.New("s"),
		Timestamp: timestamp,
		Items:     cart.Items,
		Total:     total,
		Profit:    profit,
	}
	if err := s.repo.AppendSale(ctx, sale); err != nil {
		return domain.Sale{}, err
	}

	s.metrics.SaleRecorded(total)
	s.log.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.Int("units", cart.ItemCount()),
		zap.String("total", total.String()),
	)
	return sale, nil
}

// saleTimestamp prefers an explicit epoch, then a calendar date at noon
// local time, then now.
func (s *Service) saleTimestamp(req domain.SaleRequest) (int64, error) {
	if req.Timestamp != nil {
		if *req.Timestamp <= 0 {
			return 0, fmt.Errorf("%w: timestamp must be positive", store.ErrInvalidSale)
		}
		return *req.Timestamp, nil
	}
	if req.Date != "" {
		day, err := time.ParseInLocation(time.DateOnly, req.Date, s.loc)
		if err != nil {
			return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", store.ErrInvalidSale)
		}
		y, m, d := day.Date()
		return time.Date(y, m, d, 12, 0, 0, 0, s.loc).UnixMilli(), nil
	}
	return s.clock().UnixMilli(), nil
}

func (s *Service) DeleteSale(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return store.ErrInvalidSale
	}
	if err := s.repo.RemoveSale(ctx, id); err != nil {
		return err
	}
	s.metrics.SaleDeleted()
	s.log.Info("sale deleted", zap.String("sale_id", id))
	return nil
}

func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.ListSales(ctx)
}
