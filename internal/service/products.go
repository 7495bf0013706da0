package service

import (
	"github.com/shopspring/decimal"

	"gastropos/internal/analytics"
	"gastropos/internal/domain"
)

// ProductView is a catalog entry with its derived per-unit cost and margin.
type ProductView struct {
	domain.Product
	UnitCost      decimal.Decimal `json:"unit_cost"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

func NewProductView(p domain.Product) ProductView {
	return ProductView{
		Product:       p,
		UnitCost:      analytics.UnitCost(p).Round(2),
		MarginPercent: analytics.MarginPercent(p),
	}
}

func productViews(products []domain.Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductView(p))
	}
	return out
}
