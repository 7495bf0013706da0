package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"gastropos/internal/domain"
)

var testLoc = time.FixedZone("CLT", -3*60*60)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func at(y int, m time.Month, d, hh, mm int) int64 {
	return time.Date(y, m, d, hh, mm, 0, 0, testLoc).UnixMilli()
}

func fixedProduct(id, name, categoryID string, price, cost int64) domain.Product {
	return domain.Product{
		ID:         id,
		Name:       name,
		CategoryID: categoryID,
		Price:      decimal.NewFromInt(price),
		CostMethod: domain.CostFixed,
		FixedCost:  decimal.NewFromInt(cost),
	}
}

func sale(id string, ts int64, items ...domain.CartItem) domain.Sale {
	s := domain.Sale{ID: id, Timestamp: ts, Items: items}
	s.Total, s.Profit = SaleTotals(items)
	return s
}

func line(p domain.Product, qty int) domain.CartItem {
	return domain.CartItem{Product: p, Quantity: qty}
}

func testCategories() []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Empanadas", SellerName: "Juan"},
		{ID: "2", Name: "Pollos Asados", SellerName: "Maria"},
		{ID: "5", Name: "Bebidas"},
	}
}
