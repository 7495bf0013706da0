package analytics

import (
	"slices"

	"github.com/shopspring/decimal"

	"gastropos/internal/domain"
)

// ledger keeps one accumulator per key in first-seen order.
type ledger[T any] struct {
	index map[string]int
	items []T
}

func newLedger[T any]() *ledger[T] {
	return &ledger[T]{index: make(map[string]int), items: []T{}}
}

func (l *ledger[T]) entry(key string, init func() T) *T {
	idx, ok := l.index[key]
	if !ok {
		idx = len(l.items)
		l.index[key] = idx
		l.items = append(l.items, init())
	}
	return &l.items[idx]
}

type SellerStats struct {
	Seller   string          `json:"seller"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

// SellerPerformance groups rows by resolved seller, highest revenue first.
func SellerPerformance(rows []Row) []SellerStats {
	acc := newLedger[SellerStats]()
	for _, r := range rows {
		s := acc.entry(r.Seller, func() SellerStats {
			return SellerStats{Seller: r.Seller, Revenue: decimal.Zero, Profit: decimal.Zero}
		})
		s.Quantity += r.Quantity
		s.Revenue = s.Revenue.Add(r.Revenue)
		s.Profit = s.Profit.Add(r.Profit)
	}
	slices.SortStableFunc(acc.items, func(a, b SellerStats) int {
		return b.Revenue.Cmp(a.Revenue)
	})
	return acc.items
}

type ProductStats struct {
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Cost     decimal.Decimal `json:"cost"`
}

func (p ProductStats) Profit() decimal.Decimal {
	return p.Revenue.Sub(p.Cost)
}

// ProductSummary groups rows by product name in first-seen order.
func ProductSummary(rows []Row) []ProductStats {
	acc := newLedger[ProductStats]()
	for _, r := range rows {
		p := acc.entry(r.Product, func() ProductStats {
			return ProductStats{Product: r.Product, Revenue: decimal.Zero, Cost: decimal.Zero}
		})
		p.Quantity += r.Quantity
		p.Revenue = p.Revenue.Add(r.Revenue)
		p.Cost = p.Cost.Add(r.Cost)
	}
	return acc.items
}

// TopProducts orders the product summary by units sold, ties kept in
// first-seen order, and keeps at most n entries. n <= 0 keeps everything.
func TopProducts(rows []Row, n int) []ProductStats {
	summary := ProductSummary(rows)
	slices.SortStableFunc(summary, func(a, b ProductStats) int {
		return b.Quantity - a.Quantity
	})
	if n > 0 && len(summary) > n {
		summary = summary[:n]
	}
	return summary
}

type CategoryStats struct {
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

func CategoryDistribution(rows []Row) []CategoryStats {
	acc := newLedger[CategoryStats]()
	for _, r := range rows {
		c := acc.entry(r.Category, func() CategoryStats {
			return CategoryStats{Category: r.Category, Revenue: decimal.Zero}
		})
		c.Quantity += r.Quantity
		c.Revenue = c.Revenue.Add(r.Revenue)
	}
	slices.SortStableFunc(acc.items, func(a, b CategoryStats) int {
		return b.Revenue.Cmp(a.Revenue)
	})
	return acc.items
}

type IngredientUsage struct {
	Ingredient string          `json:"ingredient"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
}

// IngredientConsumption sums the raw material used by DETAILED recipes:
// recipe quantity / yield × units sold, per ingredient name.
func IngredientConsumption(rows []Row) []IngredientUsage {
	acc := newLedger[IngredientUsage]()
	for _, r := range rows {
		if r.CostMethod == domain.CostFixed {
			continue
		}
		sold := decimal.NewFromInt(int64(r.Quantity))
		yield := decimal.NewFromInt(int64(max(r.Yield, 1)))
		for _, ing := range r.Ingredients {
			u := acc.entry(ing.Name, func() IngredientUsage {
				return IngredientUsage{Ingredient: ing.Name, Unit: ing.Unit, Quantity: decimal.Zero, Cost: decimal.Zero}
			})
			used := ing.Quantity.Mul(sold).Div(yield)
			u.Quantity = u.Quantity.Add(used)
			u.Cost = u.Cost.Add(used.Mul(ing.UnitCost))
		}
	}
	return acc.items
}

type Totals struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
	Cost         decimal.Decimal `json:"cost"`
	Units        int             `json:"units"`
	Lines        int             `json:"lines"`
	Transactions int             `json:"transactions"`
}

// Summarize folds rows into headline totals. Transactions counts distinct
// sales.
func Summarize(rows []Row) Totals {
	t := Totals{Revenue: decimal.Zero, Profit: decimal.Zero, Cost: decimal.Zero}
	sales := make(map[string]struct{})
	for _, r := range rows {
		t.Revenue = t.Revenue.Add(r.Revenue)
		t.Profit = t.Profit.Add(r.Profit)
		t.Cost = t.Cost.Add(r.Cost)
		t.Units += r.Quantity
		t.Lines++
		sales[r.SaleID] = struct{}{}
	}
	t.Transactions = len(sales)
	return t
}
