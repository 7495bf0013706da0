// Package analytics derives reporting views from the sale log: per-line cost
// and profit, flattened line items, period filters, grouped summaries and
// time series. Every function is pure and recomputed on demand.
package analytics

import (
	"github.com/shopspring/decimal"

	"gastropos/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// EffectiveYield floors the recipe yield at one unit.
func EffectiveYield(p domain.Product) int {
	return max(p.Yield, 1)
}

// TotalRecipeCost is the cost of one execution of the recipe.
func TotalRecipeCost(p domain.Product) decimal.Decimal {
	if p.CostMethod == domain.CostFixed {
		return p.FixedCost
	}
	total := decimal.Zero
	for _, ing := range p.Ingredients {
		total = total.Add(ing.Quantity.Mul(ing.UnitCost))
	}
	return total
}

func UnitCost(p domain.Product) decimal.Decimal {
	return TotalRecipeCost(p).Div(decimal.NewFromInt(int64(EffectiveYield(p))))
}

func LineRevenue(p domain.Product, qty int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(qty)))
}

// LineProfit may be negative when the unit cost exceeds the price.
func LineProfit(p domain.Product, qty int) decimal.Decimal {
	return p.Price.Sub(UnitCost(p)).Mul(decimal.NewFromInt(int64(qty)))
}

// SaleTotals returns the revenue and profit of a set of cart lines.
func SaleTotals(items []domain.CartItem) (total decimal.Decimal, profit decimal.Decimal) {
	total, profit = decimal.Zero, decimal.Zero
	for _, item := range items {
		total = total.Add(LineRevenue(item.Product, item.Quantity))
		profit = profit.Add(LineProfit(item.Product, item.Quantity))
	}
	return total, profit
}

// MarginPercent is the unit margin as a percentage of price, zero for free items.
func MarginPercent(p domain.Product) decimal.Decimal {
	if p.Price.IsZero() {
		return decimal.Zero
	}
	return p.Price.Sub(UnitCost(p)).Div(p.Price).Mul(hundred).Round(1)
}
