package analytics

import (
	"iter"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"gastropos/internal/domain"
)

const (
	DefaultSeller      = "Admin"
	UncategorizedLabel = "S/C"
)

// Row is one (sale, cart item) pair, the unit every aggregation works on.
type Row struct {
	SaleID     string          `json:"sale_id"`
	ItemID     string          `json:"item_id"`
	Timestamp  int64           `json:"timestamp"`
	CategoryID string          `json:"category_id"`
	Category   string          `json:"category"`
	Seller     string          `json:"seller"`
	Product    string          `json:"product"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cost       decimal.Decimal `json:"cost"`
	Profit     decimal.Decimal `json:"profit"`

	CostMethod  domain.CostMethod   `json:"-"`
	Ingredients []domain.Ingredient `json:"-"`
	Yield       int                 `json:"-"`
}

func (r Row) Time(loc *time.Location) time.Time {
	return time.UnixMilli(r.Timestamp).In(loc)
}

// LocalDate is the row's calendar date in loc, formatted YYYY-MM-DD.
func (r Row) LocalDate(loc *time.Location) string {
	return r.Time(loc).Format(time.DateOnly)
}

// ResolveSeller returns the first non-empty of the item's seller, its
// category's seller and DefaultSeller.
func ResolveSeller(item domain.CartItem, category *domain.Category) string {
	if item.SellerName != "" {
		return item.SellerName
	}
	if category != nil && category.SellerName != "" {
		return category.SellerName
	}
	return DefaultSeller
}

// Rows yields one Row per cart item, in sale order then item order. The
// sequence can be ranged over any number of times.
func Rows(sales []domain.Sale, categories []domain.Category) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		byID := make(map[string]*domain.Category, len(categories))
		for i := range categories {
			byID[categories[i].ID] = &categories[i]
		}

		for _, sale := range sales {
			for _, item := range sale.Items {
				if !yield(flattenItem(sale, item, byID[item.CategoryID])) {
					return
				}
			}
		}
	}
}

func Flatten(sales []domain.Sale, categories []domain.Category) []Row {
	return slices.Collect(Rows(sales, categories))
}

func flattenItem(sale domain.Sale, item domain.CartItem, category *domain.Category) Row {
	unitCost := UnitCost(item.Product)
	qty := decimal.NewFromInt(int64(item.Quantity))

	categoryName := UncategorizedLabel
	if category != nil {
		categoryName = category.Name
	}

	return Row{
		SaleID:      sale.ID,
		ItemID:      item.ID,
		Timestamp:   sale.Timestamp,
		CategoryID:  item.CategoryID,
		Category:    categoryName,
		Seller:      ResolveSeller(item, category),
		Product:     item.Name,
		Quantity:    item.Quantity,
		UnitPrice:   item.Price,
		UnitCost:    unitCost,
		Revenue:     LineRevenue(item.Product, item.Quantity),
		Cost:        unitCost.Mul(qty),
		Profit:      LineProfit(item.Product, item.Quantity),
		CostMethod:  item.CostMethod,
		Ingredients: item.Ingredients,
		Yield:       EffectiveYield(item.Product),
	}
}
