package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CostMethod string

const (
	CostFixed    CostMethod = "FIXED"
	CostDetailed CostMethod = "DETAILED"
)

type Ingredient struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CategoryID  string          `json:"category_id"`
	Price       decimal.Decimal `json:"price"`
	Icon        string          `json:"icon,omitempty"`
	SellerName  string          `json:"seller_name,omitempty"`
	CostMethod  CostMethod      `json:"cost_method"`
	FixedCost   decimal.Decimal `json:"fixed_cost"`
	Ingredients []Ingredient    `json:"ingredients"`
	Yield       int             `json:"yield"`
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	out := p
	out.Ingredients = make([]Ingredient, len(p.Ingredients))
	copy(out.Ingredients, p.Ingredients)
	return out
}

type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	SellerName string `json:"seller_name,omitempty"`
}

// CartItem is a product snapshot taken when it was added to a cart.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (i CartItem) Clone() CartItem {
	return CartItem{Product: i.Product.Clone(), Quantity: i.Quantity}
}

type Sale struct {
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Profit    decimal.Decimal `json:"profit"`
}

func (s Sale) Clone() Sale {
	out := s
	out.Items = make([]CartItem, len(s.Items))
	for i, item := range s.Items {
		out.Items[i] = item.Clone()
	}
	return out
}

type AppConfig struct {
	AppName    string `json:"app_name"`
	Phone      string `json:"phone,omitempty"`
	ThemeColor string `json:"theme_color"`
	Currency   string `json:"currency"`
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		AppName:    "GastroMaster Pro",
		ThemeColor: "#f97316",
		Currency:   "$",
	}
}

type Insight struct {
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
	Cached      bool      `json:"cached"`
}
