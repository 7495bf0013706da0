package domain

import "github.com/shopspring/decimal"

type IngredientRequest struct {
	Name     string          `json:"name" validate:"required,max=80"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit" validate:"required,oneof=kg gr un lt"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

type ProductRequest struct {
	Name        string              `json:"name" validate:"required,max=120"`
	CategoryID  string              `json:"category_id" validate:"required"`
	Price       decimal.Decimal     `json:"price"`
	Icon        string              `json:"icon,omitempty" validate:"max=16"`
	SellerName  string              `json:"seller_name,omitempty" validate:"max=80"`
	CostMethod  CostMethod          `json:"cost_method" validate:"required,oneof=FIXED DETAILED"`
	FixedCost   decimal.Decimal     `json:"fixed_cost"`
	Ingredients []IngredientRequest `json:"ingredients" validate:"dive"`
	Yield       int                 `json:"yield" validate:"gte=0"`
}

type CategoryRequest struct {
	Name       string `json:"name" validate:"required,max=80"`
	Icon       string `json:"icon" validate:"max=16"`
	Color      string `json:"color" validate:"max=32"`
	SellerName string `json:"seller_name,omitempty" validate:"max=80"`
}

type SaleLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// SaleRequest confirms a cart. Timestamp (epoch ms) wins over Date; a Date
// alone back-dates the sale to noon local time on that day.
type SaleRequest struct {
	Items     []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
	Timestamp *int64            `json:"timestamp,omitempty" validate:"omitempty,gt=0"`
	Date      string            `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type SettingsRequest struct {
	AppName    string `json:"app_name" validate:"required,max=80"`
	Phone      string `json:"phone,omitempty" validate:"max=32"`
	ThemeColor string `json:"theme_color,omitempty" validate:"omitempty,hexcolor"`
	Currency   string `json:"currency,omitempty" validate:"max=4"`
}

// ReportQuery carries the raw dashboard/report filters as received from a
// client.
type ReportQuery struct {
	Period   string `json:"period,omitempty"`
	Seller   string `json:"seller,omitempty"`
	Category string `json:"category,omitempty"`
	Search   string `json:"q,omitempty"`
	From     string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To       string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ExportRequest struct {
	ReportQuery
	Columns []string `json:"columns,omitempty"`
}

type ShareRequest struct {
	ReportQuery
	Channel string `json:"channel,omitempty"`
	Notes   string `json:"notes,omitempty" validate:"max=500"`
}
