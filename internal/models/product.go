package models

import "github.com/shopspring/decimal"

type Product struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description,omitempty"`
	Category     *Category           `json:"category,omitempty"`
	Price         decimal.Decimal     `json:"price"`
	SalePrice     decimal.NullDecimal `json:"sale_price"`
	StockQuantity int                 `json:"stock_quantity"`
	SKU           string              `json:"sku,omitempty"`
	MainImage     string              `json:"main_image,omitempty"`
	IsActive      bool                `json:"is_active"`
	IsFeatured    bool                `json:"is_featured"`
}

// IsOnSale reports whether a positive sale price is present.
func (p Product) IsOnSale() bool {
	return p.SalePrice.Valid && p.SalePrice.Decimal.IsPositive()
}

// UnitPrice is the price a buyer pays for one unit.
func (p Product) UnitPrice() decimal.Decimal {
	if p.IsOnSale() {
		return p.SalePrice.Decimal
	}
	return p.Price
}

func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// ProductFilter maps onto the remote catalog query parameters.
type ProductFilter struct {
	Category  string
	Search    string
	Featured  bool
	CareLevel string
	PlantType string
	MinPrice  string
	MaxPrice  string
	Ordering  string
}
