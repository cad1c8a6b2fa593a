package models

import "github.com/shopspring/decimal"

// CartItem is one product line in the remote cart. ID is the cart item id
// used by the item endpoints, not the product id.
type CartItem struct {
	ID         int64           `json:"id"`
	Product    Product         `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func (i CartItem) ProductID() int64 {
	return i.Product.ID
}

// LineTotal is unit price times quantity, derived locally.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSnapshot is the whole cart as last reported by the server. It is
// replaced wholesale on every load.
type CartSnapshot struct {
	ID    int64           `json:"id,omitempty"`
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total_price"`
}

func (s CartSnapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Count is the sum of item quantities.
func (s CartSnapshot) Count() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

func (s CartSnapshot) Find(productID int64) (CartItem, bool) {
	for _, item := range s.Items {
		if item.ProductID() == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// Clone returns a snapshot that shares no slice memory with s.
func (s CartSnapshot) Clone() CartSnapshot {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
