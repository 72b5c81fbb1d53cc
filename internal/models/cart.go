package models

import "github.com/shopspring/decimal"

// CartItem is one line of a customer cart. ID is the product identifier; a
// cart holds at most one line per product.
type CartItem struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	PictureURL  string          `json:"picture_url"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
}

// CustomerCart is the cache-resident cart aggregate. ID doubles as the cache
// key (customer or session identifier).
type CustomerCart struct {
	ID               string     `json:"id"`
	Items            []CartItem `json:"items"`
	DeliveryMethodID *int64     `json:"delivery_method_id,omitempty"`
	PaymentIntentID  string     `json:"payment_intent_id,omitempty"`
	ClientSecret     string     `json:"client_secret,omitempty"`
}

func NewCustomerCart(id string) *CustomerCart {
	return &CustomerCart{ID: id, Items: []CartItem{}}
}

// Total is derived on every call, never stored.
func (c *CustomerCart) Total() decimal.Decimal {
	total := decimal.Zero

	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

func (c *CustomerCart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// FindItem returns the index of the line for the given product id, or -1.
func (c *CustomerCart) FindItem(productID int64) int {
	for i, item := range c.Items {
		if item.ID == productID {
			return i
		}
	}

	return -1
}

// RemoveItem drops the line for the given product id. Returns false when no
// such line exists.
func (c *CustomerCart) RemoveItem(productID int64) bool {
	idx := c.FindItem(productID)
	if idx < 0 {
		return false
	}

	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)

	return true
}
