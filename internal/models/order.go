package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "Pending"
	OrderStatusPaymentReceived OrderStatus = "PaymentReceived"
	OrderStatusCancelled       OrderStatus = "Cancelled"
)

// CanTransitionTo guards the order state machine. PaymentReceived and
// Cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s != OrderStatusPending {
		return false
	}

	return next == OrderStatusPaymentReceived || next == OrderStatusCancelled
}

// Address is a value object embedded in the order row, not a foreign aggregate.
type Address struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zip_code" validate:"required"`
}

// ProductItemOrdered is an immutable copy of the catalog row taken at
// order-creation time, so historical orders survive catalog edits.
type ProductItemOrdered struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image_url"`
}

type OrderItem struct {
	ID          int64              `gorm:"primaryKey" json:"id"`
	OrderID     int64              `json:"order_id"`
	ItemOrdered ProductItemOrdered `gorm:"embedded" json:"item_ordered"`
	Price       decimal.Decimal    `gorm:"type:numeric(18,2)" json:"price"`
	Quantity    int                `json:"quantity"`
}

type DeliveryMethod struct {
	ID           int64           `gorm:"primaryKey" json:"id"`
	ShortName    string          `json:"short_name"`
	DeliveryTime string          `json:"delivery_time"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:numeric(18,2)" json:"price"`
}

type Order struct {
	ID               int64           `gorm:"primaryKey" json:"id"`
	BuyerEmail       string          `json:"buyer_email"`
	OrderDate        time.Time       `json:"order_date"`
	ShipToAddress    Address         `gorm:"embedded;embeddedPrefix:ship_" json:"ship_to_address"`
	DeliveryMethodID int64           `json:"delivery_method_id"`
	DeliveryMethod   *DeliveryMethod `gorm:"foreignKey:DeliveryMethodID" json:"delivery_method,omitempty"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(18,2)" json:"subtotal"`
	Status           OrderStatus     `json:"status"`
	PaymentIntentID  string          `json:"payment_intent_id,omitempty"`
}

// Total is the stored subtotal plus the delivery price. The delivery method
// must be loaded; orders fetched through the order specifications always
// include it.
func (o *Order) Total() decimal.Decimal {
	if o.DeliveryMethod == nil {
		return o.Subtotal
	}

	return o.Subtotal.Add(o.DeliveryMethod.Price)
}

// CreateOrderRequest is what the HTTP layer hands to the order orchestrator.
type CreateOrderRequest struct {
	BuyerEmail       string  `json:"buyer_email" validate:"required,email"`
	CartID           string  `json:"cart_id" validate:"required"`
	DeliveryMethodID int64   `json:"delivery_method_id" validate:"required"`
	ShipToAddress    Address `json:"ship_to_address" validate:"required"`
}

// CheckoutData carries the checkout-session inputs. Both fields are required;
// the payment orchestrator rejects anything less before talking to the
// provider.
type CheckoutData struct {
	DeliveryMethodID int64    `json:"delivery_method_id" validate:"required"`
	ShipToAddress    *Address `json:"ship_to_address" validate:"required"`
}
