package service

import (
	"context"

	"github.com/Next-Gene/primecare/internal/errors"
	"github.com/Next-Gene/primecare/internal/models"
	repository "github.com/Next-Gene/primecare/internal/repositories"
)

// CartService owns the cart composites. Every mutation is a read-modify-write
// against the whole serialized cart: concurrent writers for the same cart id
// race with last-write-wins semantics, which is accepted for a single-owner,
// low-contention aggregate.
type CartService struct {
	store repository.CartStore
}

func NewCartService(store repository.CartStore) *CartService {
	return &CartService{store: store}
}

// GetCart returns the customer's cart, or a fresh empty cart when none is
// stored. The empty cart is not persisted until the first write.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*models.CustomerCart, error) {
	cart, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, errors.InternalError("Failed to read cart").WithError(err)
	}

	if cart == nil {
		return models.NewCustomerCart(cartID), nil
	}

	return cart, nil
}

// ReplaceCart overwrites the whole cart, refreshing its TTL.
func (s *CartService) ReplaceCart(ctx context.Context, cart *models.CustomerCart) (*models.CustomerCart, error) {
	if cart == nil || cart.ID == "" {
		return nil, errors.ValidationError("Cart id is required")
	}

	stored, err := s.store.Set(ctx, cart)
	if err != nil {
		return nil, errors.CacheWriteError("Failed to store cart").WithError(err)
	}

	return stored, nil
}

func (s *CartService) DeleteCart(ctx context.Context, cartID string) (bool, error) {
	deleted, err := s.store.Delete(ctx, cartID)
	if err != nil {
		return false, errors.CacheWriteError("Failed to delete cart").WithError(err)
	}

	return deleted, nil
}

// AddItem appends a new line or increments the quantity of an existing one.
func (s *CartService) AddItem(ctx context.Context, cartID string, item models.CartItem) (*models.CustomerCart, error) {
	if item.Quantity < 1 {
		return nil, errors.ValidationError("Quantity must be at least 1")
	}

	if item.UnitPrice.IsNegative() {
		return nil, errors.ValidationError("Unit price must not be negative")
	}

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItem(item.ID); idx >= 0 {
		cart.Items[idx].Quantity += item.Quantity
	} else {
		cart.Items = append(cart.Items, item)
	}

	return s.writeBack(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, cartID string, productID int64) (*models.CustomerCart, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if !cart.RemoveItem(productID) {
		return nil, errors.NotFoundError("Item not found in the cart")
	}

	return s.writeBack(ctx, cart)
}

// UpdateItemQuantity sets the quantity of an existing line. A quantity of
// zero or less removes the line instead of storing a non-positive quantity.
func (s *CartService) UpdateItemQuantity(ctx context.Context, cartID string, productID int64, quantity int) (*models.CustomerCart, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(productID)
	if idx < 0 {
		return nil, errors.NotFoundError("Item not found in the cart")
	}

	if quantity <= 0 {
		cart.RemoveItem(productID)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	return s.writeBack(ctx, cart)
}

func (s *CartService) SetDeliveryMethod(ctx context.Context, cartID string, deliveryMethodID int64) (*models.CustomerCart, error) {
	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.DeliveryMethodID = &deliveryMethodID

	return s.writeBack(ctx, cart)
}

func (s *CartService) writeBack(ctx context.Context, cart *models.CustomerCart) (*models.CustomerCart, error) {
	stored, err := s.store.Set(ctx, cart)
	if err != nil {
		return nil, errors.CacheWriteError("Failed to store cart").WithError(err)
	}

	return stored, nil
}
