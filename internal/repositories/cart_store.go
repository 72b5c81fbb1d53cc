package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Next-Gene/primecare/internal/cache"
	"github.com/Next-Gene/primecare/internal/models"
)

// CartStore is the ephemeral cart aggregate store: one JSON value per
// customer, expiring on a sliding TTL refreshed by every write.
type CartStore interface {
	// Get returns the cart or nil when none exists. A nil cart is not an
	// error.
	Get(ctx context.Context, cartID string) (*models.CustomerCart, error)

	// Set writes the whole cart and refreshes its TTL. A write failure is
	// reported as an error, never as success.
	Set(ctx context.Context, cart *models.CustomerCart) (*models.CustomerCart, error)

	// Delete removes the cart, reporting whether it existed.
	Delete(ctx context.Context, cartID string) (bool, error)
}

type cartStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewCartStore(c cache.Cache, ttl time.Duration) CartStore {
	return &cartStore{cache: c, ttl: ttl}
}

func (s *cartStore) Get(ctx context.Context, cartID string) (*models.CustomerCart, error) {
	var cart models.CustomerCart

	found, err := s.cache.Get(ctx, cache.Key(cache.CartKeyPrefix, cartID), &cart)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart %s: %w", cartID, err)
	}

	if !found {
		return nil, nil
	}

	return &cart, nil
}

func (s *cartStore) Set(ctx context.Context, cart *models.CustomerCart) (*models.CustomerCart, error) {
	if err := s.cache.Set(ctx, cache.Key(cache.CartKeyPrefix, cart.ID), cart, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to write cart %s: %w", cart.ID, err)
	}

	return cart, nil
}

func (s *cartStore) Delete(ctx context.Context, cartID string) (bool, error) {
	deleted, err := s.cache.Delete(ctx, cache.Key(cache.CartKeyPrefix, cartID))
	if err != nil {
		return false, fmt.Errorf("failed to delete cart %s: %w", cartID, err)
	}

	return deleted, nil
}
