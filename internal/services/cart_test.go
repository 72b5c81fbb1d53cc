package service_test

import (
	"errors"
	"testing"

	appErrors "github.com/Next-Gene/primecare/internal/errors"
	"github.com/Next-Gene/primecare/internal/models"
	service "github.com/Next-Gene/primecare/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cartWithItems(items ...models.CartItem) *models.CustomerCart {
	return &models.CustomerCart{ID: "u1", Items: items}
}

func TestGetCart(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Existing Cart", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		existing := cartWithItems(models.CartItem{ID: 5, UnitPrice: price("10.00"), Quantity: 2})
		store.On("Get", ctx, "u1").Return(existing, nil).Once()

		cart, err := cartService.GetCart(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, existing, cart)
		store.AssertExpectations(t)
	})

	t.Run("Success - Miss Yields Empty Cart", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		store.On("Get", ctx, "u1").Return(nil, nil).Once()

		cart, err := cartService.GetCart(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, "u1", cart.ID)
		assert.Empty(t, cart.Items)
		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Store Error", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		store.On("Get", ctx, "u1").Return(nil, errors.New("connection refused")).Once()

		cart, err := cartService.GetCart(ctx, "u1")

		require.Error(t, err)
		assert.Nil(t, cart)
	})
}

func TestAddItem(t *testing.T) {
	ctx := t.Context()
	item := models.CartItem{ID: 5, ProductName: "Trail Boot", UnitPrice: price("10.00"), Quantity: 2}

	t.Run("Success - New Line", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		store.On("Get", ctx, "u1").Return(nil, nil).Once()
		store.On("Set", ctx, mock.AnythingOfType("*models.CustomerCart")).
			Return(cartWithItems(item), nil).Once()

		cart, err := cartService.AddItem(ctx, "u1", item)

		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		store.AssertExpectations(t)
	})

	t.Run("Success - Existing Line Increments Quantity", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		store.On("Get", ctx, "u1").Return(cartWithItems(item), nil).Once()
		store.On("Set", ctx, mock.MatchedBy(func(c *models.CustomerCart) bool {
			return len(c.Items) == 1 && c.Items[0].Quantity == 5
		})).Return(cartWithItems(models.CartItem{ID: 5, UnitPrice: price("10.00"), Quantity: 5}), nil).Once()

		_, err := cartService.AddItem(ctx, "u1", models.CartItem{ID: 5, UnitPrice: price("10.00"), Quantity: 3})

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Failure - Non-Positive Quantity", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		_, err := cartService.AddItem(ctx, "u1", models.CartItem{ID: 5, Quantity: 0})

		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Write Error Does Not Report Success", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		store.On("Get", ctx, "u1").Return(nil, nil).Once()
		store.On("Set", ctx, mock.Anything).Return(nil, errors.New("write failed")).Once()

		cart, err := cartService.AddItem(ctx, "u1", item)

		require.Error(t, err)
		assert.Nil(t, cart)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeCacheWrite, appErr.Code)
	})
}

func TestUpdateItemQuantity(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Sets Quantity", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		store.On("Get", ctx, "u1").
			Return(cartWithItems(models.CartItem{ID: 5, UnitPrice: price("10.00"), Quantity: 2}), nil).Once()
		store.On("Set", ctx, mock.MatchedBy(func(c *models.CustomerCart) bool {
			return len(c.Items) == 1 && c.Items[0].Quantity == 7
		})).Return(cartWithItems(models.CartItem{ID: 5, UnitPrice: price("10.00"), Quantity: 7}), nil).Once()

		_, err := cartService.UpdateItemQuantity(ctx, "u1", 5, 7)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Success - Zero Quantity Removes The Line", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		store.On("Get", ctx, "u1").
			Return(cartWithItems(models.CartItem{ID: 5, UnitPrice: price("10.00"), Quantity: 2}), nil).Once()
		store.On("Set", ctx, mock.MatchedBy(func(c *models.CustomerCart) bool {
			return len(c.Items) == 0
		})).Return(cartWithItems(), nil).Once()

		_, err := cartService.UpdateItemQuantity(ctx, "u1", 5, 0)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Success - Negative Quantity Also Removes", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		store.On("Get", ctx, "u1").
			Return(cartWithItems(models.CartItem{ID: 5, UnitPrice: price("10.00"), Quantity: 2}), nil).Once()
		store.On("Set", ctx, mock.MatchedBy(func(c *models.CustomerCart) bool {
			return len(c.Items) == 0
		})).Return(cartWithItems(), nil).Once()

		_, err := cartService.UpdateItemQuantity(ctx, "u1", 5, -3)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Failure - Item Not In Cart", func(t *testing.T) {
		store := &MockCartStore{}
		cartService := service.NewCartService(store)

		store.On("Get", ctx, "u1").Return(cartWithItems(), nil).Once()

		_, err := cartService.UpdateItemQuantity(ctx, "u1", 99, 1)

		require.Error(t, err)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestCartTotal(t *testing.T) {
	t.Run("Total Is Recomputed From Items", func(t *testing.T) {
		cart := cartWithItems(
			models.CartItem{ID: 5, UnitPrice: price("10.00"), Quantity: 2},
			models.CartItem{ID: 6, UnitPrice: price("3.50"), Quantity: 3},
		)

		assert.True(t, cart.Total().Equal(price("30.50")))

		cart.Items[0].Quantity = 1

		assert.True(t, cart.Total().Equal(price("20.50")), "total must track item mutations")
	})

	t.Run("Empty Cart Total Is Zero", func(t *testing.T) {
		assert.True(t, cartWithItems().Total().IsZero())
	})
}
