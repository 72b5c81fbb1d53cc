package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	apperrors "github.com/Next-Gene/primecare/internal/errors"
	"github.com/Next-Gene/primecare/internal/models"
	repository "github.com/Next-Gene/primecare/internal/repositories"
	"github.com/Next-Gene/primecare/internal/specification"
	"github.com/shopspring/decimal"
)

// OrderService converts carts into durable orders and serves the buyer-scoped
// order reads.
type OrderService struct {
	uowFactory      repository.UnitOfWorkFactory
	carts           repository.CartStore
	orders          repository.Repository[models.Order]
	deliveryMethods repository.Repository[models.DeliveryMethod]
}

func NewOrderService(
	uowFactory repository.UnitOfWorkFactory,
	carts repository.CartStore,
	orders repository.Repository[models.Order],
	deliveryMethods repository.Repository[models.DeliveryMethod],
) *OrderService {
	return &OrderService{
		uowFactory:      uowFactory,
		carts:           carts,
		orders:          orders,
		deliveryMethods: deliveryMethods,
	}
}

// CreateOrder snapshots the cart into a durable order in one atomic commit.
// Line items are revalidated against the catalog and snapshotted at the
// current catalog price, not the possibly-stale cart price. Any missing
// product or delivery method aborts the whole order; partial orders are never
// created. The cart is only cleared after a successful commit, and clearing
// is best-effort: a stale cart is a lesser defect than a lost order.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	cart, err := s.carts.Get(ctx, req.CartID)
	if err != nil {
		return nil, apperrors.InternalError("Failed to read cart").WithError(err)
	}

	if cart.IsEmpty() {
		return nil, apperrors.EmptyCartError()
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, apperrors.PersistenceError("Failed to start transaction").WithError(err)
	}

	order, err := s.buildAndPersistOrder(ctx, uow, cart, req)
	if err != nil {
		if rbErr := uow.Rollback(ctx); rbErr != nil {
			slog.Error("Failed to rollback order transaction", slog.Any("error", rbErr))
		}

		return nil, err
	}

	if _, err := s.carts.Delete(ctx, cart.ID); err != nil {
		slog.Warn("Failed to clear cart after order creation",
			slog.String("cart_id", cart.ID),
			slog.Int64("order_id", order.ID),
			slog.Any("error", err))
	}

	return order, nil
}

func (s *OrderService) buildAndPersistOrder(ctx context.Context, uow repository.UnitOfWork, cart *models.CustomerCart, req *models.CreateOrderRequest) (*models.Order, error) {
	products := uow.Products()

	items := make([]models.OrderItem, 0, len(cart.Items))
	subtotal := decimal.Zero

	for _, cartItem := range cart.Items {
		product, err := products.GetBySpec(ctx, specification.ProductByID(cartItem.ID))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.ProductNotFoundError(cartItem.ID).WithError(err)
			}

			return nil, apperrors.PersistenceError("Failed to fetch product").WithError(err)
		}

		items = append(items, models.OrderItem{
			ItemOrdered: models.ProductItemOrdered{
				ProductID:   product.ID,
				ProductName: product.Name,
				ImageURL:    product.MainPhotoURL(),
			},
			Price:    product.Price,
			Quantity: cartItem.Quantity,
		})

		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(cartItem.Quantity))))
	}

	deliveryMethod, err := uow.DeliveryMethods().GetByID(ctx, req.DeliveryMethodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.DeliveryMethodNotFoundError(req.DeliveryMethodID).WithError(err)
		}

		return nil, apperrors.PersistenceError("Failed to fetch delivery method").WithError(err)
	}

	order := &models.Order{
		BuyerEmail:       req.BuyerEmail,
		OrderDate:        time.Now().UTC(),
		ShipToAddress:    req.ShipToAddress,
		DeliveryMethodID: deliveryMethod.ID,
		DeliveryMethod:   deliveryMethod,
		Items:            items,
		Subtotal:         subtotal,
		Status:           models.OrderStatusPending,
		PaymentIntentID:  cart.PaymentIntentID,
	}

	if err := uow.Orders().Add(ctx, order); err != nil {
		return nil, apperrors.PersistenceError("Failed to create order").WithError(err)
	}

	affected, err := uow.Commit(ctx)
	if err != nil {
		return nil, apperrors.PersistenceError("Failed to commit order").WithError(err)
	}

	if affected <= 0 {
		return nil, apperrors.PersistenceError("No order was created")
	}

	return order, nil
}

// GetOrderByID is scoped by buyer email: an order belonging to a different
// buyer is reported as not found even when the id matches.
func (s *OrderService) GetOrderByID(ctx context.Context, id int64, buyerEmail string) (*models.Order, error) {
	order, err := s.orders.GetBySpec(ctx, specification.OrderByIDForBuyer(id, buyerEmail))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, apperrors.PersistenceError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *OrderService) ListOrdersForBuyer(ctx context.Context, buyerEmail string) ([]models.Order, error) {
	orders, err := s.orders.ListBySpec(ctx, specification.OrdersForBuyer(buyerEmail))
	if err != nil {
		return nil, apperrors.PersistenceError("Failed to fetch orders").WithError(err)
	}

	return orders, nil
}

func (s *OrderService) ListDeliveryMethods(ctx context.Context) ([]models.DeliveryMethod, error) {
	methods, err := s.deliveryMethods.ListBySpec(ctx, specification.DeliveryMethodsByPrice())
	if err != nil {
		return nil, apperrors.PersistenceError("Failed to fetch delivery methods").WithError(err)
	}

	return methods, nil
}
