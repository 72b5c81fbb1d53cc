package service

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/Next-Gene/primecare/internal/errors"
	"github.com/Next-Gene/primecare/internal/models"
	repository "github.com/Next-Gene/primecare/internal/repositories"
	"github.com/Next-Gene/primecare/internal/specification"
	"github.com/Next-Gene/primecare/pkg/stripe"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	eventPaymentSucceeded = "payment_intent.succeeded"
	eventPaymentFailed    = "payment_intent.payment_failed"
)

var minorUnitFactor = decimal.NewFromInt(100)

// PaymentService keeps the provider-side payment intent in lockstep with the
// cart total and applies provider webhooks to order state.
type PaymentService struct {
	carts           repository.CartStore
	products        repository.Repository[models.Product]
	deliveryMethods repository.Repository[models.DeliveryMethod]
	orders          repository.Repository[models.Order]
	stripeClient    stripe.Client
	validate        *validator.Validate
	currency        string
	successURL      string
	cancelURL       string
}

func NewPaymentService(
	carts repository.CartStore,
	products repository.Repository[models.Product],
	deliveryMethods repository.Repository[models.DeliveryMethod],
	orders repository.Repository[models.Order],
	stripeClient stripe.Client,
	currency, successURL, cancelURL string,
) *PaymentService {
	return &PaymentService{
		carts:           carts,
		products:        products,
		deliveryMethods: deliveryMethods,
		orders:          orders,
		stripeClient:    stripeClient,
		validate:        validator.New(),
		currency:        currency,
		successURL:      successURL,
		cancelURL:       cancelURL,
	}
}

// CreateOrUpdatePaymentIntent keeps the intent amount equal to the live cart
// total. Every cart item's price is reconciled against the current catalog
// price first, so a stale cached price never under- or over-charges; cart
// display totals elsewhere deliberately do not reconcile. The cart is written
// back only after the provider call succeeds, and repeat calls on an
// unchanged cart keep the same intent id and amount.
func (s *PaymentService) CreateOrUpdatePaymentIntent(ctx context.Context, cartID string) (*models.CustomerCart, error) {
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, apperrors.InternalError("Failed to read cart").WithError(err)
	}

	if cart.IsEmpty() {
		return nil, apperrors.EmptyCartError()
	}

	shipping := decimal.Zero

	if cart.DeliveryMethodID != nil {
		deliveryMethod, err := s.deliveryMethods.GetByID(ctx, *cart.DeliveryMethodID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.DeliveryMethodNotFoundError(*cart.DeliveryMethodID).WithError(err)
			}

			return nil, apperrors.PersistenceError("Failed to fetch delivery method").WithError(err)
		}

		shipping = deliveryMethod.Price
	}

	if err := s.reconcilePrices(ctx, cart); err != nil {
		return nil, err
	}

	amount := toMinorUnits(cart.Total().Add(shipping))

	if cart.PaymentIntentID == "" {
		intent, err := s.stripeClient.CreatePaymentIntent(amount, s.currency)
		if err != nil {
			return nil, apperrors.ExternalProviderError("Failed to create payment intent").WithError(err)
		}

		cart.PaymentIntentID = intent.ID
		cart.ClientSecret = intent.ClientSecret
	} else {
		if _, err := s.stripeClient.UpdatePaymentIntentAmount(cart.PaymentIntentID, amount); err != nil {
			return nil, apperrors.ExternalProviderError("Failed to update payment intent").WithError(err)
		}
	}

	stored, err := s.carts.Set(ctx, cart)
	if err != nil {
		return nil, apperrors.CacheWriteError("Failed to store cart").WithError(err)
	}

	return stored, nil
}

// CreateCheckoutSession builds a hosted checkout with one line item per cart
// entry at its current unit price and returns the redirect URL.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, cartID string, data *models.CheckoutData) (string, error) {
	if data == nil {
		return "", apperrors.InvalidCheckoutDataError("Checkout data is required")
	}

	if err := s.validate.Struct(data); err != nil {
		return "", apperrors.InvalidCheckoutDataError("Shipping address and delivery method are required").WithError(err)
	}

	if data.ShipToAddress != nil {
		if err := s.validate.Struct(data.ShipToAddress); err != nil {
			return "", apperrors.InvalidCheckoutDataError("Shipping address is incomplete").WithError(err)
		}
	}

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return "", apperrors.InternalError("Failed to read cart").WithError(err)
	}

	if cart.IsEmpty() {
		return "", apperrors.EmptyCartError()
	}

	deliveryMethod, err := s.deliveryMethods.GetByID(ctx, data.DeliveryMethodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.InvalidCheckoutDataError("Unknown delivery method").WithError(err)
		}

		return "", apperrors.PersistenceError("Failed to fetch delivery method").WithError(err)
	}

	lineItems := lo.Map(cart.Items, func(item models.CartItem, _ int) stripe.CheckoutLineItem {
		return stripe.CheckoutLineItem{
			Name:       item.ProductName,
			UnitAmount: toMinorUnits(item.UnitPrice),
			Quantity:   int64(item.Quantity),
		}
	})

	if deliveryMethod.Price.IsPositive() {
		lineItems = append(lineItems, stripe.CheckoutLineItem{
			Name:       deliveryMethod.ShortName,
			UnitAmount: toMinorUnits(deliveryMethod.Price),
			Quantity:   1,
		})
	}

	checkout, err := s.stripeClient.CreateCheckoutSession(stripe.CheckoutParams{
		LineItems:  lineItems,
		Currency:   s.currency,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return "", apperrors.ExternalProviderError("Failed to create checkout session").WithError(err)
	}

	return checkout.URL, nil
}

// HandleWebhook verifies the provider signature before trusting anything in
// the payload, then applies the event. Redelivered events are an idempotent
// no-op: an order already in PaymentReceived is acknowledged without change,
// and unrecognized event types are acknowledged without any state change.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error) {
	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return stripe.Event{}, apperrors.InvalidSignatureError().WithError(err)
	}

	switch event.Type {
	case eventPaymentSucceeded:
		intentID, ok := paymentIntentIDFromEvent(event)
		if !ok {
			return event, apperrors.ExternalProviderError("Missing payment intent id in webhook")
		}

		if err := s.markOrderPaid(ctx, intentID); err != nil {
			return event, err
		}

	case eventPaymentFailed:
		intentID, _ := paymentIntentIDFromEvent(event)
		slog.Warn("Payment failed for intent", slog.String("payment_intent_id", intentID))

	default:
		slog.Debug("Ignoring unhandled webhook event", slog.String("type", string(event.Type)))
	}

	return event, nil
}

// reconcilePrices overwrites each cart line's unit price with the live
// catalog price. A product that vanished from the catalog aborts the whole
// operation.
func (s *PaymentService) reconcilePrices(ctx context.Context, cart *models.CustomerCart) error {
	for i := range cart.Items {
		product, err := s.products.GetByID(ctx, cart.Items[i].ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ProductNotFoundError(cart.Items[i].ID).WithError(err)
			}

			return apperrors.PersistenceError("Failed to fetch product").WithError(err)
		}

		if !product.Price.Equal(cart.Items[i].UnitPrice) {
			cart.Items[i].UnitPrice = product.Price
		}
	}

	return nil
}

func (s *PaymentService) markOrderPaid(ctx context.Context, intentID string) error {
	order, err := s.orders.GetBySpec(ctx, specification.OrderByPaymentIntent(intentID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Nothing to transition; acknowledge so the provider stops
			// redelivering.
			slog.Warn("No order matches payment intent", slog.String("payment_intent_id", intentID))

			return nil
		}

		return apperrors.PersistenceError("Failed to fetch order for webhook").WithError(err)
	}

	if order.Status == models.OrderStatusPaymentReceived {
		slog.Info("Webhook replay for already-paid order", slog.Int64("order_id", order.ID))

		return nil
	}

	if !order.Status.CanTransitionTo(models.OrderStatusPaymentReceived) {
		slog.Warn("Ignoring payment webhook for terminal order",
			slog.Int64("order_id", order.ID),
			slog.String("status", string(order.Status)))

		return nil
	}

	order.Status = models.OrderStatusPaymentReceived

	if err := s.orders.Update(ctx, order); err != nil {
		return apperrors.PersistenceError("Failed to update order status").WithError(err)
	}

	slog.Info("Order marked as paid",
		slog.Int64("order_id", order.ID),
		slog.String("payment_intent_id", intentID))

	return nil
}

func paymentIntentIDFromEvent(event stripe.Event) (string, bool) {
	object := event.Data.Object

	raw, ok := object["id"]
	if !ok {
		return "", false
	}

	id, ok := raw.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}

func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnitFactor).Round(0).IntPart()
}
