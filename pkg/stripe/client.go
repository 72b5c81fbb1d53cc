package stripe

import (
	"errors"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

// CheckoutLineItem is one purchasable line of a hosted checkout session.
// UnitAmount is in the provider's minor currency unit.
type CheckoutLineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type CheckoutParams struct {
	LineItems     []CheckoutLineItem
	CustomerEmail string
	Currency      string
	SuccessURL    string
	CancelURL     string
}

// Client is the payment-provider surface the orchestrators depend on.
type Client interface {
	CreatePaymentIntent(amount int64, currency string) (*stripe.PaymentIntent, error)
	UpdatePaymentIntentAmount(paymentIntentID string, amount int64) (*stripe.PaymentIntent, error)
	CreateCheckoutSession(params CheckoutParams) (*stripe.CheckoutSession, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
}

type stripeClient struct {
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	stripe.Key = apiKey

	return &stripeClient{webhookSecret: webhookSecret}
}

// CreatePaymentIntent implements Client.
func (s *stripeClient) CreatePaymentIntent(amount int64, currency string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	// One key per logical create; the SDK reuses it across its own retries,
	// so a network hiccup cannot mint a second intent.
	params.IdempotencyKey = stripe.String(uuid.NewString())

	return paymentintent.New(params)
}

// UpdatePaymentIntentAmount implements Client.
func (s *stripeClient) UpdatePaymentIntentAmount(paymentIntentID string, amount int64) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount: stripe.Int64(amount),
	}

	return paymentintent.Update(paymentIntentID, params)
}

// CreateCheckoutSession implements Client.
func (s *stripeClient) CreateCheckoutSession(params CheckoutParams) (*stripe.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(params.LineItems))

	for _, item := range params.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(params.Currency),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}

	if params.CustomerEmail != "" {
		sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
	}

	return session.New(sessionParams)
}

// VerifyWebhookSignature implements Client.
func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}
