package service_test

import (
	"context"

	"github.com/Next-Gene/primecare/internal/models"
	repository "github.com/Next-Gene/primecare/internal/repositories"
	"github.com/Next-Gene/primecare/internal/specification"
	"github.com/Next-Gene/primecare/pkg/stripe"
	stripelib "github.com/stripe/stripe-go/v81"
	"github.com/stretchr/testify/mock"
)

type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Get(ctx context.Context, cartID string) (*models.CustomerCart, error) {
	args := m.Called(ctx, cartID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CustomerCart), args.Error(1)
}

func (m *MockCartStore) Set(ctx context.Context, cart *models.CustomerCart) (*models.CustomerCart, error) {
	args := m.Called(ctx, cart)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CustomerCart), args.Error(1)
}

func (m *MockCartStore) Delete(ctx context.Context, cartID string) (bool, error) {
	args := m.Called(ctx, cartID)

	return args.Bool(0), args.Error(1)
}

type MockRepository[T any] struct {
	mock.Mock
}

func (m *MockRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepository[T]) GetBySpec(ctx context.Context, spec specification.Specification) (*T, error) {
	args := m.Called(ctx, spec)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T]) ListBySpec(ctx context.Context, spec specification.Specification) ([]T, error) {
	args := m.Called(ctx, spec)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]T), args.Error(1)
}

func (m *MockRepository[T]) CountBySpec(ctx context.Context, spec specification.Specification) (int64, error) {
	args := m.Called(ctx, spec)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository[T]) Add(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)

	return args.Error(0)
}

func (m *MockRepository[T]) Update(ctx context.Context, entity *T) error {
	args := m.Called(ctx, entity)

	return args.Error(0)
}

func (m *MockRepository[T]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type MockUnitOfWork struct {
	mock.Mock
	ProductsRepo *MockRepository[models.Product]
	DeliveryRepo *MockRepository[models.DeliveryMethod]
	OrdersRepo   *MockRepository[models.Order]
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		ProductsRepo: &MockRepository[models.Product]{},
		DeliveryRepo: &MockRepository[models.DeliveryMethod]{},
		OrdersRepo:   &MockRepository[models.Order]{},
	}
}

func (m *MockUnitOfWork) Products() repository.Repository[models.Product] {
	return m.ProductsRepo
}

func (m *MockUnitOfWork) DeliveryMethods() repository.Repository[models.DeliveryMethod] {
	return m.DeliveryRepo
}

func (m *MockUnitOfWork) Orders() repository.Repository[models.Order] {
	return m.OrdersRepo
}

func (m *MockUnitOfWork) Commit(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(repository.UnitOfWork), args.Error(1)
}

type MockStripeClient struct {
	mock.Mock
}

func (m *MockStripeClient) CreatePaymentIntent(amount int64, currency string) (*stripelib.PaymentIntent, error) {
	args := m.Called(amount, currency)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*stripelib.PaymentIntent), args.Error(1)
}

func (m *MockStripeClient) UpdatePaymentIntentAmount(paymentIntentID string, amount int64) (*stripelib.PaymentIntent, error) {
	args := m.Called(paymentIntentID, amount)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*stripelib.PaymentIntent), args.Error(1)
}

func (m *MockStripeClient) CreateCheckoutSession(params stripe.CheckoutParams) (*stripelib.CheckoutSession, error) {
	args := m.Called(params)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*stripelib.CheckoutSession), args.Error(1)
}

func (m *MockStripeClient) VerifyWebhookSignature(payload []byte, signature string) (stripe.Event, error) {
	args := m.Called(payload, signature)

	return args.Get(0).(stripe.Event), args.Error(1)
}
