package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation             = "VALIDATION_ERROR"
	ErrCodeNotFound               = "NOT_FOUND"
	ErrCodeEmptyCart              = "EMPTY_CART"
	ErrCodeProductNotFound        = "PRODUCT_NOT_FOUND"
	ErrCodeDeliveryMethodNotFound = "DELIVERY_METHOD_NOT_FOUND"
	ErrCodeInvalidCheckoutData    = "INVALID_CHECKOUT_DATA"
	ErrCodeInvalidSignature       = "INVALID_SIGNATURE"
	ErrCodePersistence            = "PERSISTENCE_ERROR"
	ErrCodeExternalProvider       = "EXTERNAL_PROVIDER_ERROR"
	ErrCodeCacheWrite             = "CACHE_WRITE_ERROR"
	ErrCodeInternal               = "INTERNAL_ERROR"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func EmptyCartError() *AppError {
	return NewAppError(ErrCodeEmptyCart, "Cart is empty or does not exist", http.StatusBadRequest)
}

func ProductNotFoundError(productID int64) *AppError {
	return NewAppError(ErrCodeProductNotFound, "Product no longer exists in the catalog", http.StatusBadRequest).
		WithDetail(fmt.Sprintf("product id %d", productID))
}

func DeliveryMethodNotFoundError(deliveryMethodID int64) *AppError {
	return NewAppError(ErrCodeDeliveryMethodNotFound, "Delivery method not found", http.StatusBadRequest).
		WithDetail(fmt.Sprintf("delivery method id %d", deliveryMethodID))
}

func InvalidCheckoutDataError(message string) *AppError {
	return NewAppError(ErrCodeInvalidCheckoutData, message, http.StatusBadRequest)
}

func InvalidSignatureError() *AppError {
	return NewAppError(ErrCodeInvalidSignature, "Webhook signature verification failed", http.StatusUnauthorized)
}

func PersistenceError(message string) *AppError {
	return NewAppError(ErrCodePersistence, message, http.StatusInternalServerError)
}

func ExternalProviderError(message string) *AppError {
	return NewAppError(ErrCodeExternalProvider, message, http.StatusBadGateway)
}

func CacheWriteError(message string) *AppError {
	return NewAppError(ErrCodeCacheWrite, message, http.StatusInternalServerError)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}
