package service

// App bundles the storefront core services. The HTTP layer (outside this
// module's scope) receives one App and maps routes onto it.
type App struct {
	Carts    *CartService
	Products *ProductService
	Orders   *OrderService
	Payments *PaymentService
}
