package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Next-Gene/primecare/internal/cache"
	"github.com/Next-Gene/primecare/internal/config"
	"github.com/Next-Gene/primecare/internal/models"
	repository "github.com/Next-Gene/primecare/internal/repositories"
	service "github.com/Next-Gene/primecare/internal/services"
	"github.com/Next-Gene/primecare/pkg/stripe"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	db, err := repository.NewDatabase(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.Any("error", err))
		os.Exit(1)
	}

	cartCache := cache.NewRedisCache(redisClient, cfg.Cart.TTL)

	defer func() {
		if err := cartCache.Close(); err != nil {
			slog.Error("Error closing redis connection", slog.Any("error", err))
		}
	}()

	cartStore := repository.NewCartStore(cartCache, cfg.Cart.TTL)
	uowFactory := repository.NewUnitOfWorkFactory(db)
	productRepo := repository.NewRepository[models.Product](db)
	brandRepo := repository.NewRepository[models.Brand](db)
	categoryRepo := repository.NewRepository[models.Category](db)
	orderRepo := repository.NewRepository[models.Order](db)
	deliveryRepo := repository.NewRepository[models.DeliveryMethod](db)

	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)

	app := &service.App{
		Carts:    service.NewCartService(cartStore),
		Products: service.NewProductService(productRepo, brandRepo, categoryRepo),
		Orders:   service.NewOrderService(uowFactory, cartStore, orderRepo, deliveryRepo),
		Payments: service.NewPaymentService(
			cartStore, productRepo, deliveryRepo, orderRepo, stripeClient,
			cfg.Stripe.Currency, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL,
		),
	}

	// The HTTP layer mounts its routes on top of app; the core only builds it.
	_ = app

	slog.Info("Storefront core initialized", slog.String("env", cfg.Env))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-done

	slog.Info("Shutdown signal received, stopping")
}
