package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/routes"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/internal/bookings"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/internal/purchases"
	socialsvc "github.com/paritbhardwaj019/molle-event-platform-sub003/internal/social"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/internal/subscriptions"
	cashfreewebhook "github.com/paritbhardwaj019/molle-event-platform-sub003/internal/webhooks/cashfree"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/cashfree"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/config"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/metrics"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/migrate"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	cashfreeClient, err := cashfree.NewClient(context.Background(), cfg.Cashfree, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cashfree client", err)
		os.Exit(1)
	}

	paymentMetrics := metrics.NewPaymentMetrics(prometheus.DefaultRegisterer)

	bookingRepo := bookings.NewRepository(dbClient.DB())
	subscriptionRepo := subscriptions.NewRepository(dbClient.DB())
	purchaseRepo := purchases.NewRepository(dbClient.DB())
	socialRepo := socialsvc.NewRepository(dbClient.DB())

	bookingService, err := bookings.NewService(bookings.ServiceParams{
		Repo:              bookingRepo,
		TransactionRunner: dbClient,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create bookings service", err)
		os.Exit(1)
	}

	subscriptionService, err := subscriptions.NewService(subscriptions.ServiceParams{
		Repo:              subscriptionRepo,
		TransactionRunner: dbClient,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create subscriptions service", err)
		os.Exit(1)
	}

	purchaseService, err := purchases.NewService(purchases.ServiceParams{
		Repo:              purchaseRepo,
		Gateway:           cashfreeClient,
		TransactionRunner: dbClient,
		Swipes:            cfg.Swipes,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create purchases service", err)
		os.Exit(1)
	}

	socialService, err := socialsvc.NewService(socialsvc.ServiceParams{
		Repo:              socialRepo,
		TransactionRunner: dbClient,
		Swipes:            cfg.Swipes,
		Metrics:           paymentMetrics,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create social service", err)
		os.Exit(1)
	}

	webhookService, err := cashfreewebhook.NewService(cashfreewebhook.ServiceParams{
		SubscriptionVerifier: subscriptionService,
		BookingVerifier:      bookingService,
		PurchaseCompleter:    purchaseService,
		SubscriptionRepo:     subscriptionRepo,
		BookingRepo:          bookingRepo,
		PurchaseRepo:         purchaseRepo,
		TransactionRunner:    dbClient,
		Metrics:              paymentMetrics,
		Logger:               logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook service", err)
		os.Exit(1)
	}

	webhookGuard, err := cashfreewebhook.NewIdempotencyGuard(redisClient, cfg.Cashfree.WebhookIdempotencyTTL, "cashfree")
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook guard", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			CashfreeClient:  cashfreeClient,
			WebhookService:  webhookService,
			WebhookGuard:    webhookGuard,
			SocialService:   socialService,
			PurchaseService: purchaseService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
