package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/controllers"
	socialcontrollers "github.com/paritbhardwaj019/molle-event-platform-sub003/api/controllers/social"
	webhookcontrollers "github.com/paritbhardwaj019/molle-event-platform-sub003/api/controllers/webhooks"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/middleware"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/internal/purchases"
	socialsvc "github.com/paritbhardwaj019/molle-event-platform-sub003/internal/social"
	cashfreewebhook "github.com/paritbhardwaj019/molle-event-platform-sub003/internal/webhooks/cashfree"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/cashfree"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/config"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/redis"
)

type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              *db.Client
	Redis           *redis.Client
	CashfreeClient  *cashfree.Client
	WebhookService  *cashfreewebhook.Service
	WebhookGuard    *cashfreewebhook.IdempotencyGuard
	SocialService   *socialsvc.Service
	PurchaseService *purchases.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, params.DB, params.Redis, logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/cashfree", webhookcontrollers.CashfreeWebhook(params.WebhookService, params.CashfreeClient, params.WebhookGuard, logg))
	})

	r.Route("/api/v1/social", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.With(middleware.SwipeRateLimit(cfg.RateLimit, params.Redis, logg)).
			Post("/swipe", socialcontrollers.Swipe(params.SocialService, logg))
		r.Post("/block", socialcontrollers.Block(params.SocialService, logg))
		r.Get("/matches", socialcontrollers.Matches(params.SocialService, logg))
		r.Post("/purchase-swipes", socialcontrollers.PurchaseSwipes(params.PurchaseService, logg))
		r.Put("/purchase-swipes", socialcontrollers.VerifyPurchase(params.PurchaseService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Get("/ping", controllers.PrivatePing())
	})

	return r
}
