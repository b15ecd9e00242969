package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/responses"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/config"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// SwipeRateLimit throttles swipe submissions per authenticated user. It sits
// in front of the quota engine and guards against burst abuse only; the daily
// quota accounting lives in the social service.
func SwipeRateLimit(cfg config.RateLimitConfig, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.SwipeWindow <= 0 || cfg.SwipeLimit <= 0 || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID := UserIDFromContext(ctx)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := fmt.Sprintf("rl:swipe:%s", userID)
			count, err := store.IncrWithTTL(ctx, key, cfg.SwipeWindow)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}

			if count > cfg.SwipeLimit {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"attempts":       count,
						"limit":          cfg.SwipeLimit,
						"window_seconds": int(cfg.SwipeWindow.Seconds()),
					})
					logg.Warn(logCtx, "swipe.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many swipe requests"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
