package webhooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/responses"
	cashfreewebhook "github.com/paritbhardwaj019/molle-event-platform-sub003/internal/webhooks/cashfree"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/cashfree"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
)

type CashfreeWebhookService interface {
	HandleEvent(ctx context.Context, event *cashfreewebhook.Event) (cashfreewebhook.Outcome, error)
}

type cashfreeWebhookGuard interface {
	CheckAndMark(ctx context.Context, eventID string) (bool, error)
	Delete(ctx context.Context, eventID string) error
}

type cashfreeClient interface {
	WebhookSecret() string
}

// CashfreeWebhook handles payment and transfer lifecycle events from the
// gateway. The signature is verified over the exact raw body bytes before
// anything is decoded.
func CashfreeWebhook(svc CashfreeWebhookService, client cashfreeClient, guard cashfreeWebhookGuard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}
		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cashfree client unavailable"))
			return
		}
		if guard == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "idempotency guard unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request body"))
			return
		}

		signature := r.Header.Get("x-webhook-signature")
		timestamp := r.Header.Get("x-webhook-timestamp")
		if !cashfree.VerifyWebhookSignature(payload, timestamp, signature, client.WebhookSecret()) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid webhook signature"))
			return
		}

		var event cashfreewebhook.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode event"))
			return
		}

		eventKey := event.Key()
		alreadyProcessed, err := guard.CheckAndMark(ctx, eventKey)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
			return
		}
		if alreadyProcessed {
			responses.WriteSuccess(w, map[string]bool{"success": true})
			return
		}

		outcome, err := svc.HandleEvent(ctx, &event)
		if err != nil {
			_ = guard.Delete(ctx, eventKey)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, fmt.Sprintf("cashfree event %s handled (%s)", event.Type, outcome))
		}

		if outcome == cashfreewebhook.OutcomeIgnored {
			responses.WriteSuccess(w, map[string]bool{"received": true})
			return
		}
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}
