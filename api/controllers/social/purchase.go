package social

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/responses"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/validators"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/internal/purchases"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
)

// PurchaseService is the slice of the purchases service the handlers need.
type PurchaseService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, count int) (*purchases.PurchaseOrder, error)
	VerifyClientPayment(ctx context.Context, userID uuid.UUID, orderID, paymentID, signature string) error
}

type createPurchasePayload struct {
	Count int `json:"count" validate:"required,min=1,max=1000"`
}

type verifyPurchasePayload struct {
	OrderID   string `json:"orderId"   validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// PurchaseSwipes creates a gateway order for a swipe pack.
func PurchaseSwipes(svc PurchaseService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase service unavailable"))
			return
		}

		callerID, err := callerFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createPurchasePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.CreateOrder(ctx, callerID, payload.Count)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// VerifyPurchase applies a client-reported payment after checking its
// signature. The grant is identical to the webhook path and shares its
// PENDING guard.
func VerifyPurchase(svc PurchaseService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase service unavailable"))
			return
		}

		callerID, err := callerFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload verifyPurchasePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.VerifyClientPayment(ctx, callerID, payload.OrderID, payload.PaymentID, payload.Signature); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}
