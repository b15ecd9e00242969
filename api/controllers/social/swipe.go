package social

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/middleware"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/responses"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/validators"
	socialsvc "github.com/paritbhardwaj019/molle-event-platform-sub003/internal/social"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
)

// SwipeService is the slice of the social service the swipe handler needs.
type SwipeService interface {
	Swipe(ctx context.Context, callerID, targetID uuid.UUID, action enums.SwipeAction) (*socialsvc.SwipeResult, error)
}

type swipePayload struct {
	SwipedUserID string `json:"swipedUserId" validate:"required,uuid"`
	Action       string `json:"action"       validate:"required,oneof=LIKE PASS"`
}

// Swipe records one LIKE/PASS decision for the authenticated caller.
func Swipe(svc SwipeService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "social service unavailable"))
			return
		}

		callerID, err := callerFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload swipePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		targetID, err := uuid.Parse(payload.SwipedUserID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid swiped user id"))
			return
		}

		action, err := enums.ParseSwipeAction(payload.Action)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid action"))
			return
		}

		result, err := svc.Swipe(ctx, callerID, targetID, action)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func callerFromContext(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	callerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return callerID, nil
}
