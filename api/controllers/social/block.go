package social

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/responses"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/validators"
	socialsvc "github.com/paritbhardwaj019/molle-event-platform-sub003/internal/social"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
)

// BlockService is the slice of the social service the block handler needs.
type BlockService interface {
	Block(ctx context.Context, callerID, targetID uuid.UUID, reason *string) (*socialsvc.BlockResult, error)
}

type blockPayload struct {
	BlockedUserID string `json:"blockedUserId" validate:"required,uuid"`
	Reason        string `json:"reason"        validate:"omitempty,max=500"`
}

// Block vetoes swiping with the target and freezes any existing match.
func Block(svc BlockService, logg *logger.Logger) http.HandlerFunc {
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

		var payload blockPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		targetID, err := uuid.Parse(payload.BlockedUserID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid blocked user id"))
			return
		}

		var reason *string
		if trimmed := strings.TrimSpace(payload.Reason); trimmed != "" {
			reason = &trimmed
		}

		result, err := svc.Block(ctx, callerID, targetID, reason)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
