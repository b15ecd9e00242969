package social

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/responses"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/validators"
	socialsvc "github.com/paritbhardwaj019/molle-event-platform-sub003/internal/social"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
)

// MatchesService is the slice of the social service the matches handler needs.
type MatchesService interface {
	Matches(ctx context.Context, callerID uuid.UUID, limit int) ([]socialsvc.MatchSummary, error)
}

// Matches lists the caller's active matches, newest first.
func Matches(svc MatchesService, logg *logger.Logger) http.HandlerFunc {
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

		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		matches, err := svc.Matches(ctx, callerID, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"matches": matches})
	}
}
