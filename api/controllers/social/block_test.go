package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/api/middleware"
	socialsvc "github.com/paritbhardwaj019/molle-event-platform-sub003/internal/social"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
)

type fakeBlockService struct {
	result     *socialsvc.BlockResult
	err        error
	lastReason *string
	calls      int
}

func (s *fakeBlockService) Block(ctx context.Context, callerID, targetID uuid.UUID, reason *string) (*socialsvc.BlockResult, error) {
	s.calls++
	s.lastReason = reason
	return s.result, s.err
}

type fakeMatchesService struct {
	matches   []socialsvc.MatchSummary
	lastLimit int
}

func (s *fakeMatchesService) Matches(ctx context.Context, callerID uuid.UUID, limit int) ([]socialsvc.MatchSummary, error) {
	s.lastLimit = limit
	return s.matches, nil
}

func TestBlockHandlerReturns201(t *testing.T) {
	svc := &fakeBlockService{result: &socialsvc.BlockResult{BlockID: uuid.New(), MatchBlocked: true}}
	handler := Block(svc, nil)

	rec := httptest.NewRecorder()
	handler(rec, authedRequest(t, uuid.New(), map[string]string{
		"blockedUserId": uuid.NewString(),
		"reason":        "harassment",
	}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, svc.calls)
	if assert.NotNil(t, svc.lastReason) {
		assert.Equal(t, "harassment", *svc.lastReason)
	}
	assert.Contains(t, rec.Body.String(), `"matchBlocked":true`)
}

func TestBlockHandlerOmitsEmptyReason(t *testing.T) {
	svc := &fakeBlockService{result: &socialsvc.BlockResult{BlockID: uuid.New()}}
	handler := Block(svc, nil)

	rec := httptest.NewRecorder()
	handler(rec, authedRequest(t, uuid.New(), map[string]string{
		"blockedUserId": uuid.NewString(),
		"reason":        "  ",
	}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, svc.lastReason)
}

func TestBlockHandlerMapsConflict(t *testing.T) {
	svc := &fakeBlockService{err: pkgerrors.New(pkgerrors.CodeConflict, "user already blocked")}
	handler := Block(svc, nil)

	rec := httptest.NewRecorder()
	handler(rec, authedRequest(t, uuid.New(), map[string]string{
		"blockedUserId": uuid.NewString(),
	}))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMatchesHandlerDefaultsLimit(t *testing.T) {
	svc := &fakeMatchesService{matches: []socialsvc.MatchSummary{{
		MatchID:     uuid.New(),
		OtherUserID: uuid.New(),
		CreatedAt:   time.Now(),
	}}}
	handler := Matches(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/social/matches", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, svc.lastLimit)
	assert.Contains(t, rec.Body.String(), `"matches"`)
}

func TestMatchesHandlerRejectsOutOfRangeLimit(t *testing.T) {
	svc := &fakeMatchesService{}
	handler := Matches(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/social/matches?limit=500", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
