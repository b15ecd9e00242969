package social

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/config"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db/models"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	Repo              Repository
	TransactionRunner txRunner
	Swipes            config.SwipeConfig
	Metrics           *metrics.PaymentMetrics
	Logger            *logger.Logger
	Now               func() time.Time
}

// Service is the swipe engine: it gates, records, and accounts for swipe
// decisions, detects mutual likes, and manages blocks.
type Service struct {
	repo     Repository
	txRunner txRunner
	swipes   config.SwipeConfig
	metrics  *metrics.PaymentMetrics
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "social repo required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:     params.Repo,
		txRunner: params.TransactionRunner,
		swipes:   params.Swipes,
		metrics:  params.Metrics,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// SwipeInfo echoes the caller's swipe accounting after a successful swipe.
type SwipeInfo struct {
	SwipesUsed            int  `json:"swipesUsed"`
	DailyLimit            int  `json:"dailyLimit"`
	Remaining             int  `json:"remaining"`
	FreeSwipesRemaining   int  `json:"freeSwipesRemaining"`
	HasActiveSubscription bool `json:"hasActiveSubscription"`
}

// SwipeResult is the outcome of one recorded swipe.
type SwipeResult struct {
	SwipeID   uuid.UUID  `json:"swipeId"`
	IsMatch   bool       `json:"isMatch"`
	MatchID   *uuid.UUID `json:"matchId"`
	SwipeInfo SwipeInfo  `json:"swipeInfo"`
}

// Swipe gates and records one decision by caller against target. The whole
// sequence, reset included, runs in a single transaction so a crash cannot
// leave a swipe row without its quota spend or a match without its
// conversation.
func (s *Service) Swipe(ctx context.Context, callerID, targetID uuid.UUID, action enums.SwipeAction) (*SwipeResult, error) {
	if callerID == uuid.Nil || targetID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user ids required")
	}
	if callerID == targetID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot swipe on yourself")
	}
	if !action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "action must be LIKE or PASS")
	}

	var result *SwipeResult
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := s.now()

		blocked, err := repo.BlockExistsBetween(ctx, callerID, targetID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check blocks")
		}
		if blocked {
			return pkgerrors.New(pkgerrors.CodeValidation, "cannot swipe on this user")
		}

		existing, err := repo.FindSwipe(ctx, callerID, targetID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing swipe")
		}
		if existing != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "already swiped on this user")
		}

		user, err := repo.FindUserByID(ctx, callerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}

		subscribed := user.HasActiveSubscription(now)

		if !subscribed && user.FreeSwipesRemaining <= 0 {
			return pkgerrors.New(pkgerrors.CodeQuotaExhausted, "no free swipes remaining").
				WithDetails(map[string]any{"canPurchaseMore": true})
		}

		// Calendar-day reset: the pool refills from the active package's
		// limit on the first swipe of a new day, stamped before the
		// allowance is evaluated.
		if user.LastSwipeReset == nil || !sameCalendarDay(*user.LastSwipeReset, now) {
			limit := 0
			if user.ActivePackageID != nil {
				pkg, err := repo.FindPackageByID(ctx, *user.ActivePackageID)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
				}
				if pkg != nil {
					limit = pkg.DailySwipeLimit
				}
			}
			user.DailySwipeRemaining = limit
			user.LastSwipeReset = &now
			if err := repo.UpdateUser(ctx, user); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset daily swipes")
			}
		}

		pref, err := repo.FindOrCreatePreference(ctx, callerID, s.swipes.DefaultDailyLimit)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load preference")
		}
		if pref.LastSwipeReset == nil || !sameCalendarDay(*pref.LastSwipeReset, now) {
			pref.SwipesUsedToday = 0
		}

		if user.DailySwipeRemaining <= 0 && user.FreeSwipesRemaining <= 0 {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "daily swipe limit reached").
				WithDetails(map[string]any{
					"canPurchaseMore": true,
					"dailyLimit":      pref.DailySwipeLimit,
					"swipesUsed":      pref.SwipesUsedToday,
				})
		}

		swipe := &models.Swipe{
			SwiperID: callerID,
			SwipedID: targetID,
			Action:   action,
		}
		if err := repo.CreateSwipe(ctx, swipe); err != nil {
			if db.IsUniqueViolation(err, "idx_swipes_pair") {
				return pkgerrors.New(pkgerrors.CodeValidation, "already swiped on this user")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record swipe")
		}

		// Spend exactly one pool unit. The conditional UPDATEs keep
		// concurrent swipes from overdrawing; a lost race falls through to
		// the other pool or aborts the transaction (no swipe persisted).
		dailyRemaining := user.DailySwipeRemaining
		freeRemaining := user.FreeSwipesRemaining
		if subscribed && user.DailySwipeRemaining > 0 {
			spent, err := repo.DecrementDailySwipe(ctx, callerID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "spend daily swipe")
			}
			if spent {
				dailyRemaining--
			} else {
				spent, err = repo.DecrementFreeSwipes(ctx, callerID)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "spend free swipe")
				}
				if !spent {
					return pkgerrors.New(pkgerrors.CodeRateLimit, "daily swipe limit reached").
						WithDetails(map[string]any{"canPurchaseMore": true})
				}
				freeRemaining--
			}
		} else {
			spent, err := repo.DecrementFreeSwipes(ctx, callerID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "spend free swipe")
			}
			if !spent {
				return pkgerrors.New(pkgerrors.CodeQuotaExhausted, "no free swipes remaining").
					WithDetails(map[string]any{"canPurchaseMore": true})
			}
			freeRemaining--
		}

		pref.SwipesUsedToday++
		pref.LastSwipeReset = &now
		if err := repo.UpdatePreference(ctx, pref); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update swipe accounting")
		}

		var matchID *uuid.UUID
		isMatch := false
		if action == enums.SwipeActionLike {
			reverse, err := repo.FindSwipe(ctx, targetID, callerID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check reverse swipe")
			}
			if reverse != nil && reverse.Action == enums.SwipeActionLike {
				match := &models.Match{
					User1ID: callerID,
					User2ID: targetID,
					Status:  enums.MatchStatusActive,
				}
				if err := repo.CreateMatch(ctx, match); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create match")
				}
				conv := &models.SocialConversation{MatchID: match.ID}
				if err := repo.CreateConversation(ctx, conv); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create conversation")
				}
				match.ConversationID = &conv.ID
				if err := repo.UpdateMatch(ctx, match); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach conversation")
				}
				isMatch = true
				matchID = &match.ID
			}
		}

		remaining := freeRemaining
		if subscribed {
			remaining = dailyRemaining + freeRemaining
		}

		result = &SwipeResult{
			SwipeID: swipe.ID,
			IsMatch: isMatch,
			MatchID: matchID,
			SwipeInfo: SwipeInfo{
				SwipesUsed:            pref.SwipesUsedToday,
				DailyLimit:            pref.DailySwipeLimit,
				Remaining:             remaining,
				FreeSwipesRemaining:   freeRemaining,
				HasActiveSubscription: subscribed,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveSwipe(string(action))
	if result.IsMatch {
		s.metrics.ObserveMatch()
		if s.logg != nil {
			s.logg.Info(ctx, "mutual like matched")
		}
	}
	return result, nil
}

// BlockResult reports the effect of a block request.
type BlockResult struct {
	BlockID      uuid.UUID `json:"blockId"`
	MatchBlocked bool      `json:"matchBlocked"`
}

// Block vetoes future swiping between the pair and forces any existing match
// to BLOCKED in the same transaction.
func (s *Service) Block(ctx context.Context, callerID, targetID uuid.UUID, reason *string) (*BlockResult, error) {
	if callerID == uuid.Nil || targetID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user ids required")
	}
	if callerID == targetID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot block yourself")
	}

	var result *BlockResult
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		block := &models.Block{
			BlockerID: callerID,
			BlockedID: targetID,
			Reason:    reason,
		}
		if err := repo.CreateBlock(ctx, block); err != nil {
			if db.IsUniqueViolation(err, "idx_blocks_pair") {
				return pkgerrors.New(pkgerrors.CodeConflict, "user already blocked")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create block")
		}

		matchBlocked := false
		match, err := repo.FindMatchBetween(ctx, callerID, targetID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load match")
		}
		if match != nil && match.Status != enums.MatchStatusBlocked {
			match.Status = enums.MatchStatusBlocked
			if err := repo.UpdateMatch(ctx, match); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "block match")
			}
			matchBlocked = true
		}

		result = &BlockResult{BlockID: block.ID, MatchBlocked: matchBlocked}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MatchSummary is one entry in the caller's match list.
type MatchSummary struct {
	MatchID         uuid.UUID  `json:"matchId"`
	OtherUserID     uuid.UUID  `json:"otherUserId"`
	ConversationID  *uuid.UUID `json:"conversationId"`
	MatchedViaEvent *uuid.UUID `json:"matchedViaEvent"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// Matches lists the caller's ACTIVE matches, newest first.
func (s *Service) Matches(ctx context.Context, callerID uuid.UUID, limit int) ([]MatchSummary, error) {
	if callerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	matches, err := s.repo.ListActiveMatchesForUser(ctx, callerID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list matches")
	}

	summaries := make([]MatchSummary, 0, len(matches))
	for _, match := range matches {
		other := match.User2ID
		if other == callerID {
			other = match.User1ID
		}
		summaries = append(summaries, MatchSummary{
			MatchID:         match.ID,
			OtherUserID:     other,
			ConversationID:  match.ConversationID,
			MatchedViaEvent: match.MatchedViaEvent,
			CreatedAt:       match.CreatedAt,
		})
	}
	return summaries, nil
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
