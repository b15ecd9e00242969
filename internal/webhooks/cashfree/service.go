package cashfreewebhook

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/internal/bookings"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/internal/purchases"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/internal/subscriptions"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/metrics"
)

// Outcome tells the ingress controller how the event was handled.
type Outcome string

const (
	OutcomeCompleted  Outcome = "completed"
	OutcomeRolledBack Outcome = "rolled_back"
	OutcomeUnmatched  Outcome = "unmatched"
	OutcomeIgnored    Outcome = "ignored"
)

type subscriptionVerifier interface {
	CompletePending(ctx context.Context, orderID, paymentID string) (bool, error)
}

type bookingVerifier interface {
	CompletePending(ctx context.Context, orderID, paymentID string, bookingID uuid.UUID) (bool, error)
}

type purchaseCompleter interface {
	CompleteFromWebhook(ctx context.Context, orderID, paymentID string) (bool, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	SubscriptionVerifier subscriptionVerifier
	BookingVerifier      bookingVerifier
	PurchaseCompleter    purchaseCompleter
	SubscriptionRepo     subscriptions.Repository
	BookingRepo          bookings.Repository
	PurchaseRepo         purchases.Repository
	TransactionRunner    txRunner
	Metrics              *metrics.PaymentMetrics
	Logger               *logger.Logger
}

// Service reconciles gateway events against the four payment-bearing
// domains and rolls back speculative state on failure events.
type Service struct {
	subVerifier subscriptionVerifier
	bookVerify  bookingVerifier
	purchases   purchaseCompleter
	subRepo     subscriptions.Repository
	bookingRepo bookings.Repository
	purchRepo   purchases.Repository
	txRunner    txRunner
	metrics     *metrics.PaymentMetrics
	logg        *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.SubscriptionVerifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "subscription verifier required")
	}
	if params.BookingVerifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "booking verifier required")
	}
	if params.PurchaseCompleter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "purchase completer required")
	}
	if params.SubscriptionRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "subscription repo required")
	}
	if params.BookingRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "booking repo required")
	}
	if params.PurchaseRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "purchase repo required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &Service{
		subVerifier: params.SubscriptionVerifier,
		bookVerify:  params.BookingVerifier,
		purchases:   params.PurchaseCompleter,
		subRepo:     params.SubscriptionRepo,
		bookingRepo: params.BookingRepo,
		purchRepo:   params.PurchaseRepo,
		txRunner:    params.TransactionRunner,
		metrics:     params.Metrics,
		logg:        params.Logger,
	}, nil
}

// HandleEvent dispatches one verified, deduped gateway event.
func (s *Service) HandleEvent(ctx context.Context, event *Event) (Outcome, error) {
	if event == nil {
		return OutcomeIgnored, pkgerrors.New(pkgerrors.CodeValidation, "event required")
	}

	var outcome Outcome
	var err error
	switch event.Type {
	case EventPaymentSuccess:
		outcome, err = s.reconcileSuccess(ctx, event)
	case EventPaymentFailed, EventPaymentUserDropped,
		EventTransferFailed, EventTransferRejected, EventTransferReversed:
		outcome, err = s.rollbackFailure(ctx, event)
	default:
		outcome = OutcomeIgnored
	}

	if err != nil {
		s.metrics.ObserveWebhookEvent(event.Type, "error")
		return outcome, err
	}
	s.metrics.ObserveWebhookEvent(event.Type, string(outcome))
	return outcome, nil
}

// reconcileSuccess resolves the order id against its possible owners, in
// priority order. Every branch is PENDING-gated, so redelivery finds no
// candidate and falls through to the acknowledged no-op at the bottom.
func (s *Service) reconcileSuccess(ctx context.Context, event *Event) (Outcome, error) {
	orderID := event.OrderID()
	if orderID == "" {
		return OutcomeUnmatched, nil
	}
	paymentID := event.PaymentID()
	tags := event.Data.Order.OrderTags

	logCtx := ctx
	if s.logg != nil {
		logCtx = s.logg.WithOrderID(ctx, orderID)
	}

	// 1. Tagged subscription purchase.
	if tags["pkgId"] != "" {
		applied, err := s.subVerifier.CompletePending(ctx, orderID, paymentID)
		if err != nil {
			return OutcomeUnmatched, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "subscription verification failed")
		}
		if applied {
			s.logProcessed(logCtx, "subscription payment reconciled")
			return OutcomeCompleted, nil
		}
	}

	// 2/3. Tagged booking payment; the verifier's PENDING lookup doubles as
	// the structural-match check, covering the untagged fallback too.
	if bid := tags["bid"]; bid != "" {
		bookingID, parseErr := uuid.Parse(bid)
		if parseErr == nil {
			applied, err := s.bookVerify.CompletePending(ctx, orderID, paymentID, bookingID)
			if err != nil {
				return OutcomeUnmatched, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "booking verification failed")
			}
			if applied {
				s.logProcessed(logCtx, "booking payment reconciled")
				return OutcomeCompleted, nil
			}
		}
	}

	// 4. Swipe-pack purchase.
	applied, err := s.purchases.CompleteFromWebhook(ctx, orderID, paymentID)
	if err != nil {
		return OutcomeUnmatched, err
	}
	if applied {
		s.logProcessed(logCtx, "swipe purchase reconciled")
		return OutcomeCompleted, nil
	}

	// 5. Untagged subscription fallback.
	applied, err = s.subVerifier.CompletePending(ctx, orderID, paymentID)
	if err != nil {
		return OutcomeUnmatched, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "subscription verification failed")
	}
	if applied {
		s.logProcessed(logCtx, "subscription payment reconciled (untagged)")
		return OutcomeCompleted, nil
	}

	// 6. Unknown order: acknowledged, not an error.
	s.logProcessed(logCtx, "no pending record for order, acknowledged")
	return OutcomeUnmatched, nil
}

// rollbackFailure marks every PENDING row for the order FAILED and deletes
// the speculative tickets of affected bookings. Safe to call for any id;
// nothing matching is a silent no-op.
func (s *Service) rollbackFailure(ctx context.Context, event *Event) (Outcome, error) {
	orderID := event.OrderID()
	if orderID == "" {
		return OutcomeRolledBack, nil
	}
	reason := event.FailureReason()

	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		var errs error

		subRepo := s.subRepo.WithTx(tx)
		if _, err := subRepo.MarkPendingFailedByOrderID(ctx, orderID, reason); err != nil {
			errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fail subscription payments"))
		}

		bookingRepo := s.bookingRepo.WithTx(tx)
		payments, err := bookingRepo.FindPendingPaymentsByOrderID(ctx, orderID)
		if err != nil {
			errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pending payments"))
		}
		for i := range payments {
			payment := &payments[i]
			payment.Status = enums.PaymentStatusFailed
			payment.FailureReason = &reason
			if err := bookingRepo.UpdatePayment(ctx, payment); err != nil {
				errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fail booking payment"))
				continue
			}
			if _, err := bookingRepo.DeleteTicketsByBookingID(ctx, payment.BookingID); err != nil {
				errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete speculative tickets"))
			}
		}

		purchRepo := s.purchRepo.WithTx(tx)
		if _, err := purchRepo.MarkPendingFailedByOrderID(ctx, orderID, reason); err != nil {
			errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fail swipe purchases"))
		}

		return errs
	})
	if err != nil {
		return OutcomeRolledBack, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, orderID)
		s.logg.Info(logCtx, "payment failure rolled back")
	}
	return OutcomeRolledBack, nil
}

func (s *Service) logProcessed(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Info(ctx, msg)
	}
}
