package bookings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	Repo              Repository
	TransactionRunner txRunner
	Logger            *logger.Logger
}

// Service confirms booking payments when the gateway reports success.
type Service struct {
	repo     Repository
	txRunner txRunner
	logg     *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "bookings repo required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &Service{
		repo:     params.Repo,
		txRunner: params.TransactionRunner,
		logg:     params.Logger,
	}, nil
}

// CompletePending confirms the PENDING payment for the given booking and
// order. The PENDING filter carries the idempotency: a redelivered webhook
// finds no row and reports applied=false without touching anything.
func (s *Service) CompletePending(ctx context.Context, orderID, paymentID string, bookingID uuid.UUID) (bool, error) {
	if orderID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if bookingID == uuid.Nil {
		return false, nil
	}

	applied := false
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		payment, err := repo.FindPendingPaymentForBooking(ctx, bookingID, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pending payment")
		}
		if payment == nil {
			return nil
		}

		payment.Status = enums.PaymentStatusCompleted
		if paymentID != "" {
			payment.CashfreePaymentID = &paymentID
		}
		if err := repo.UpdatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark payment completed")
		}

		if err := repo.UpdateBookingStatus(ctx, payment.BookingID, enums.BookingStatusConfirmed); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm booking")
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if applied && s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, orderID)
		s.logg.Info(logCtx, "booking payment completed")
	}
	return applied, nil
}
