package subscriptions

import (
	"context"
	"time"

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
	Now               func() time.Time
}

// Service activates package subscriptions when the gateway reports success.
type Service struct {
	repo     Repository
	txRunner txRunner
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "subscriptions repo required")
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
		logg:     params.Logger,
		now:      now,
	}, nil
}

// CompletePending confirms the PENDING subscription payment for the given
// order and activates the package on the buyer: active package, end date
// (now + duration), and a refilled daily swipe pool. Redelivery finds no
// PENDING row and reports applied=false.
func (s *Service) CompletePending(ctx context.Context, orderID, paymentID string) (bool, error) {
	if orderID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	applied := false
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		payment, err := repo.FindPendingByOrderID(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pending subscription payment")
		}
		if payment == nil {
			return nil
		}

		pkg, err := repo.FindPackageByID(ctx, payment.PackageID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
		}
		if pkg == nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "subscription package missing")
		}

		user, err := repo.FindUserByID(ctx, payment.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}
		if user == nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "subscription buyer missing")
		}

		payment.Status = enums.PaymentStatusCompleted
		if paymentID != "" {
			payment.CashfreePaymentID = &paymentID
		}
		if err := repo.UpdateSubscriptionPayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark subscription payment completed")
		}

		now := s.now()
		endDate := now.AddDate(0, 0, pkg.DurationDays)
		user.ActivePackageID = &pkg.ID
		user.SubscriptionEndDate = &endDate
		user.DailySwipeRemaining = pkg.DailySwipeLimit
		user.LastSwipeReset = &now
		if err := repo.UpdateUser(ctx, user); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate package on user")
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if applied && s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, orderID)
		s.logg.Info(logCtx, "subscription payment completed")
	}
	return applied, nil
}
