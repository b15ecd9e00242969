package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db/models"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubSubscriptionRepo struct {
	payments []*models.SubscriptionPayment
	packages map[uuid.UUID]*models.Package
	users    map[uuid.UUID]*models.User
}

func newStubSubscriptionRepo() *stubSubscriptionRepo {
	return &stubSubscriptionRepo{
		packages: map[uuid.UUID]*models.Package{},
		users:    map[uuid.UUID]*models.User{},
	}
}

func (r *stubSubscriptionRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubSubscriptionRepo) FindPendingByOrderID(ctx context.Context, orderID string) (*models.SubscriptionPayment, error) {
	for _, payment := range r.payments {
		if payment.CashfreeOrderID == orderID && payment.Status == enums.PaymentStatusPending {
			return payment, nil
		}
	}
	return nil, nil
}

func (r *stubSubscriptionRepo) UpdateSubscriptionPayment(ctx context.Context, payment *models.SubscriptionPayment) error {
	for i, existing := range r.payments {
		if existing.ID == payment.ID {
			r.payments[i] = payment
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubSubscriptionRepo) MarkPendingFailedByOrderID(ctx context.Context, orderID, reason string) (int64, error) {
	var affected int64
	for _, payment := range r.payments {
		if payment.CashfreeOrderID == orderID && payment.Status == enums.PaymentStatusPending {
			payment.Status = enums.PaymentStatusFailed
			payment.FailureReason = &reason
			affected++
		}
	}
	return affected, nil
}

func (r *stubSubscriptionRepo) FindPackageByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	return r.packages[id], nil
}

func (r *stubSubscriptionRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.users[id], nil
}

func (r *stubSubscriptionRepo) UpdateUser(ctx context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func newSubscriptionService(t *testing.T, repo Repository, now time.Time) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:              repo,
		TransactionRunner: stubTxRunner{},
		Now:               func() time.Time { return now },
	})
	require.NoError(t, err)
	return svc
}

func TestCompletePendingActivatesPackage(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubSubscriptionRepo()

	userID := uuid.New()
	pkgID := uuid.New()
	repo.packages[pkgID] = &models.Package{ID: pkgID, DailySwipeLimit: 50, DurationDays: 30}
	repo.users[userID] = &models.User{ID: userID}
	repo.payments = append(repo.payments, &models.SubscriptionPayment{
		ID:              uuid.New(),
		UserID:          userID,
		PackageID:       pkgID,
		CashfreeOrderID: "order_sub",
		Status:          enums.PaymentStatusPending,
	})

	svc := newSubscriptionService(t, repo, now)
	applied, err := svc.CompletePending(context.Background(), "order_sub", "pay_1")

	require.NoError(t, err)
	assert.True(t, applied)

	payment := repo.payments[0]
	assert.Equal(t, enums.PaymentStatusCompleted, payment.Status)
	require.NotNil(t, payment.CashfreePaymentID)
	assert.Equal(t, "pay_1", *payment.CashfreePaymentID)

	user := repo.users[userID]
	require.NotNil(t, user.ActivePackageID)
	assert.Equal(t, pkgID, *user.ActivePackageID)
	require.NotNil(t, user.SubscriptionEndDate)
	assert.Equal(t, now.AddDate(0, 0, 30), *user.SubscriptionEndDate)
	assert.Equal(t, 50, user.DailySwipeRemaining)
	require.NotNil(t, user.LastSwipeReset)
	assert.Equal(t, now, *user.LastSwipeReset)
}

func TestCompletePendingRedeliveryIsNoOp(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubSubscriptionRepo()
	repo.payments = append(repo.payments, &models.SubscriptionPayment{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		PackageID:       uuid.New(),
		CashfreeOrderID: "order_sub",
		Status:          enums.PaymentStatusCompleted,
	})

	svc := newSubscriptionService(t, repo, now)
	applied, err := svc.CompletePending(context.Background(), "order_sub", "pay_1")

	require.NoError(t, err)
	assert.False(t, applied)
}

func TestCompletePendingMissingPackage(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubSubscriptionRepo()
	repo.payments = append(repo.payments, &models.SubscriptionPayment{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		PackageID:       uuid.New(),
		CashfreeOrderID: "order_sub",
		Status:          enums.PaymentStatusPending,
	})

	svc := newSubscriptionService(t, repo, now)
	_, err := svc.CompletePending(context.Background(), "order_sub", "pay_1")

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestCompletePendingRequiresOrderID(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	svc := newSubscriptionService(t, newStubSubscriptionRepo(), now)

	_, err := svc.CompletePending(context.Background(), "", "pay_1")

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
