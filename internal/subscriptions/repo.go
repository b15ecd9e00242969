package subscriptions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db/models"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
)

// Repository exposes the subscription-payment persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindPendingByOrderID(ctx context.Context, orderID string) (*models.SubscriptionPayment, error)
	UpdateSubscriptionPayment(ctx context.Context, payment *models.SubscriptionPayment) error
	MarkPendingFailedByOrderID(ctx context.Context, orderID, reason string) (int64, error)
	FindPackageByID(ctx context.Context, id uuid.UUID) (*models.Package, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a subscriptions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindPendingByOrderID(ctx context.Context, orderID string) (*models.SubscriptionPayment, error) {
	var payment models.SubscriptionPayment
	err := r.db.WithContext(ctx).
		Where("cashfree_order_id = ? AND status = ?", orderID, enums.PaymentStatusPending).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repository) UpdateSubscriptionPayment(ctx context.Context, payment *models.SubscriptionPayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *repository) MarkPendingFailedByOrderID(ctx context.Context, orderID, reason string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SubscriptionPayment{}).
		Where("cashfree_order_id = ? AND status = ?", orderID, enums.PaymentStatusPending).
		Updates(map[string]any{
			"status":         enums.PaymentStatusFailed,
			"failure_reason": reason,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) FindPackageByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpdateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
