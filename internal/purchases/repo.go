package purchases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db/models"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
)

// Repository exposes swipe-purchase and preference persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSwipePurchase(ctx context.Context, purchase *models.SwipePurchase) error
	FindPendingByOrderID(ctx context.Context, orderID string) (*models.SwipePurchase, error)
	UpdateSwipePurchase(ctx context.Context, purchase *models.SwipePurchase) error
	MarkPendingFailedByOrderID(ctx context.Context, orderID, reason string) (int64, error)
	FindOrCreatePreference(ctx context.Context, userID uuid.UUID, defaultDailyLimit int) (*models.UserPreference, error)
	UpdatePreference(ctx context.Context, pref *models.UserPreference) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a purchases repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateSwipePurchase(ctx context.Context, purchase *models.SwipePurchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *repository) FindPendingByOrderID(ctx context.Context, orderID string) (*models.SwipePurchase, error) {
	var purchase models.SwipePurchase
	err := r.db.WithContext(ctx).
		Where("cashfree_order_id = ? AND payment_status = ?", orderID, enums.PaymentStatusPending).
		First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *repository) UpdateSwipePurchase(ctx context.Context, purchase *models.SwipePurchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

func (r *repository) MarkPendingFailedByOrderID(ctx context.Context, orderID, reason string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SwipePurchase{}).
		Where("cashfree_order_id = ? AND payment_status = ?", orderID, enums.PaymentStatusPending).
		Updates(map[string]any{
			"payment_status": enums.PaymentStatusFailed,
			"failure_reason": reason,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) FindOrCreatePreference(ctx context.Context, userID uuid.UUID, defaultDailyLimit int) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err == nil {
		return &pref, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pref = models.UserPreference{
		UserID:          userID,
		ConnectionTypes: pq.StringArray{string(enums.ConnectionTypeFriends)},
		DailySwipeLimit: defaultDailyLimit,
	}
	if err := r.db.WithContext(ctx).Create(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *repository) UpdatePreference(ctx context.Context, pref *models.UserPreference) error {
	return r.db.WithContext(ctx).Save(pref).Error
}
