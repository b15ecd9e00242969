package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
)

// SwipePurchase is a one-off swipe-pack checkout. On completion the buyer's
// daily swipe limit is set (not incremented) to base + SwipeCount.
type SwipePurchase struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	SwipeCount        int                 `gorm:"column:swipe_count;not null"`
	Amount            decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	CashfreeOrderID   string              `gorm:"column:cashfree_order_id;not null;index"`
	CashfreePaymentID *string             `gorm:"column:cashfree_payment_id"`
	PaymentStatus     enums.PaymentStatus `gorm:"column:payment_status;not null;default:'PENDING'"`
	FailureReason     *string             `gorm:"column:failure_reason"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
