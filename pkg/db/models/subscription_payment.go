package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
)

// SubscriptionPayment tracks a package-subscription checkout. Completion
// activates the package on the user (active_package_id, subscription_end_date).
type SubscriptionPayment struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	PackageID         uuid.UUID           `gorm:"column:package_id;type:uuid;not null"`
	CashfreeOrderID   string              `gorm:"column:cashfree_order_id;not null;index"`
	CashfreePaymentID *string             `gorm:"column:cashfree_payment_id"`
	Status            enums.PaymentStatus `gorm:"column:status;not null;default:'PENDING'"`
	Amount            decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	FailureReason     *string             `gorm:"column:failure_reason"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
