package models

import (
	"time"

	"github.com/google/uuid"
)

// User carries the swipe-accounting fields the quota engine mutates.
// DailySwipeRemaining is refilled from the active package once per calendar
// day; FreeSwipesRemaining is the allotment users spend without a subscription.
type User struct {
	ID                  uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email               string     `gorm:"column:email;not null;uniqueIndex"`
	Name                string     `gorm:"column:name;not null"`
	DailySwipeRemaining int        `gorm:"column:daily_swipe_remaining;not null;default:0"`
	FreeSwipesRemaining int        `gorm:"column:free_swipes_remaining;not null;default:3"`
	LastSwipeReset      *time.Time `gorm:"column:last_swipe_reset"`
	SubscriptionEndDate *time.Time `gorm:"column:subscription_end_date"`
	ActivePackageID     *uuid.UUID `gorm:"column:active_package_id;type:uuid"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// HasActiveSubscription reports whether the user's subscription covers now.
func (u *User) HasActiveSubscription(now time.Time) bool {
	return u.SubscriptionEndDate != nil && u.SubscriptionEndDate.After(now)
}
