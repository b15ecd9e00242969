package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserPreference holds per-user discovery settings. Rows are created lazily
// on first access with defaults; DailySwipeLimit is overwritten (not
// incremented) when a swipe-pack purchase completes.
type UserPreference struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	ConnectionTypes pq.StringArray `gorm:"column:connection_types;type:text[]"`
	DailySwipeLimit int            `gorm:"column:daily_swipe_limit;not null;default:20"`
	SwipesUsedToday int            `gorm:"column:swipes_used_today;not null;default:0"`
	LastSwipeReset  *time.Time     `gorm:"column:last_swipe_reset"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
