package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Package is a purchasable subscription tier granting a daily swipe limit.
type Package struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string          `gorm:"column:name;not null"`
	DailySwipeLimit int             `gorm:"column:daily_swipe_limit;not null;default:0"`
	DurationDays    int             `gorm:"column:duration_days;not null;default:30"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
