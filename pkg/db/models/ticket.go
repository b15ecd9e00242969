package models

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a pre-generated placeholder created when a booking is placed,
// before the payment settles. Failed payments delete these rows.
type Ticket struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BookingID uuid.UUID `gorm:"column:booking_id;type:uuid;not null;index"`
	Code      string    `gorm:"column:code;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
