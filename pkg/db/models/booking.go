package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
)

// Booking is a user's reservation against an event. Tickets are created
// speculatively at booking time and removed if the payment later fails.
type Booking struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventID   uuid.UUID           `gorm:"column:event_id;type:uuid;not null"`
	UserID    uuid.UUID           `gorm:"column:user_id;type:uuid;not null"`
	Status    enums.BookingStatus `gorm:"column:status;not null;default:'PENDING'"`
	Payment   *Payment            `gorm:"foreignKey:BookingID"`
	Tickets   []Ticket            `gorm:"foreignKey:BookingID"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
