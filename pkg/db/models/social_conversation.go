package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialConversation is the message thread owned by a match.
type SocialConversation struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MatchID   uuid.UUID `gorm:"column:match_id;type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
