package models

import (
	"time"

	"github.com/google/uuid"
)

// Block vetoes swiping in both directions between two users and forces any
// existing match between them to BLOCKED.
type Block struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BlockerID uuid.UUID `gorm:"column:blocker_id;type:uuid;not null;uniqueIndex:idx_blocks_pair"`
	BlockedID uuid.UUID `gorm:"column:blocked_id;type:uuid;not null;uniqueIndex:idx_blocks_pair"`
	Reason    *string   `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
