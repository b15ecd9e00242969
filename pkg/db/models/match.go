package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
)

// Match is created when both directions of a swipe pair are LIKE. It owns
// exactly one SocialConversation; a block between the pair forces BLOCKED.
type Match struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	User1ID         uuid.UUID         `gorm:"column:user1_id;type:uuid;not null;index"`
	User2ID         uuid.UUID         `gorm:"column:user2_id;type:uuid;not null;index"`
	Status          enums.MatchStatus `gorm:"column:status;not null;default:'ACTIVE'"`
	ConversationID  *uuid.UUID        `gorm:"column:conversation_id;type:uuid"`
	MatchedViaEvent *uuid.UUID        `gorm:"column:matched_via_event;type:uuid"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
