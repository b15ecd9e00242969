package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
)

// Swipe records one user's decision against another. Rows are immutable and
// unique per (swiper, swiped) pair; re-swiping the same target is rejected.
type Swipe struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SwiperID  uuid.UUID         `gorm:"column:swiper_id;type:uuid;not null;uniqueIndex:idx_swipes_pair"`
	SwipedID  uuid.UUID         `gorm:"column:swiped_id;type:uuid;not null;uniqueIndex:idx_swipes_pair"`
	Action    enums.SwipeAction `gorm:"column:action;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}
