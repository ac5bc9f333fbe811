package models

import (
	"time"

	"github.com/google/uuid"
)

// AuctionEntry records a paid entry fee. A unique (auction_id, user_id)
// index makes entry payment idempotent.
type AuctionEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AuctionID uuid.UUID `gorm:"column:auction_id;type:uuid;not null;uniqueIndex:ux_auction_entries_auction_user"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_auction_entries_auction_user"`
	FeePaid   int64     `gorm:"column:fee_paid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
