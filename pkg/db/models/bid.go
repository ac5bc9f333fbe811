package models

import (
	"time"

	"github.com/google/uuid"
)

// Bid is an append-only record of an accepted auction bid.
type Bid struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AuctionID uuid.UUID `gorm:"column:auction_id;type:uuid;not null;index"`
	BidderID  uuid.UUID `gorm:"column:bidder_id;type:uuid;not null"`
	Amount    int64     `gorm:"column:amount;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
