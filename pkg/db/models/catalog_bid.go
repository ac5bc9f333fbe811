package models

import (
	"time"

	"github.com/google/uuid"
)

// CatalogBid is an append-only record of an accepted lot bid.
type CatalogBid struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LotID     uuid.UUID `gorm:"column:lot_id;type:uuid;not null;index"`
	BidderID  uuid.UUID `gorm:"column:bidder_id;type:uuid;not null"`
	Amount    int64     `gorm:"column:amount;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
