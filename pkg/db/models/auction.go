package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mazadcars/mazad-backend/pkg/enums"
)

// Auction is a standalone timed sale of a single vehicle.
//
// CurrentHighestBid is 0 until the first accepted bid; the effective price
// floor is StartingPrice until then. A partial unique index on vehicle_id
// (status in draft, active) enforces vehicle exclusivity at the DB level.
type Auction struct {
	ID                uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VehicleID         uuid.UUID           `gorm:"column:vehicle_id;type:uuid;not null"`
	Status            enums.AuctionStatus `gorm:"column:status;type:auction_status;not null;default:'draft'"`
	StartTime         time.Time           `gorm:"column:start_time;not null"`
	EndTime           time.Time           `gorm:"column:end_time;not null"`
	StartingPrice     int64               `gorm:"column:starting_price;not null"`
	CurrentHighestBid int64               `gorm:"column:current_highest_bid;not null;default:0"`
	HighestBidderID   *uuid.UUID          `gorm:"column:highest_bidder_id;type:uuid"`
	ReservePrice      *int64              `gorm:"column:reserve_price"`
	EntryFee          int64               `gorm:"column:entry_fee;not null;default:0"`
	Vehicle           *Vehicle            `gorm:"foreignKey:VehicleID"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
