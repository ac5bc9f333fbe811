package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mazadcars/mazad-backend/pkg/enums"
)

// CatalogLot is one vehicle's turn within a catalog. EndTime is only set
// while the lot is active. Partial unique index on vehicle_id (status in
// pending, active) enforces vehicle exclusivity across sale contexts.
type CatalogLot struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CatalogID       uuid.UUID       `gorm:"column:catalog_id;type:uuid;not null;uniqueIndex:ux_catalog_lots_catalog_order"`
	VehicleID       uuid.UUID       `gorm:"column:vehicle_id;type:uuid;not null"`
	LotOrder        int             `gorm:"column:lot_order;not null;uniqueIndex:ux_catalog_lots_catalog_order"`
	Status          enums.LotStatus `gorm:"column:status;type:lot_status;not null;default:'pending'"`
	StartingPrice   int64           `gorm:"column:starting_price;not null"`
	CurrentBid      int64           `gorm:"column:current_bid;not null;default:0"`
	HighestBidderID *uuid.UUID      `gorm:"column:highest_bidder_id;type:uuid"`
	EndTime         *time.Time      `gorm:"column:end_time"`
	Vehicle         *Vehicle        `gorm:"foreignKey:VehicleID"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
