package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mazadcars/mazad-backend/pkg/enums"
)

// Catalog is a scheduled session that runs its lots strictly one at a time.
type Catalog struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title           string              `gorm:"column:title;not null"`
	Status          enums.CatalogStatus `gorm:"column:status;type:catalog_status;not null;default:'scheduled'"`
	ScheduledAt     time.Time           `gorm:"column:scheduled_at;not null"`
	BidIncrement    int64               `gorm:"column:bid_increment;not null"`
	CurrentLotOrder int                 `gorm:"column:current_lot_order;not null;default:0"`
	Lots            []CatalogLot        `gorm:"foreignKey:CatalogID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
