package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/mazadcars/mazad-backend/pkg/db/types"
)

// Vehicle is the sellable unit listed through auctions and catalog lots.
type Vehicle struct {
	ID              uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Make            string                  `gorm:"column:make;not null"`
	Model           string                  `gorm:"column:model;not null"`
	Year            int                     `gorm:"column:year;not null"`
	Mileage         int64                   `gorm:"column:mileage;not null;default:0"`
	DamageType      *string                 `gorm:"column:damage_type"`
	FinesCleared    bool                    `gorm:"column:fines_cleared;not null;default:false"`
	ConditionReport dbtypes.ConditionReport `gorm:"column:condition_report;type:jsonb;not null"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
