package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mazadcars/mazad-backend/pkg/enums"
)

// Transaction is a user ledger row. ReferenceID points at the auction or
// catalog lot that produced the row, when one exists.
type Transaction struct {
	ID          uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index"`
	Type        enums.TransactionType   `gorm:"column:type;type:transaction_type;not null"`
	Status      enums.TransactionStatus `gorm:"column:status;type:transaction_status;not null;default:'pending'"`
	Amount      int64                   `gorm:"column:amount;not null"`
	ReferenceID *uuid.UUID              `gorm:"column:reference_id;type:uuid"`
	Description *string                 `gorm:"column:description"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
