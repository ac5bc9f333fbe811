package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a marketplace account. The bidding tier is derived from
// DepositBalance at read time and never stored.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FullName       string    `gorm:"column:full_name;not null"`
	PhoneNumber    string    `gorm:"column:phone_number;not null;uniqueIndex"`
	DepositBalance int64     `gorm:"column:deposit_balance;not null;default:0"`
	IsOperator     bool      `gorm:"column:is_operator;not null;default:false"`
	WhatsappAlerts bool      `gorm:"column:whatsapp_alerts;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
