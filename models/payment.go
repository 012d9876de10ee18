package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"

	ProviderMock = "mock"
)

type Payment struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ReservationID uint           `gorm:"index;not null" json:"reservation_id"`
	ClientID      string         `gorm:"size:36;index;not null" json:"client_id"`
	Provider      string         `gorm:"size:40;not null" json:"provider"`
	ProviderRef   string         `gorm:"size:36;index" json:"provider_ref"`
	Amount        float64        `gorm:"not null;default:0" json:"amount"`
	Status        string         `gorm:"size:20;index;not null" json:"status"`
	Payload       datatypes.JSON `json:"payload,omitempty"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
