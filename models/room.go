package models

import "time"

const (
	RoomStatusOpen        = "open"
	RoomStatusClosed      = "closed"
	RoomStatusMaintenance = "maintenance"
)

type Room struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HotelID     uint      `gorm:"index;not null" json:"hotel_id"`
	Name        string    `gorm:"size:150" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Capacity    int       `gorm:"not null;default:1" json:"capacity"`
	BasePrice   float64   `gorm:"not null;default:0" json:"base_price"`
	Status      string    `gorm:"size:20;index;default:open" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
