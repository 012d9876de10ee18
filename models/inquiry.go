package models

import "time"

type Inquiry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HotelID   uint      `gorm:"index;not null" json:"hotel_id"`
	ClientID  string    `gorm:"size:36;index;not null" json:"client_id"`
	Subject   string    `gorm:"size:255" json:"subject"`
	Message   string    `gorm:"type:text" json:"message"`
	Response  *string   `gorm:"type:text" json:"response"`
	Answered  bool      `gorm:"default:false" json:"answered"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
