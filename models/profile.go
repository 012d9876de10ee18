package models

import "time"

const (
	RoleClient  = "client"
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

type Profile struct {
	UserID    string    `gorm:"primaryKey;size:36" json:"user_id"`
	Role      string    `gorm:"size:20;not null;default:client;index" json:"role"`
	HotelID   *uint     `gorm:"index" json:"hotel_id"`
	FullName  *string   `gorm:"size:255" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Profile) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
