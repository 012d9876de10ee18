package models

import (
	"fmt"
	"time"
)

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCheckedIn = "checked_in"
	ReservationCancelled = "cancelled"
)

// ActiveReservationStatuses block a room for their date range.
var ActiveReservationStatuses = []string{ReservationPending, ReservationConfirmed, ReservationCheckedIn}

// Reservation dates are UTC midnights; the stay covers [CheckIn, CheckOut).
type Reservation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HotelID     uint      `gorm:"index;not null" json:"hotel_id"`
	RoomID      uint      `gorm:"index;not null" json:"room_id"`
	ClientID    string    `gorm:"size:36;index;not null" json:"client_id"`
	CheckIn     time.Time `gorm:"index;not null" json:"check_in"`
	CheckOut    time.Time `gorm:"index;not null" json:"check_out"`
	Guests      int       `gorm:"not null;default:1" json:"guests"`
	TotalAmount float64   `gorm:"not null;default:0" json:"total_amount"`
	Status      string    `gorm:"size:20;index;not null" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

func (r Reservation) BookingCode() string {
	return BookingCode(r.ID, r.CheckIn)
}

// BookingCode formats the code shown to guests from the check-in day,
// e.g. RESV-20250310-42.
func BookingCode(id uint, checkIn time.Time) string {
	return fmt.Sprintf("RESV-%s-%d", checkIn.UTC().Format("20060102"), id)
}

func IsActiveReservationStatus(s string) bool {
	for _, a := range ActiveReservationStatuses {
		if a == s {
			return true
		}
	}
	return false
}
