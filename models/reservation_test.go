package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservationNightsAndCode(t *testing.T) {
	r := Reservation{
		ID:        42,
		CheckIn:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2025, 3, 1, 15, 4, 5, 0, time.UTC),
	}
	assert.Equal(t, 3, r.Nights())
	assert.Equal(t, "RESV-20250310-42", r.BookingCode())
}

func TestActiveStatuses(t *testing.T) {
	assert.True(t, IsActiveReservationStatus(ReservationPending))
	assert.True(t, IsActiveReservationStatus(ReservationCheckedIn))
	assert.False(t, IsActiveReservationStatus(ReservationCancelled))
}

func TestProfileHasRole(t *testing.T) {
	p := Profile{Role: RoleManager}
	assert.True(t, p.HasRole(RoleAdmin, RoleManager))
	assert.False(t, p.HasRole(RoleClient))
}
