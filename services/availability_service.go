package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"

	"gorm.io/gorm"
)

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

type AvailabilityQuery struct {
	HotelID  uint
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// overlapping selects active reservations intersecting [checkIn, checkOut).
func overlapping(db *gorm.DB, checkIn, checkOut time.Time) *gorm.DB {
	return db.Model(&models.Reservation{}).
		Where("status IN ?", models.ActiveReservationStatuses).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
}

// AvailableRooms lists open rooms of the hotel that fit the party and have
// no overlapping active reservation, ordered by id.
func (s *AvailabilityService) AvailableRooms(ctx context.Context, q AvailabilityQuery) ([]models.Room, error) {
	if !q.CheckOut.After(q.CheckIn) {
		return nil, fmt.Errorf("%w: check_out must be after check_in", ErrInvalidInput)
	}
	guests := q.Guests
	if guests < 1 {
		guests = 1
	}

	db := s.DB.WithContext(ctx)
	busy := overlapping(s.DB.Session(&gorm.Session{NewDB: true}), q.CheckIn, q.CheckOut).Select("room_id")

	rooms := []models.Room{}
	err := db.
		Where("hotel_id = ? AND status = ? AND capacity >= ?", q.HotelID, models.RoomStatusOpen, guests).
		Where("id NOT IN (?)", busy).
		Order("id").
		Find(&rooms).Error
	return rooms, err
}

// IsRoomFree reports whether roomID has no active reservation overlapping
// the range, ignoring excludeID.
func IsRoomFree(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	q := overlapping(tx, checkIn, checkOut).Where("room_id = ?", roomID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}

// OccupiedDates lists the calendar days (check_in through check_out, both
// inclusive) covered by active reservations of the room.
func (s *AvailabilityService) OccupiedDates(ctx context.Context, roomID uint) ([]string, error) {
	var stays []models.Reservation
	err := s.DB.WithContext(ctx).
		Select("check_in", "check_out").
		Where("room_id = ? AND status IN ?", roomID, models.ActiveReservationStatuses).
		Find(&stays).Error
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	for _, r := range stays {
		start := utils.TruncateDay(r.CheckIn)
		end := utils.TruncateDay(r.CheckOut)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			seen[utils.FormatDay(d)] = struct{}{}
		}
	}

	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)
	return days, nil
}
