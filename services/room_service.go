package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"hotel-booking/clock"
	"hotel-booking/models"
	"hotel-booking/storage"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type RoomService struct {
	DB     *gorm.DB
	Bucket storage.Bucket
	Clock  clock.Clock
}

func NewRoomService(db *gorm.DB, bucket storage.Bucket, c clock.Clock) *RoomService {
	return &RoomService{DB: db, Bucket: bucket, Clock: c}
}

type RoomInput struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Description string  `json:"description"`
	Capacity    int     `json:"capacity" validate:"min=1"`
	BasePrice   float64 `json:"base_price" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=open closed maintenance"`
}

// RoomPatch carries only the fields the caller sent.
type RoomPatch struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string  `json:"description"`
	Capacity    *int     `json:"capacity" validate:"omitempty,min=1"`
	BasePrice   *float64 `json:"base_price" validate:"omitempty,gte=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=open closed maintenance"`
}

// ListOpen returns the bookable rooms of a hotel that fit guests.
func (s *RoomService) ListOpen(ctx context.Context, hotelID uint, guests int) ([]models.Room, error) {
	if guests < 1 {
		guests = 1
	}
	rooms := []models.Room{}
	err := s.DB.WithContext(ctx).
		Where("hotel_id = ? AND status = ? AND capacity >= ?", hotelID, models.RoomStatusOpen, guests).
		Order("id").
		Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) ListForHotel(ctx context.Context, hotelID uint) ([]models.Room, error) {
	rooms := []models.Room{}
	err := s.DB.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("created_at DESC, id DESC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) Get(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return room, fmt.Errorf("%w: room %d", ErrNotFound, id)
	}
	return room, err
}

// getInHotel hides rooms of other hotels behind not found.
func (s *RoomService) getInHotel(ctx context.Context, hotelID, id uint) (models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return room, err
	}
	if room.HotelID != hotelID {
		return models.Room{}, fmt.Errorf("%w: room %d", ErrNotFound, id)
	}
	return room, nil
}

func (s *RoomService) Create(ctx context.Context, hotelID uint, in RoomInput) (models.Room, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return models.Room{}, err
	}

	var room models.Room
	if err := copier.Copy(&room, &in); err != nil {
		return room, err
	}
	room.HotelID = hotelID
	if room.Status == "" {
		room.Status = models.RoomStatusOpen
	}
	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		return room, fmt.Errorf("create room: %w", err)
	}

	if s.Bucket != nil {
		keep := storage.RoomFolder(room.ID) + "/.keep"
		if err := s.Bucket.Put(ctx, keep, bytes.NewReader(nil), "text/plain"); err != nil {
			log.Printf("warning: could not create photo folder for room %d: %v", room.ID, err)
		}
	}
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, hotelID, id uint, patch RoomPatch) (models.Room, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if err := validateStruct(patch); err != nil {
		return models.Room{}, err
	}
	room, err := s.getInHotel(ctx, hotelID, id)
	if err != nil {
		return room, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Capacity != nil {
		updates["capacity"] = *patch.Capacity
	}
	if patch.BasePrice != nil {
		updates["base_price"] = *patch.BasePrice
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if len(updates) == 0 {
		return room, nil
	}
	if err := s.DB.WithContext(ctx).Model(&room).Updates(updates).Error; err != nil {
		return room, fmt.Errorf("update room: %w", err)
	}
	return s.Get(ctx, id)
}

// Toggle flips open to closed and anything else to open.
func (s *RoomService) Toggle(ctx context.Context, hotelID, id uint) (models.Room, error) {
	room, err := s.getInHotel(ctx, hotelID, id)
	if err != nil {
		return room, err
	}
	next := models.RoomStatusOpen
	if room.Status == models.RoomStatusOpen {
		next = models.RoomStatusClosed
	}
	if err := s.DB.WithContext(ctx).Model(&room).Update("status", next).Error; err != nil {
		return room, err
	}
	room.Status = next
	return room, nil
}

// Delete refuses while the room still has active stays that have not ended.
func (s *RoomService) Delete(ctx context.Context, hotelID, id uint) error {
	room, err := s.getInHotel(ctx, hotelID, id)
	if err != nil {
		return err
	}
	var upcoming int64
	err = s.DB.WithContext(ctx).Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ? AND check_out > ?", room.ID, models.ActiveReservationStatuses, clock.Today(s.Clock)).
		Count(&upcoming).Error
	if err != nil {
		return err
	}
	if upcoming > 0 {
		return fmt.Errorf("%w: room has %d active reservation(s)", ErrConflict, upcoming)
	}
	if err := s.DB.WithContext(ctx).Delete(&room).Error; err != nil {
		return err
	}
	s.removeFolder(ctx, room.ID)
	return nil
}

// removeFolder drops the photos and sidecars of a deleted room. Failures
// only leave orphaned objects behind, so they are logged.
func (s *RoomService) removeFolder(ctx context.Context, roomID uint) {
	if s.Bucket == nil {
		return
	}
	folder := storage.RoomFolder(roomID)
	objs, err := s.Bucket.List(ctx, folder)
	if err != nil {
		log.Printf("warning: list %s: %v", folder, err)
		return
	}
	if len(objs) == 0 {
		return
	}
	paths := make([]string, 0, len(objs))
	for _, o := range objs {
		paths = append(paths, folder+"/"+o.Name)
	}
	if err := s.Bucket.Remove(ctx, paths...); err != nil {
		log.Printf("warning: remove %s: %v", folder, err)
	}
}
