package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-booking/models"

	"gorm.io/gorm"
)

type HotelService struct {
	DB          *gorm.DB
	DefaultName string
}

func NewHotelService(db *gorm.DB, defaultName string) *HotelService {
	return &HotelService{DB: db, DefaultName: defaultName}
}

// Default returns the hotel the storefront shows, looked up by name.
func (s *HotelService) Default(ctx context.Context) (models.Hotel, error) {
	var h models.Hotel
	err := s.DB.WithContext(ctx).Where("name = ?", s.DefaultName).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return h, fmt.Errorf("%w: default hotel %q", ErrNotFound, s.DefaultName)
	}
	return h, err
}

// DefaultID is Default without the not-found error.
func (s *HotelService) DefaultID(ctx context.Context) (*uint, error) {
	h, err := s.Default(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id := h.ID
	return &id, nil
}

// Resolve returns id when set, otherwise the default hotel id.
func (s *HotelService) Resolve(ctx context.Context, id uint) (uint, error) {
	if id != 0 {
		return id, nil
	}
	h, err := s.Default(ctx)
	if err != nil {
		return 0, err
	}
	return h.ID, nil
}

func (s *HotelService) Get(ctx context.Context, id uint) (models.Hotel, error) {
	var h models.Hotel
	err := s.DB.WithContext(ctx).First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return h, fmt.Errorf("%w: hotel %d", ErrNotFound, id)
	}
	return h, err
}

type HotelInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email,max=150"`
	Website string `json:"website" validate:"max=255"`
	Logo    string `json:"logo" validate:"max=255"`
}

func (s *HotelService) Update(ctx context.Context, id uint, in HotelInput) (models.Hotel, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return models.Hotel{}, err
	}
	h, err := s.Get(ctx, id)
	if err != nil {
		return h, err
	}
	// Default resolves the storefront hotel by name.
	if h.Name == s.DefaultName && in.Name != h.Name {
		return h, fmt.Errorf("%w: the default hotel cannot be renamed", ErrConflict)
	}
	h.Name = in.Name
	h.Address = in.Address
	h.Phone = in.Phone
	h.Email = in.Email
	h.Website = in.Website
	h.Logo = in.Logo
	if err := s.DB.WithContext(ctx).Save(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return h, fmt.Errorf("%w: hotel name already in use", ErrConflict)
		}
		return h, err
	}
	return h, nil
}
