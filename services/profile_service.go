package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileService struct {
	DB     *gorm.DB
	Hotels *HotelService
}

func NewProfileService(db *gorm.DB, hotels *HotelService) *ProfileService {
	return &ProfileService{DB: db, Hotels: hotels}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	err := s.DB.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, fmt.Errorf("%w: profile", ErrNotFound)
	}
	return p, err
}

// Ensure bootstraps the profile of a signed-in user. A missing profile is
// created as a client of the default hotel; a profile without hotel gets the
// default hotel whatever its role.
func (s *ProfileService) Ensure(ctx context.Context, user models.User) (models.Profile, error) {
	db := s.DB.WithContext(ctx)

	p, err := s.Get(ctx, user.ID)
	switch {
	case errors.Is(err, ErrNotFound):
		hotelID, err := s.Hotels.DefaultID(ctx)
		if err != nil {
			return p, err
		}
		p = models.Profile{UserID: user.ID, Role: models.RoleClient, HotelID: hotelID}
		if name := strings.TrimSpace(user.FullName); name != "" {
			p.FullName = &name
		}
		// a concurrent request may have created it first
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
			return p, fmt.Errorf("create profile: %w", err)
		}
		return s.Get(ctx, user.ID)
	case err != nil:
		return p, err
	}

	if p.HotelID == nil {
		hotelID, err := s.Hotels.DefaultID(ctx)
		if err != nil {
			return p, err
		}
		if hotelID != nil {
			if err := db.Model(&p).Update("hotel_id", *hotelID).Error; err != nil {
				return p, fmt.Errorf("backfill profile hotel: %w", err)
			}
			p.HotelID = hotelID
		}
	}
	return p, nil
}

// HotelOf returns the hotel a staff profile manages.
func HotelOf(p models.Profile) (uint, error) {
	if p.HotelID == nil {
		return 0, fmt.Errorf("%w: profile has no hotel", ErrForbidden)
	}
	return *p.HotelID, nil
}

type StaffMember struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Role      string    `json:"role"`
	HotelID   *uint     `json:"hotel_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *ProfileService) ListStaff(ctx context.Context, hotelID uint) ([]StaffMember, error) {
	var out []StaffMember
	err := s.DB.WithContext(ctx).
		Table("profiles AS p").
		Select("p.user_id, u.email, p.full_name, p.role, p.hotel_id, p.created_at").
		Joins("JOIN users u ON u.id = p.user_id AND u.deleted_at IS NULL").
		Where("p.hotel_id = ?", hotelID).
		Order("p.role, u.email").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []StaffMember{}
	}
	return out, nil
}

type RoleInput struct {
	Role string `json:"role" validate:"required,oneof=client admin manager"`
}

func (s *ProfileService) UpdateRole(ctx context.Context, hotelID uint, userID string, in RoleInput) (models.Profile, error) {
	if err := validateStruct(in); err != nil {
		return models.Profile{}, err
	}
	p, err := s.Get(ctx, userID)
	if err != nil {
		return p, err
	}
	if p.HotelID == nil || *p.HotelID != hotelID {
		return p, fmt.Errorf("%w: profile", ErrNotFound)
	}
	if err := s.DB.WithContext(ctx).Model(&p).Update("role", in.Role).Error; err != nil {
		return p, err
	}
	p.Role = in.Role
	return p, nil
}
