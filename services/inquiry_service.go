package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-booking/models"

	"gorm.io/gorm"
)

type InquiryService struct {
	DB     *gorm.DB
	Hotels *HotelService
}

func NewInquiryService(db *gorm.DB, hotels *HotelService) *InquiryService {
	return &InquiryService{DB: db, Hotels: hotels}
}

type InquiryInput struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

type ReplyInput struct {
	Response string `json:"response" validate:"required"`
}

// Create files an inquiry against the client's hotel, or the default hotel.
func (s *InquiryService) Create(ctx context.Context, profile models.Profile, in InquiryInput) (models.Inquiry, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateStruct(in); err != nil {
		return models.Inquiry{}, err
	}

	var hotelID uint
	if profile.HotelID != nil {
		hotelID = *profile.HotelID
	}
	hotelID, err := s.Hotels.Resolve(ctx, hotelID)
	if err != nil {
		return models.Inquiry{}, err
	}

	q := models.Inquiry{
		HotelID:  hotelID,
		ClientID: profile.UserID,
		Subject:  in.Subject,
		Message:  in.Message,
	}
	if err := s.DB.WithContext(ctx).Create(&q).Error; err != nil {
		return q, fmt.Errorf("create inquiry: %w", err)
	}
	return q, nil
}

func (s *InquiryService) ListForClient(ctx context.Context, clientID string) ([]models.Inquiry, error) {
	out := []models.Inquiry{}
	err := s.DB.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (s *InquiryService) DeleteForClient(ctx context.Context, clientID string, id uint) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND client_id = ?", id, clientID).Delete(&models.Inquiry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: inquiry %d", ErrNotFound, id)
	}
	return nil
}

func (s *InquiryService) ListForHotel(ctx context.Context, hotelID uint) ([]models.Inquiry, error) {
	out := []models.Inquiry{}
	err := s.DB.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (s *InquiryService) getInHotel(ctx context.Context, hotelID, id uint) (models.Inquiry, error) {
	var q models.Inquiry
	err := s.DB.WithContext(ctx).Where("id = ? AND hotel_id = ?", id, hotelID).First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return q, fmt.Errorf("%w: inquiry %d", ErrNotFound, id)
	}
	return q, err
}

// Reply stores the response and marks the inquiry answered.
func (s *InquiryService) Reply(ctx context.Context, hotelID, id uint, in ReplyInput) (models.Inquiry, error) {
	in.Response = strings.TrimSpace(in.Response)
	if err := validateStruct(in); err != nil {
		return models.Inquiry{}, err
	}
	q, err := s.getInHotel(ctx, hotelID, id)
	if err != nil {
		return q, err
	}
	if err := s.DB.WithContext(ctx).Model(&q).Updates(map[string]interface{}{
		"response": in.Response,
		"answered": true,
	}).Error; err != nil {
		return q, err
	}
	q.Response = &in.Response
	q.Answered = true
	return q, nil
}

func (s *InquiryService) SetAnswered(ctx context.Context, hotelID, id uint, answered bool) (models.Inquiry, error) {
	q, err := s.getInHotel(ctx, hotelID, id)
	if err != nil {
		return q, err
	}
	if err := s.DB.WithContext(ctx).Model(&q).Update("answered", answered).Error; err != nil {
		return q, err
	}
	q.Answered = answered
	return q, nil
}

func (s *InquiryService) Delete(ctx context.Context, hotelID, id uint) error {
	q, err := s.getInHotel(ctx, hotelID, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&q).Error
}
