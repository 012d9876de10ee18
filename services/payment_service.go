package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"hotel-booking/clock"
	"hotel-booking/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentService struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewPaymentService(db *gorm.DB, c clock.Clock) *PaymentService {
	return &PaymentService{DB: db, Clock: c}
}

type SimulateInput struct {
	Result string `json:"result" validate:"required,oneof=approved rejected"`
}

type PaymentStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type PaymentOutcome struct {
	Payment     models.Payment     `json:"payment"`
	Reservation models.Reservation `json:"reservation"`
}

// applyStatus moves a locked payment to status; an approval confirms a
// still pending reservation. A rejection leaves the reservation pending so
// the client can retry. A cancelled reservation cannot be paid.
func (s *PaymentService) applyStatus(tx *gorm.DB, pay *models.Payment, res *models.Reservation, status string, payload map[string]interface{}) error {
	if status == models.PaymentApproved && res.Status == models.ReservationCancelled {
		return fmt.Errorf("%w: reservation %d is cancelled", ErrConflict, res.ID)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if err := tx.Model(pay).Updates(map[string]interface{}{
		"status":  status,
		"payload": datatypes.JSON(raw),
	}).Error; err != nil {
		return err
	}
	pay.Status = status
	pay.Payload = datatypes.JSON(raw)

	if status == models.PaymentApproved && res.Status == models.ReservationPending {
		if err := tx.Model(res).Update("status", models.ReservationConfirmed).Error; err != nil {
			return err
		}
		res.Status = models.ReservationConfirmed
	}
	return nil
}

func (s *PaymentService) lockPayment(tx *gorm.DB, id uint) (models.Payment, error) {
	var pay models.Payment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pay, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pay, fmt.Errorf("%w: payment %d", ErrNotFound, id)
	}
	return pay, err
}

// Simulate settles a pending mock payment of the client.
func (s *PaymentService) Simulate(ctx context.Context, clientID string, paymentID uint, in SimulateInput) (PaymentOutcome, error) {
	var out PaymentOutcome
	if err := validateStruct(in); err != nil {
		return out, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pay, err := s.lockPayment(tx, paymentID)
		if err != nil {
			return err
		}
		if pay.ClientID != clientID {
			return fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
		}
		if !isSupportedProvider(pay.Provider) {
			return fmt.Errorf("%w: provider %s cannot be simulated", ErrInvalidInput, pay.Provider)
		}
		if pay.Status != models.PaymentPending {
			return fmt.Errorf("%w: payment already %s", ErrConflict, pay.Status)
		}
		var res models.Reservation
		if err := tx.First(&res, pay.ReservationID).Error; err != nil {
			return err
		}
		if res.Status != models.ReservationPending {
			return fmt.Errorf("%w: reservation is %s", ErrConflict, res.Status)
		}

		if err := s.applyStatus(tx, &pay, &res, in.Result, map[string]interface{}{
			"simulated": in.Result,
			"at":        s.Clock.Now(),
		}); err != nil {
			return err
		}
		out = PaymentOutcome{Payment: pay, Reservation: res}
		return nil
	})
	if err != nil {
		return PaymentOutcome{}, err
	}
	log.Printf("💳 payment %d %s (reservation %d → %s)", paymentID, in.Result, out.Reservation.ID, out.Reservation.Status)
	return out, nil
}

func (s *PaymentService) ListForHotel(ctx context.Context, hotelID uint) ([]models.Payment, error) {
	pays := []models.Payment{}
	err := s.DB.WithContext(ctx).
		Joins("JOIN reservations r ON r.id = payments.reservation_id").
		Where("r.hotel_id = ?", hotelID).
		Order("payments.created_at DESC, payments.id DESC").
		Find(&pays).Error
	return pays, err
}

// SetStatus is the admin override for payments of the hotel's reservations.
func (s *PaymentService) SetStatus(ctx context.Context, hotelID, paymentID uint, in PaymentStatusInput) (PaymentOutcome, error) {
	var out PaymentOutcome
	if err := validateStruct(in); err != nil {
		return out, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pay, err := s.lockPayment(tx, paymentID)
		if err != nil {
			return err
		}
		var res models.Reservation
		err = tx.Where("id = ? AND hotel_id = ?", pay.ReservationID, hotelID).First(&res).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
		}
		if err != nil {
			return err
		}

		if err := s.applyStatus(tx, &pay, &res, in.Status, map[string]interface{}{
			"set_by": "admin",
			"at":     s.Clock.Now(),
		}); err != nil {
			return err
		}
		out = PaymentOutcome{Payment: pay, Reservation: res}
		return nil
	})
	return out, err
}
