package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-booking/clock"
	"hotel-booking/models"
	"hotel-booking/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SupportedProviders are the payment providers a checkout may name.
var SupportedProviders = []string{models.ProviderMock}

type ReservationService struct {
	DB         *gorm.DB
	Clock      clock.Clock
	PendingTTL time.Duration
}

func NewReservationService(db *gorm.DB, c clock.Clock, pendingTTL time.Duration) *ReservationService {
	return &ReservationService{DB: db, Clock: c, PendingTTL: pendingTTL}
}

type ConfirmReservationInput struct {
	HotelID  uint   `json:"hotel_id" validate:"required"`
	ClientID string `json:"client_id" validate:"required"`
	RoomID   uint   `json:"room_id" validate:"required"`
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
	Guests   int    `json:"guests"`
	Provider string `json:"provider" validate:"omitempty,oneof=mock"`
}

type ConfirmedReservation struct {
	ReservationID uint    `json:"reservation_id"`
	PaymentID     uint    `json:"payment_id"`
	TotalAmount   float64 `json:"total_amount"`
	BookingCode   string  `json:"booking_code"`
}

// StayDates parses and checks a check-in/check-out pair.
func StayDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	ci, err := utils.ParseDay(checkIn)
	if err != nil {
		return ci, ci, fmt.Errorf("%w: check_in: %v", ErrInvalidInput, err)
	}
	co, err := utils.ParseDay(checkOut)
	if err != nil {
		return ci, co, fmt.Errorf("%w: check_out: %v", ErrInvalidInput, err)
	}
	if !co.After(ci) {
		return ci, co, fmt.Errorf("%w: check_out must be after check_in", ErrInvalidInput)
	}
	return ci, co, nil
}

// Confirm books a room and opens its payment in one transaction. The room
// row is locked first so concurrent checkouts of the same room serialise
// and the overlap check sees committed reservations only.
func (s *ReservationService) Confirm(ctx context.Context, in ConfirmReservationInput) (ConfirmedReservation, error) {
	var out ConfirmedReservation
	if err := validateStruct(in); err != nil {
		return out, err
	}
	checkIn, checkOut, err := StayDates(in.CheckIn, in.CheckOut)
	if err != nil {
		return out, err
	}
	if checkIn.Before(clock.Today(s.Clock)) {
		return out, fmt.Errorf("%w: check_in is in the past", ErrInvalidInput)
	}
	guests := in.Guests
	if guests < 1 {
		guests = 1
	}
	provider := in.Provider
	if provider == "" {
		provider = models.ProviderMock
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: room %d", ErrNotFound, in.RoomID)
			}
			return err
		}
		if room.HotelID != in.HotelID {
			return fmt.Errorf("%w: room %d does not belong to hotel %d", ErrNotFound, room.ID, in.HotelID)
		}
		if room.Status != models.RoomStatusOpen {
			return fmt.Errorf("%w: room is %s", ErrRoomUnavailable, room.Status)
		}
		if guests > room.Capacity {
			return fmt.Errorf("%w: room fits at most %d guests", ErrInvalidInput, room.Capacity)
		}

		free, err := IsRoomFree(tx, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if !free {
			return ErrRoomUnavailable
		}

		nights := utils.NightsBetween(checkIn, checkOut)
		total := utils.RoundMoney(room.BasePrice * float64(nights))
		now := s.Clock.Now()

		res := models.Reservation{
			HotelID:     room.HotelID,
			RoomID:      room.ID,
			ClientID:    in.ClientID,
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			Guests:      guests,
			TotalAmount: total,
			Status:      models.ReservationPending,
			CreatedAt:   now,
		}
		if err := tx.Create(&res).Error; err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}

		pay := models.Payment{
			ReservationID: res.ID,
			ClientID:      in.ClientID,
			Provider:      provider,
			ProviderRef:   uuid.NewString(),
			Amount:        total,
			Status:        models.PaymentPending,
			CreatedAt:     now,
		}
		if err := tx.Create(&pay).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		out = ConfirmedReservation{
			ReservationID: res.ID,
			PaymentID:     pay.ID,
			TotalAmount:   total,
			BookingCode:   res.BookingCode(),
		}
		return nil
	})
	if err != nil {
		return ConfirmedReservation{}, err
	}
	log.Printf("🛏️  reservation %s created (room %d, %s → %s)", out.BookingCode, in.RoomID, utils.FormatDay(checkIn), utils.FormatDay(checkOut))
	return out, nil
}

// withRoom is the reservations ⋈ rooms read model.
func (s *ReservationService) withRoom(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("reservations AS r").
		Select("r.id AS reservation_id, r.hotel_id, r.room_id, COALESCE(rm.name, '') AS room_name, " +
			"r.client_id, r.status, r.check_in, r.check_out, r.guests, r.total_amount, r.created_at").
		Joins("LEFT JOIN rooms rm ON rm.id = r.room_id")
}

type ClientReservation struct {
	models.ReservationWithRoom
	BookingCode   string   `json:"booking_code"`
	Nights        int      `json:"nights"`
	PaymentID     *uint    `json:"payment_id"`
	PaymentStatus *string  `json:"payment_status"`
	PaymentAmount *float64 `json:"payment_amount"`
}

func (s *ReservationService) ListForClient(ctx context.Context, clientID string) ([]ClientReservation, error) {
	var rows []models.ReservationWithRoom
	err := s.withRoom(ctx).Where("r.client_id = ?", clientID).Order("r.created_at DESC, r.id DESC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ReservationID)
	}
	latest, err := s.latestPayments(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ClientReservation, 0, len(rows))
	for _, r := range rows {
		cr := ClientReservation{
			ReservationWithRoom: r,
			BookingCode:         models.BookingCode(r.ReservationID, r.CheckIn),
			Nights:              utils.NightsBetween(r.CheckIn, r.CheckOut),
		}
		if p, ok := latest[r.ReservationID]; ok {
			id, status, amount := p.ID, p.Status, p.Amount
			cr.PaymentID, cr.PaymentStatus, cr.PaymentAmount = &id, &status, &amount
		}
		out = append(out, cr)
	}
	return out, nil
}

func (s *ReservationService) latestPayments(ctx context.Context, reservationIDs []uint) (map[uint]models.Payment, error) {
	out := map[uint]models.Payment{}
	if len(reservationIDs) == 0 {
		return out, nil
	}
	var pays []models.Payment
	err := s.DB.WithContext(ctx).Where("reservation_id IN ?", reservationIDs).Order("id").Find(&pays).Error
	if err != nil {
		return nil, err
	}
	for _, p := range pays {
		out[p.ReservationID] = p
	}
	return out, nil
}

func (s *ReservationService) ListForHotel(ctx context.Context, hotelID uint) ([]models.ReservationWithRoom, error) {
	rows := []models.ReservationWithRoom{}
	err := s.withRoom(ctx).Where("r.hotel_id = ?", hotelID).Order("r.created_at DESC, r.id DESC").Scan(&rows).Error
	return rows, err
}

// GetForClient hides other clients' reservations behind not found.
func (s *ReservationService) GetForClient(ctx context.Context, clientID string, id uint) (models.Reservation, error) {
	var r models.Reservation
	err := s.DB.WithContext(ctx).Where("id = ? AND client_id = ?", id, clientID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r, fmt.Errorf("%w: reservation %d", ErrNotFound, id)
	}
	return r, err
}

type ReservationStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed checked_in cancelled"`
}

// UpdateStatus is the admin override. Reactivating a cancelled stay checks
// the room is still free.
func (s *ReservationService) UpdateStatus(ctx context.Context, hotelID, id uint, in ReservationStatusInput) (models.Reservation, error) {
	var res models.Reservation
	if err := validateStruct(in); err != nil {
		return res, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND hotel_id = ?", id, hotelID).First(&res).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reservation %d", ErrNotFound, id)
			}
			return err
		}
		if res.Status == in.Status {
			return nil
		}

		if !models.IsActiveReservationStatus(res.Status) && models.IsActiveReservationStatus(in.Status) {
			var room models.Room
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, res.RoomID).Error; err != nil {
				return err
			}
			free, err := IsRoomFree(tx, res.RoomID, res.CheckIn, res.CheckOut, res.ID)
			if err != nil {
				return err
			}
			if !free {
				return ErrRoomUnavailable
			}
		}

		if err := tx.Model(&res).Update("status", in.Status).Error; err != nil {
			return err
		}
		res.Status = in.Status

		if in.Status == models.ReservationCancelled {
			payload, _ := json.Marshal(map[string]string{"reason": "cancelled"})
			return tx.Model(&models.Payment{}).
				Where("reservation_id = ? AND status = ?", res.ID, models.PaymentPending).
				Updates(map[string]interface{}{
					"status":  models.PaymentRejected,
					"payload": datatypes.JSON(payload),
				}).Error
		}
		return nil
	})
	return res, err
}

type RetryPaymentInput struct {
	Provider string `json:"provider" validate:"omitempty,oneof=mock"`
}

// RetryPayment opens a new payment attempt for a pending reservation of the
// client. A still pending attempt is returned as is.
func (s *ReservationService) RetryPayment(ctx context.Context, clientID string, reservationID uint, in RetryPaymentInput) (models.Payment, error) {
	var pay models.Payment
	if err := validateStruct(in); err != nil {
		return pay, err
	}
	provider := in.Provider
	if provider == "" {
		provider = models.ProviderMock
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND client_id = ?", reservationID, clientID).First(&res).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
		}
		if err != nil {
			return err
		}
		if res.Status != models.ReservationPending {
			return fmt.Errorf("%w: reservation is %s", ErrConflict, res.Status)
		}

		var existing []models.Payment
		if err := tx.Where("reservation_id = ?", res.ID).Order("id DESC").Find(&existing).Error; err != nil {
			return err
		}
		for _, p := range existing {
			switch p.Status {
			case models.PaymentApproved:
				return fmt.Errorf("%w: reservation already paid", ErrConflict)
			case models.PaymentPending:
				pay = p
				return nil
			}
		}

		pay = models.Payment{
			ReservationID: res.ID,
			ClientID:      clientID,
			Provider:      provider,
			ProviderRef:   uuid.NewString(),
			Amount:        res.TotalAmount,
			Status:        models.PaymentPending,
			CreatedAt:     s.Clock.Now(),
		}
		return tx.Create(&pay).Error
	})
	return pay, err
}

// ExpireStale cancels pending reservations older than PendingTTL that never
// got an approved payment, and rejects their open payments.
func (s *ReservationService) ExpireStale(ctx context.Context) (int, error) {
	if s.PendingTTL <= 0 {
		return 0, nil
	}
	cutoff := s.Clock.Now().Add(-s.PendingTTL)

	approved := s.DB.Session(&gorm.Session{NewDB: true}).
		Model(&models.Payment{}).
		Select("reservation_id").
		Where("status = ?", models.PaymentApproved)

	var stale []models.Reservation
	err := s.DB.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.ReservationPending, cutoff).
		Where("id NOT IN (?)", approved).
		Find(&stale).Error
	if err != nil {
		return 0, err
	}

	payload, _ := json.Marshal(map[string]string{"reason": "expired"})
	expired := 0
	for _, r := range stale {
		cancelled := false
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			upd := tx.Model(&models.Reservation{}).
				Where("id = ? AND status = ?", r.ID, models.ReservationPending).
				Update("status", models.ReservationCancelled)
			if upd.Error != nil {
				return upd.Error
			}
			if upd.RowsAffected == 0 {
				return nil
			}
			cancelled = true
			return tx.Model(&models.Payment{}).
				Where("reservation_id = ? AND status = ?", r.ID, models.PaymentPending).
				Updates(map[string]interface{}{
					"status":  models.PaymentRejected,
					"payload": datatypes.JSON(payload),
				}).Error
		})
		if err != nil {
			return expired, fmt.Errorf("expire reservation %d: %w", r.ID, err)
		}
		if cancelled {
			expired++
		}
	}
	if expired > 0 {
		log.Printf("⏱️  expired %d pending reservation(s)", expired)
	}
	return expired, nil
}

func isSupportedProvider(p string) bool {
	for _, sp := range SupportedProviders {
		if strings.EqualFold(sp, p) {
			return true
		}
	}
	return false
}
