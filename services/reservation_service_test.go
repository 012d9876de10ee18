package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"hotel-booking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) confirmInput(room models.Room, clientID, checkIn, checkOut string, guests int) ConfirmReservationInput {
	return ConfirmReservationInput{
		HotelID:  room.HotelID,
		ClientID: clientID,
		RoomID:   room.ID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
	}
}

func countRows(t *testing.T, f *fixture, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func TestConfirmReservation(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Suite", 2, 120.5)

	out, err := f.reservations.Confirm(f.ctx, f.confirmInput(room, "client-1", "2025-03-10", "2025-03-13", 2))
	require.NoError(t, err)
	assert.Equal(t, 361.5, out.TotalAmount)
	assert.Equal(t, "RESV-20250310-1", out.BookingCode)

	var res models.Reservation
	require.NoError(t, f.db.First(&res, out.ReservationID).Error)
	assert.Equal(t, models.ReservationPending, res.Status)
	assert.Equal(t, 3, res.Nights())
	assert.Equal(t, "client-1", res.ClientID)

	var pay models.Payment
	require.NoError(t, f.db.First(&pay, out.PaymentID).Error)
	assert.Equal(t, res.ID, pay.ReservationID)
	assert.Equal(t, models.PaymentPending, pay.Status)
	assert.Equal(t, models.ProviderMock, pay.Provider)
	assert.Equal(t, 361.5, pay.Amount)
	assert.NotEmpty(t, pay.ProviderRef)
}

func TestConfirmReservationRejections(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Suite", 2, 100)
	closed := f.room(t, "Closed", 2, 100)
	require.NoError(t, f.db.Model(&closed).Update("status", models.RoomStatusMaintenance).Error)
	f.reservation(t, room, "someone", "2025-03-10", "2025-03-12", models.ReservationConfirmed, 200)

	otherHotel := models.Hotel{Name: "Other"}
	require.NoError(t, f.db.Create(&otherHotel).Error)

	tests := []struct {
		name string
		in   ConfirmReservationInput
		err  error
	}{
		{"overlapping stay", f.confirmInput(room, "c", "2025-03-11", "2025-03-14", 1), ErrRoomUnavailable},
		{"room not open", f.confirmInput(closed, "c", "2025-03-20", "2025-03-21", 1), ErrRoomUnavailable},
		{"too many guests", f.confirmInput(room, "c", "2025-03-20", "2025-03-21", 3), ErrInvalidInput},
		{"checkout before checkin", f.confirmInput(room, "c", "2025-03-21", "2025-03-20", 1), ErrInvalidInput},
		{"same day", f.confirmInput(room, "c", "2025-03-21", "2025-03-21", 1), ErrInvalidInput},
		{"bad date", f.confirmInput(room, "c", "21/03/2025", "2025-03-22", 1), ErrInvalidInput},
		{"in the past", f.confirmInput(room, "c", "2025-02-27", "2025-03-02", 1), ErrInvalidInput},
		{"unknown room", ConfirmReservationInput{HotelID: f.hotel.ID, ClientID: "c", RoomID: 999, CheckIn: "2025-03-20", CheckOut: "2025-03-21"}, ErrNotFound},
		{"room of another hotel", ConfirmReservationInput{HotelID: otherHotel.ID, ClientID: "c", RoomID: room.ID, CheckIn: "2025-03-20", CheckOut: "2025-03-21"}, ErrNotFound},
		{"unknown provider", func() ConfirmReservationInput {
			in := f.confirmInput(room, "c", "2025-03-20", "2025-03-21", 1)
			in.Provider = "stripe"
			return in
		}(), ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.reservations.Confirm(f.ctx, tt.in)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	// nothing half-written
	assert.EqualValues(t, 1, countRows(t, f, &models.Reservation{}))
	assert.EqualValues(t, 0, countRows(t, f, &models.Payment{}))
}

func TestConfirmReservationAllowsTurnover(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Suite", 2, 100)

	_, err := f.reservations.Confirm(f.ctx, f.confirmInput(room, "a", "2025-03-10", "2025-03-12", 1))
	require.NoError(t, err)
	_, err = f.reservations.Confirm(f.ctx, f.confirmInput(room, "b", "2025-03-12", "2025-03-14", 1))
	require.NoError(t, err)
	_, err = f.reservations.Confirm(f.ctx, f.confirmInput(room, "c", "2025-03-11", "2025-03-12", 1))
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestConfirmReservationConcurrent(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Suite", 2, 100)

	const clients = 8
	errs := make([]error, clients)
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.reservations.Confirm(f.ctx, f.confirmInput(room, fmt.Sprintf("client-%d", i), "2025-03-10", "2025-03-12", 1))
		}(i)
	}
	wg.Wait()

	booked := 0
	for _, err := range errs {
		if err == nil {
			booked++
			continue
		}
		assert.ErrorIs(t, err, ErrRoomUnavailable)
	}
	assert.Equal(t, 1, booked)
	assert.EqualValues(t, 1, countRows(t, f, &models.Reservation{}))
	assert.EqualValues(t, 1, countRows(t, f, &models.Payment{}))
}

func TestConfirmReservationClampsGuests(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Suite", 2, 100)

	for i, guests := range []int{0, -3} {
		checkIn := fmt.Sprintf("2025-03-%d", 10+2*i)
		checkOut := fmt.Sprintf("2025-03-%d", 11+2*i)
		out, err := f.reservations.Confirm(f.ctx, f.confirmInput(room, "me", checkIn, checkOut, guests))
		require.NoError(t, err, "guests=%d", guests)

		var res models.Reservation
		require.NoError(t, f.db.First(&res, out.ReservationID).Error)
		assert.Equal(t, 1, res.Guests, "guests=%d", guests)
	}
}

func TestListForClientIncludesLatestPayment(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Suite", 2, 100)

	first, err := f.reservations.Confirm(f.ctx, f.confirmInput(room, "me", "2025-03-10", "2025-03-12", 1))
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	second, err := f.reservations.Confirm(f.ctx, f.confirmInput(room, "me", "2025-03-20", "2025-03-21", 1))
	require.NoError(t, err)
	_, err = f.reservations.Confirm(f.ctx, f.confirmInput(room, "someone-else", "2025-03-25", "2025-03-26", 1))
	require.NoError(t, err)

	_, err = f.payments.Simulate(f.ctx, "me", first.PaymentID, SimulateInput{Result: models.PaymentRejected})
	require.NoError(t, err)

	list, err := f.reservations.ListForClient(f.ctx, "me")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ReservationID, list[0].ReservationID, "newest first")
	assert.Equal(t, "Suite", list[0].RoomName)
	assert.Equal(t, 1, list[0].Nights)
	assert.Equal(t, second.BookingCode, list[0].BookingCode)
	require.NotNil(t, list[1].PaymentStatus)
	assert.Equal(t, models.PaymentRejected, *list[1].PaymentStatus)
	assert.Equal(t, 200.0, *list[1].PaymentAmount)
}

func TestRetryPayment(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Suite", 2, 100)
	out, err := f.reservations.Confirm(f.ctx, f.confirmInput(room, "me", "2025-03-10", "2025-03-12", 1))
	require.NoError(t, err)

	again, err := f.reservations.RetryPayment(f.ctx, "me", out.ReservationID, RetryPaymentInput{})
	require.NoError(t, err)
	assert.Equal(t, out.PaymentID, again.ID, "pending attempt is reused")

	_, err = f.payments.Simulate(f.ctx, "me", out.PaymentID, SimulateInput{Result: models.PaymentRejected})
	require.NoError(t, err)

	retry, err := f.reservations.RetryPayment(f.ctx, "me", out.ReservationID, RetryPaymentInput{})
	require.NoError(t, err)
	assert.NotEqual(t, out.PaymentID, retry.ID)
	assert.Equal(t, 200.0, retry.Amount)

	_, err = f.reservations.RetryPayment(f.ctx, "intruder", out.ReservationID, RetryPaymentInput{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.payments.Simulate(f.ctx, "me", retry.ID, SimulateInput{Result: models.PaymentApproved})
	require.NoError(t, err)
	_, err = f.reservations.RetryPayment(f.ctx, "me", out.ReservationID, RetryPaymentInput{})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Suite", 2, 100)
	cancelled := f.reservation(t, room, "a", "2025-03-10", "2025-03-12", models.ReservationCancelled, 200)
	f.reservation(t, room, "b", "2025-03-11", "2025-03-13", models.ReservationConfirmed, 200)

	_, err := f.reservations.UpdateStatus(f.ctx, f.hotel.ID, cancelled.ID, ReservationStatusInput{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	_, err = f.reservations.UpdateStatus(f.ctx, f.hotel.ID, cancelled.ID, ReservationStatusInput{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.reservations.UpdateStatus(f.ctx, f.hotel.ID+1, cancelled.ID, ReservationStatusInput{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrNotFound)

	free := f.reservation(t, room, "c", "2025-03-20", "2025-03-22", models.ReservationPending, 200)
	got, err := f.reservations.UpdateStatus(f.ctx, f.hotel.ID, free.ID, ReservationStatusInput{Status: models.ReservationCheckedIn})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCheckedIn, got.Status)

	list, err := f.reservations.ListForHotel(f.ctx, f.hotel.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestExpireStale(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Suite", 2, 100)

	stale, err := f.reservations.Confirm(f.ctx, f.confirmInput(room, "a", "2025-03-10", "2025-03-12", 1))
	require.NoError(t, err)
	paid, err := f.reservations.Confirm(f.ctx, f.confirmInput(room, "b", "2025-03-20", "2025-03-22", 1))
	require.NoError(t, err)
	_, err = f.payments.Simulate(f.ctx, "b", paid.PaymentID, SimulateInput{Result: models.PaymentApproved})
	require.NoError(t, err)

	f.clock.Advance(20 * time.Minute)
	fresh, err := f.reservations.Confirm(f.ctx, f.confirmInput(room, "c", "2025-03-25", "2025-03-26", 1))
	require.NoError(t, err)

	f.clock.Advance(15 * time.Minute)
	n, err := f.reservations.ExpireStale(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var r models.Reservation
	require.NoError(t, f.db.First(&r, stale.ReservationID).Error)
	assert.Equal(t, models.ReservationCancelled, r.Status)
	var p models.Payment
	require.NoError(t, f.db.First(&p, stale.PaymentID).Error)
	assert.Equal(t, models.PaymentRejected, p.Status)

	require.NoError(t, f.db.First(&r, fresh.ReservationID).Error)
	assert.Equal(t, models.ReservationPending, r.Status)
	require.NoError(t, f.db.First(&r, paid.ReservationID).Error)
	assert.Equal(t, models.ReservationConfirmed, r.Status)

	// the freed dates can be booked again
	_, err = f.reservations.Confirm(f.ctx, f.confirmInput(room, "d", "2025-03-10", "2025-03-12", 1))
	assert.NoError(t, err)
}
