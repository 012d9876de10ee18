package services

import (
	"context"
	"testing"
	"time"

	"hotel-booking/clock"
	"hotel-booking/models"
	"hotel-booking/storage"
	"hotel-booking/testutil"
	"hotel-booking/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testHotelName = "Sheraton Salta"

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	ctx    context.Context
	db     *gorm.DB
	clock  *clock.Manual
	mailer *utils.RecordingMailer
	bucket *storage.LocalBucket
	hotel  models.Hotel

	hotels        *HotelService
	profiles      *ProfileService
	auth          *AuthService
	rooms         *RoomService
	availability  *AvailabilityService
	reservations  *ReservationService
	payments      *PaymentService
	inquiries     *InquiryService
	kpis          *KPIService
	photos        *PhotoService
	denylist      *MemoryDenylist
	tokens        *TokenService
	signer        *storage.URLSigner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	c := clock.NewFixed(testNow)
	bucket, err := storage.NewLocalBucket(t.TempDir(), "http://test/storage/public")
	require.NoError(t, err)

	f := &fixture{
		ctx:    context.Background(),
		db:     db,
		clock:  c,
		mailer: &utils.RecordingMailer{},
		bucket: bucket,
		hotel:  testutil.CreateHotel(t, db, testHotelName),
	}
	f.hotels = NewHotelService(db, testHotelName)
	f.profiles = NewProfileService(db, f.hotels)
	f.tokens = NewTokenService("test-secret", time.Hour, c)
	f.denylist = NewMemoryDenylist(c)
	f.auth = &AuthService{
		DB:          db,
		Profiles:    f.profiles,
		Tokens:      f.tokens,
		Denylist:    f.denylist,
		Mailer:      f.mailer,
		Clock:       c,
		FrontendURL: "http://front",
	}
	f.rooms = NewRoomService(db, bucket, c)
	f.availability = NewAvailabilityService(db)
	f.reservations = NewReservationService(db, c, 30*time.Minute)
	f.payments = NewPaymentService(db, c)
	f.inquiries = NewInquiryService(db, f.hotels)
	f.kpis = NewKPIService(db)
	f.signer = storage.NewURLSigner("test-secret", "http://test/storage/signed", c)
	f.photos = NewPhotoService(bucket, f.signer, time.Hour)
	return f
}

func (f *fixture) room(t *testing.T, name string, capacity int, price float64) models.Room {
	t.Helper()
	return testutil.CreateRoom(t, f.db, f.hotel.ID, name, capacity, price)
}

func (f *fixture) client(t *testing.T, email string) models.User {
	t.Helper()
	sess, err := f.auth.SignUp(f.ctx, SignUpInput{Email: email, Password: "secret123", FullName: "Test Client"})
	require.NoError(t, err)
	return sess.User
}

func day(s string) time.Time {
	d, err := utils.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// reservation inserts a reservation row directly, bypassing checkout rules.
func (f *fixture) reservation(t *testing.T, room models.Room, clientID, checkIn, checkOut, status string, total float64) models.Reservation {
	t.Helper()
	r := models.Reservation{
		HotelID:     room.HotelID,
		RoomID:      room.ID,
		ClientID:    clientID,
		CheckIn:     day(checkIn),
		CheckOut:    day(checkOut),
		Guests:      1,
		TotalAmount: total,
		Status:      status,
		CreatedAt:   f.clock.Now(),
	}
	require.NoError(t, f.db.Create(&r).Error)
	return r
}

func (f *fixture) payment(t *testing.T, res models.Reservation, status string, amount float64, createdAt time.Time) models.Payment {
	t.Helper()
	p := models.Payment{
		ReservationID: res.ID,
		ClientID:      res.ClientID,
		Provider:      models.ProviderMock,
		Amount:        amount,
		Status:        status,
		CreatedAt:     createdAt,
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}
