package config_test

import (
	"testing"
	"time"

	"hotel-booking/config"
	"hotel-booking/storage"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CLOUDINARY_FOLDER", "PENDING_RESERVATION_TTL", "SMTP_PORT", "CORS_ORIGINS", "DEFAULT_HOTEL_NAME"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, storage.BucketName, cfg.Cloudinary.Folder)
	assert.Equal(t, 30*time.Minute, cfg.PendingReservationTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, config.DefaultHotelName, cfg.DefaultHotelName)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CLOUDINARY_FOLDER", "staging-photos")
	t.Setenv("PENDING_RESERVATION_TTL", "-5m")
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg := config.Load()
	assert.Equal(t, "staging-photos", cfg.Cloudinary.Folder)
	assert.Equal(t, 30*time.Minute, cfg.PendingReservationTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}
