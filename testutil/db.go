package testutil

import (
	"path/filepath"
	"testing"

	"hotel-booking/config"
	"hotel-booking/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated sqlite database inside t.TempDir().
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	// sqlite has no row locks; immediate transactions serialize writers instead.
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// CreateHotel inserts a hotel with the given name.
func CreateHotel(t *testing.T, db *gorm.DB, name string) models.Hotel {
	t.Helper()
	h := models.Hotel{Name: name}
	require.NoError(t, db.Create(&h).Error)
	return h
}

func CreateRoom(t *testing.T, db *gorm.DB, hotelID uint, name string, capacity int, price float64) models.Room {
	t.Helper()
	r := models.Room{HotelID: hotelID, Name: name, Capacity: capacity, BasePrice: price, Status: models.RoomStatusOpen}
	require.NoError(t, db.Create(&r).Error)
	return r
}
