package config_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/storage"
	"hotel-booking/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
hotels:
  - name: Sheraton Salta
    address: Av. Ejército del Norte 330
    rooms:
      - name: Suite 101
        description: King bed
        capacity: 2
        base_price: 120
        amenities: [WiFi, Minibar]
        photos: [b.jpg, a.jpg]
      - name: Family 201
        capacity: 4
        base_price: 200
        status: maintenance
users:
  - email: Manager@Hotel.Local
    password: secret123
    full_name: Maria Manager
    role: manager
    hotel: Sheraton Salta
`

func TestApplySeedIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seed.yaml"), []byte(seedYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("b"), 0o644))

	bucket, err := storage.NewLocalBucket(t.TempDir(), "http://x/storage/public")
	require.NoError(t, err)

	sf, err := config.LoadSeedFile(filepath.Join(dir, "seed.yaml"))
	require.NoError(t, err)

	ctx := context.Background()
	sum, err := config.ApplySeed(ctx, db, bucket, sf, dir)
	require.NoError(t, err)
	assert.Equal(t, config.SeedSummary{Hotels: 1, Rooms: 2, Users: 1, Photos: 2}, sum)

	_, err = config.ApplySeed(ctx, db, bucket, sf, dir)
	require.NoError(t, err)

	var rooms []models.Room
	require.NoError(t, db.Order("id").Find(&rooms).Error)
	require.Len(t, rooms, 2)
	assert.Equal(t, models.RoomStatusMaintenance, rooms[1].Status)

	var profile models.Profile
	require.NoError(t, db.Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.email = ?", "manager@hotel.local").First(&profile).Error)
	assert.Equal(t, models.RoleManager, profile.Role)
	require.NotNil(t, profile.HotelID)
	assert.Equal(t, rooms[0].HotelID, *profile.HotelID)

	rc, err := bucket.Get(ctx, storage.RoomFolder(rooms[0].ID)+"/index.json")
	require.NoError(t, err)
	raw, _ := io.ReadAll(rc)
	rc.Close()
	assert.JSONEq(t, `["b.jpg","a.jpg"]`, string(raw))
}

func TestSeedDefaultsCreatesHotelAndAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := config.Config{DefaultHotelName: config.DefaultHotelName}

	require.NoError(t, config.SeedDefaults(db, cfg))
	require.NoError(t, config.SeedDefaults(db, cfg))

	var hotels int64
	db.Model(&models.Hotel{}).Count(&hotels)
	assert.EqualValues(t, 1, hotels)

	var admins int64
	db.Model(&models.Profile{}).Where("role = ?", models.RoleAdmin).Count(&admins)
	assert.EqualValues(t, 1, admins)
}

func TestParseCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, config.ParseCorsOrigins(""))
	assert.Equal(t, []string{"http://a", "http://b"}, config.ParseCorsOrigins(" http://a, ,http://b "))
}
