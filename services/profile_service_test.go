package services

import (
	"testing"

	"hotel-booking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffManagement(t *testing.T) {
	f := newFixture(t)
	f.client(t, "manager@example.com")
	guest := f.client(t, "guest@example.com")

	outsider := f.client(t, "outsider@example.com")
	other := models.Hotel{Name: "Other"}
	require.NoError(t, f.db.Create(&other).Error)
	require.NoError(t, f.db.Model(&models.Profile{}).Where("user_id = ?", outsider.ID).Update("hotel_id", other.ID).Error)

	staff, err := f.profiles.ListStaff(f.ctx, f.hotel.ID)
	require.NoError(t, err)
	emails := []string{}
	for _, s := range staff {
		emails = append(emails, s.Email)
	}
	assert.ElementsMatch(t, []string{"manager@example.com", "guest@example.com"}, emails)

	p, err := f.profiles.UpdateRole(f.ctx, f.hotel.ID, guest.ID, RoleInput{Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)

	_, err = f.profiles.UpdateRole(f.ctx, f.hotel.ID, guest.ID, RoleInput{Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.profiles.UpdateRole(f.ctx, f.hotel.ID, outsider.ID, RoleInput{Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.profiles.UpdateRole(f.ctx, f.hotel.ID, "nobody", RoleInput{Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrNotFound)

}

func TestHotelOf(t *testing.T) {
	_, err := HotelOf(models.Profile{})
	assert.ErrorIs(t, err, ErrForbidden)

	id := uint(3)
	got, err := HotelOf(models.Profile{HotelID: &id})
	require.NoError(t, err)
	assert.EqualValues(t, 3, got)
}

func TestHotelService(t *testing.T) {
	f := newFixture(t)

	h, err := f.hotels.Default(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, f.hotel.ID, h.ID)

	updated, err := f.hotels.Update(f.ctx, h.ID, HotelInput{Name: "Sheraton Salta", Phone: "+54 387", Email: "info@sheraton.example"})
	require.NoError(t, err)
	assert.Equal(t, "+54 387", updated.Phone)

	_, err = f.hotels.Update(f.ctx, h.ID, HotelInput{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.hotels.Update(f.ctx, h.ID, HotelInput{Name: "x", Email: "not-mail"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.hotels.Update(f.ctx, h.ID, HotelInput{Name: "Renamed"})
	assert.ErrorIs(t, err, ErrConflict)
	still, err := f.hotels.Default(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, h.ID, still.ID)
	assert.Equal(t, "+54 387", still.Phone)

	other := models.Hotel{Name: "Annex"}
	require.NoError(t, f.db.Create(&other).Error)
	renamed, err := f.hotels.Update(f.ctx, other.ID, HotelInput{Name: "Annex North"})
	require.NoError(t, err)
	assert.Equal(t, "Annex North", renamed.Name)

	missing := NewHotelService(f.db, "Nowhere")
	id, err := missing.DefaultID(f.ctx)
	require.NoError(t, err)
	assert.Nil(t, id)
}
