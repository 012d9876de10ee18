package services

import (
	"strings"
	"testing"

	"hotel-booking/models"
	"hotel-booking/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRoomCRUD(t *testing.T) {
	f := newFixture(t)

	_, err := f.rooms.Create(f.ctx, f.hotel.ID, RoomInput{Name: "Bad", Capacity: 0, BasePrice: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.rooms.Create(f.ctx, f.hotel.ID, RoomInput{Name: "Bad", Capacity: 1, BasePrice: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.rooms.Create(f.ctx, f.hotel.ID, RoomInput{Name: "Bad", Capacity: 1, Status: "haunted"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	room, err := f.rooms.Create(f.ctx, f.hotel.ID, RoomInput{Name: " Suite ", Description: "Sea view", Capacity: 2, BasePrice: 99.9})
	require.NoError(t, err)
	assert.Equal(t, "Suite", room.Name)
	assert.Equal(t, models.RoomStatusOpen, room.Status)
	assert.Equal(t, f.hotel.ID, room.HotelID)

	rc, err := f.bucket.Get(f.ctx, storage.RoomFolder(room.ID)+"/.keep")
	require.NoError(t, err)
	rc.Close()

	updated, err := f.rooms.Update(f.ctx, f.hotel.ID, room.ID, RoomPatch{Capacity: ptr(3), Status: ptr(models.RoomStatusMaintenance)})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Capacity)
	assert.Equal(t, "Sea view", updated.Description)
	assert.Equal(t, models.RoomStatusMaintenance, updated.Status)

	_, err = f.rooms.Update(f.ctx, f.hotel.ID, room.ID, RoomPatch{Capacity: ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.rooms.Update(f.ctx, f.hotel.ID+1, room.ID, RoomPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	toggled, err := f.rooms.Toggle(f.ctx, f.hotel.ID, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOpen, toggled.Status)
	toggled, err = f.rooms.Toggle(f.ctx, f.hotel.ID, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusClosed, toggled.Status)

	all, err := f.rooms.ListForHotel(f.ctx, f.hotel.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	open, err := f.rooms.ListOpen(f.ctx, f.hotel.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestDeleteRoomWithActiveStay(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "Suite", 2, 100)
	stay := f.reservation(t, room, "c", "2025-03-10", "2025-03-12", models.ReservationConfirmed, 200)

	assert.ErrorIs(t, f.rooms.Delete(f.ctx, f.hotel.ID, room.ID), ErrConflict)

	require.NoError(t, f.db.Model(&stay).Update("status", models.ReservationCancelled).Error)
	require.NoError(t, f.rooms.Delete(f.ctx, f.hotel.ID, room.ID))
	_, err := f.rooms.Get(f.ctx, room.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRoomRemovesPhotos(t *testing.T) {
	f := newFixture(t)
	room, err := f.rooms.Create(f.ctx, f.hotel.ID, RoomInput{Name: "Suite", Capacity: 2, BasePrice: 80})
	require.NoError(t, err)
	folder := storage.RoomFolder(room.ID)
	require.NoError(t, f.bucket.Put(f.ctx, folder+"/a.jpg", strings.NewReader("img"), "image/jpeg"))
	require.NoError(t, f.bucket.Put(f.ctx, folder+"/index.json", strings.NewReader(`["a.jpg"]`), "application/json"))

	require.NoError(t, f.rooms.Delete(f.ctx, f.hotel.ID, room.ID))

	left, err := f.bucket.List(f.ctx, folder)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestListOpenRespectsCapacity(t *testing.T) {
	f := newFixture(t)
	small := f.room(t, "Small", 1, 10)
	big := f.room(t, "Big", 4, 10)

	rooms, err := f.rooms.ListOpen(f.ctx, f.hotel.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint{small.ID, big.ID}, roomIDs(rooms))

	rooms, err = f.rooms.ListOpen(f.ctx, f.hotel.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{big.ID}, roomIDs(rooms))
}
