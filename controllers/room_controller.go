package controllers

import (
	"net/http"

	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/storage"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

// roomCard is a room as the browse page lists it.
type roomCard struct {
	models.Room
	Thumbnail string `json:"thumbnail"`
}

type availableRoomsPayload struct {
	HotelID  uint   `json:"p_hotel_id"`
	CheckIn  string `json:"p_check_in"`
	CheckOut string `json:"p_check_out"`
	Guests   int    `json:"p_guests"`
}

type RoomController struct {
	Rooms        *services.RoomService
	Stays        *services.AvailabilityService
	Photos       *services.PhotoService
	Hotels       *services.HotelService
}

func NewRoomController(rooms *services.RoomService, availability *services.AvailabilityService, photos *services.PhotoService, hotels *services.HotelService) *RoomController {
	return &RoomController{Rooms: rooms, Stays: availability, Photos: photos, Hotels: hotels}
}

func (rc *RoomController) cards(c *gin.Context, rooms []models.Room) []roomCard {
	thumbs := rc.Photos.Thumbnails(c.Request.Context(), rooms)
	out := make([]roomCard, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomCard{Room: r, Thumbnail: thumbs[r.ID]})
	}
	return out
}

// GET /api/rooms?hotel_id&guests
func (rc *RoomController) List(c *gin.Context) {
	hotelID, err := rc.Hotels.Resolve(c.Request.Context(), queryUint(c, "hotel_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	rooms, err := rc.Rooms.ListOpen(c.Request.Context(), hotelID, queryInt(c, "guests", 1))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/:id returns the room with its gallery and amenities.
func (rc *RoomController) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	room, err := rc.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	folder := storage.RoomFolder(room.ID)
	photos, err := rc.Photos.ListPhotos(c.Request.Context(), folder)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room":      room,
		"photos":    photos,
		"amenities": rc.Photos.Amenities(c.Request.Context(), folder),
	})
}

// GET /api/rooms/:id/occupied
func (rc *RoomController) Occupied(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	dates, err := rc.Stays.OccupiedDates(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"room_id": id, "dates": dates})
}

// GET /api/availability?hotel_id&check_in&check_out&guests
//
// An incomplete or inverted range is not an error: the open rooms that fit
// the party are listed and dates_valid is false.
func (rc *RoomController) Availability(c *gin.Context) {
	ctx := c.Request.Context()
	hotelID, err := rc.Hotels.Resolve(ctx, queryUint(c, "hotel_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	guests := queryInt(c, "guests", 1)
	if guests < 1 {
		guests = 1
	}

	var rooms []models.Room
	checkIn, checkOut, dateErr := services.StayDates(c.Query("check_in"), c.Query("check_out"))
	datesValid := dateErr == nil
	if datesValid {
		rooms, err = rc.Stays.AvailableRooms(ctx, services.AvailabilityQuery{
			HotelID: hotelID, CheckIn: checkIn, CheckOut: checkOut, Guests: guests,
		})
	} else {
		rooms, err = rc.Rooms.ListOpen(ctx, hotelID, guests)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"hotel_id":    hotelID,
		"guests":      guests,
		"dates_valid": datesValid,
		"rooms":       rc.cards(c, rooms),
	})
}

// POST /api/rpc/get_available_rooms
func (rc *RoomController) AvailableRoomsRPC(c *gin.Context) {
	var in availableRoomsPayload
	if !bindJSON(c, &in) {
		return
	}
	ctx := c.Request.Context()
	hotelID, err := rc.Hotels.Resolve(ctx, in.HotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	checkIn, checkOut, err := services.StayDates(in.CheckIn, in.CheckOut)
	if err != nil {
		respondError(c, err)
		return
	}
	rooms, err := rc.Stays.AvailableRooms(ctx, services.AvailabilityQuery{
		HotelID: hotelID, CheckIn: checkIn, CheckOut: checkOut, Guests: in.Guests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// ---- admin ----

// GET /api/admin/rooms
func (rc *RoomController) AdminList(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	rooms, err := rc.Rooms.ListForHotel(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// POST /api/admin/rooms
func (rc *RoomController) Create(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	var in services.RoomInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := rc.Rooms.Create(c.Request.Context(), hotelID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// PATCH /api/admin/rooms/:id
func (rc *RoomController) Update(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var patch services.RoomPatch
	if !bindJSON(c, &patch) {
		return
	}
	room, err := rc.Rooms.Update(c.Request.Context(), hotelID, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// POST /api/admin/rooms/:id/toggle
func (rc *RoomController) Toggle(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	room, err := rc.Rooms.Toggle(c.Request.Context(), hotelID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DELETE /api/admin/rooms/:id
func (rc *RoomController) Delete(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Rooms.Delete(c.Request.Context(), hotelID, id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
