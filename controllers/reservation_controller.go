package controllers

import (
	"net/http"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

const qrSize = 256

// confirmReservationPayload mirrors the RPC argument names. The client is
// always the signed-in user, so p_client_id is ignored.
type confirmReservationPayload struct {
	HotelID  uint   `json:"p_hotel_id"`
	ClientID string `json:"p_client_id"`
	RoomID   uint   `json:"p_room_id"`
	CheckIn  string `json:"p_check_in"`
	CheckOut string `json:"p_check_out"`
	Guests   int    `json:"p_guests"`
	Provider string `json:"p_provider"`
}

type ReservationController struct {
	Reservations *services.ReservationService
	Hotels       *services.HotelService
}

func NewReservationController(reservations *services.ReservationService, hotels *services.HotelService) *ReservationController {
	return &ReservationController{Reservations: reservations, Hotels: hotels}
}

// POST /api/rpc/confirm_reservation
func (rc *ReservationController) Confirm(c *gin.Context) {
	var in confirmReservationPayload
	if !bindJSON(c, &in) {
		return
	}
	hotelID := in.HotelID
	if hotelID == 0 {
		if p := currentProfile(c); p.HotelID != nil {
			hotelID = *p.HotelID
		}
	}
	hotelID, err := rc.Hotels.Resolve(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}

	out, err := rc.Reservations.Confirm(c.Request.Context(), services.ConfirmReservationInput{
		HotelID:  hotelID,
		ClientID: middleware.CurrentUserID(c),
		RoomID:   in.RoomID,
		CheckIn:  in.CheckIn,
		CheckOut: in.CheckOut,
		Guests:   in.Guests,
		Provider: in.Provider,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, out)
}

// GET /api/account/reservations
func (rc *ReservationController) ListMine(c *gin.Context) {
	list, err := rc.Reservations.ListForClient(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// POST /api/reservations/:id/payments
func (rc *ReservationController) RetryPayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var in services.RetryPaymentInput
	if c.Request.ContentLength > 0 && !bindJSON(c, &in) {
		return
	}
	pay, err := rc.Reservations.RetryPayment(c.Request.Context(), middleware.CurrentUserID(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pay)
}

// GET /api/reservations/:id/qr renders the booking code as a PNG.
func (rc *ReservationController) QRCode(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	res, err := rc.Reservations.GetForClient(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	png, err := utils.GenerateQRCode(res.BookingCode(), qrSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/png", png)
}

// GET /api/admin/reservations
func (rc *ReservationController) AdminList(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	rows, err := rc.Reservations.ListForHotel(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// PATCH /api/admin/reservations/:id
func (rc *ReservationController) UpdateStatus(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var in services.ReservationStatusInput
	if !bindJSON(c, &in) {
		return
	}
	res, err := rc.Reservations.UpdateStatus(c.Request.Context(), hotelID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}
