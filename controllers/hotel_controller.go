package controllers

import (
	"net/http"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	Hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) *HotelController {
	return &HotelController{Hotels: hotels}
}

// GET /api/hotels/default
func (hc *HotelController) Default(c *gin.Context) {
	h, err := hc.Hotels.Default(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, h)
}

// GET /api/admin/hotel
func (hc *HotelController) Get(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	h, err := hc.Hotels.Get(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, h)
}

// PUT /api/admin/hotel
func (hc *HotelController) Update(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	var in services.HotelInput
	if !bindJSON(c, &in) {
		return
	}
	h, err := hc.Hotels.Update(c.Request.Context(), hotelID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, h)
}
