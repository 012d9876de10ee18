package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"hotel-booking/middleware"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/storage"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, utils.ErrInvalidDate), errors.Is(err, storage.ErrInvalidPath):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden), errors.Is(err, storage.ErrInvalidSignature):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound), errors.Is(err, storage.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrRoomUnavailable):
		return http.StatusConflict
	case errors.Is(err, services.ErrTokenExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		utils.JSONError(c, code, "internal server error")
		return
	}
	utils.JSONError(c, code, err.Error())
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

// bindJSON decodes the body into dst and answers 400 on malformed JSON.
// Field rules are checked by the services.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

// staffHotel returns the hotel of the admin or manager making the request.
func staffHotel(c *gin.Context) (uint, bool) {
	profile, ok := middleware.CurrentProfile(c)
	if !ok {
		utils.JSONError(c, http.StatusForbidden, "forbidden")
		return 0, false
	}
	hotelID, err := services.HotelOf(profile)
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	return hotelID, true
}

func currentProfile(c *gin.Context) models.Profile {
	p, _ := middleware.CurrentProfile(c)
	return p
}
