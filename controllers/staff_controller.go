package controllers

import (
	"net/http"
	"strings"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type StaffController struct {
	Profiles *services.ProfileService
}

func NewStaffController(profiles *services.ProfileService) *StaffController {
	return &StaffController{Profiles: profiles}
}

// GET /api/manager/staff
func (sc *StaffController) List(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	staff, err := sc.Profiles.ListStaff(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, staff)
}

// PATCH /api/manager/staff/:user_id with {"role": "..."}
func (sc *StaffController) UpdateRole(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid user_id")
		return
	}
	var in services.RoleInput
	if !bindJSON(c, &in) {
		return
	}
	profile, err := sc.Profiles.UpdateRole(c.Request.Context(), hotelID, userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profile)
}
