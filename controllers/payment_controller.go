package controllers

import (
	"net/http"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

// POST /api/payments/:id/simulate with {"result":"approved"|"rejected"}
func (pc *PaymentController) Simulate(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var in services.SimulateInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := pc.Payments.Simulate(c.Request.Context(), middleware.CurrentUserID(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

// GET /api/admin/payments
func (pc *PaymentController) AdminList(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	pays, err := pc.Payments.ListForHotel(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pays)
}

// PATCH /api/admin/payments/:id
func (pc *PaymentController) SetStatus(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var in services.PaymentStatusInput
	if !bindJSON(c, &in) {
		return
	}
	out, err := pc.Payments.SetStatus(c.Request.Context(), hotelID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}
