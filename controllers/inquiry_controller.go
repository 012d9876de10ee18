package controllers

import (
	"net/http"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type answeredPayload struct {
	Answered *bool `json:"answered"`
}

type InquiryController struct {
	Inquiries *services.InquiryService
}

func NewInquiryController(inquiries *services.InquiryService) *InquiryController {
	return &InquiryController{Inquiries: inquiries}
}

// GET /api/account/inquiries
func (ic *InquiryController) ListMine(c *gin.Context) {
	list, err := ic.Inquiries.ListForClient(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// POST /api/account/inquiries
func (ic *InquiryController) Create(c *gin.Context) {
	var in services.InquiryInput
	if !bindJSON(c, &in) {
		return
	}
	q, err := ic.Inquiries.Create(c.Request.Context(), currentProfile(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, q)
}

// DELETE /api/account/inquiries/:id
func (ic *InquiryController) DeleteMine(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ic.Inquiries.DeleteForClient(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// GET /api/admin/inquiries
func (ic *InquiryController) AdminList(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	list, err := ic.Inquiries.ListForHotel(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// POST /api/admin/inquiries/:id/reply
func (ic *InquiryController) Reply(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var in services.ReplyInput
	if !bindJSON(c, &in) {
		return
	}
	q, err := ic.Inquiries.Reply(c.Request.Context(), hotelID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, q)
}

// PATCH /api/admin/inquiries/:id/answered with {"answered": bool}
func (ic *InquiryController) SetAnswered(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var in answeredPayload
	if !bindJSON(c, &in) {
		return
	}
	if in.Answered == nil {
		utils.JSONError(c, http.StatusBadRequest, "answered is required")
		return
	}
	q, err := ic.Inquiries.SetAnswered(c.Request.Context(), hotelID, id, *in.Answered)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, q)
}

// DELETE /api/admin/inquiries/:id
func (ic *InquiryController) Delete(c *gin.Context) {
	hotelID, ok := staffHotel(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ic.Inquiries.Delete(c.Request.Context(), hotelID, id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
