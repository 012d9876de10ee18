package controllers

import (
	"net/http"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type AccountController struct {
	Auth *services.AuthService
}

func NewAccountController(auth *services.AuthService) *AccountController {
	return &AccountController{Auth: auth}
}

// PUT /api/account updates the display name and sign-in email.
func (ac *AccountController) Update(c *gin.Context) {
	var in services.AccountInput
	if !bindJSON(c, &in) {
		return
	}
	session, err := ac.Auth.UpdateAccount(c.Request.Context(), middleware.CurrentUserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}
