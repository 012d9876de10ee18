package controllers

import (
	"net/http"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type emailPayload struct {
	Email string `json:"email"`
}

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// POST /api/auth/signup
func (ac *AuthController) SignUp(c *gin.Context) {
	var in services.SignUpInput
	if !bindJSON(c, &in) {
		return
	}
	session, err := ac.Auth.SignUp(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, session)
}

// POST /api/auth/signin
func (ac *AuthController) SignIn(c *gin.Context) {
	var in services.SignInInput
	if !bindJSON(c, &in) {
		return
	}
	session, err := ac.Auth.SignIn(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}

// POST /api/auth/signout
func (ac *AuthController) SignOut(c *gin.Context) {
	if err := ac.Auth.SignOut(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"signed_out": true})
}

// GET /api/auth/session
func (ac *AuthController) Session(c *gin.Context) {
	session, err := ac.Auth.Session(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if claims := middleware.CurrentClaims(c); claims != nil && claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		session.ExpiresAt = &exp
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}

// POST /api/auth/forgot always answers OK so callers cannot probe for
// registered emails.
func (ac *AuthController) Forgot(c *gin.Context) {
	var in emailPayload
	if !bindJSON(c, &in) {
		return
	}
	if err := ac.Auth.ForgotPassword(c.Request.Context(), in.Email); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "if the email is registered a reset link was sent"})
}

// POST /api/auth/reset
func (ac *AuthController) Reset(c *gin.Context) {
	var in services.ResetPasswordInput
	if !bindJSON(c, &in) {
		return
	}
	if err := ac.Auth.ResetPassword(c.Request.Context(), in); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "password updated"})
}

// POST /api/auth/resend
func (ac *AuthController) Resend(c *gin.Context) {
	var in emailPayload
	if !bindJSON(c, &in) {
		return
	}
	if err := ac.Auth.ResendVerification(c.Request.Context(), in.Email); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "verification email sent"})
}

// GET /api/auth/confirm?token=
func (ac *AuthController) Confirm(c *gin.Context) {
	if err := ac.Auth.ConfirmEmail(c.Request.Context(), c.Query("token")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"confirmed": true})
}
