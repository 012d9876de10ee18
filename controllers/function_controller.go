package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SendBookingEmail stands in for the retired edge function. Clients treat
// the 410 answer as "email not sent" and carry on.
func SendBookingEmail(c *gin.Context) {
	c.JSON(http.StatusGone, gin.H{
		"version":  "disabled",
		"ok":       false,
		"disabled": true,
		"reason":   "send-booking-email disabled",
	})
}
