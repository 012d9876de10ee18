package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
	"hotel-booking/models"
)

// Handlers groups the controllers the router mounts.
type Handlers struct {
	Auth         *controllers.AuthController
	Account      *controllers.AccountController
	Hotels       *controllers.HotelController
	Rooms        *controllers.RoomController
	Reservations *controllers.ReservationController
	Payments     *controllers.PaymentController
	Inquiries    *controllers.InquiryController
	KPIs         *controllers.KPIController
	Staff        *controllers.StaffController
	Storage      *controllers.StorageController
}

func corsConfig(origins []string) cors.Config {
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "apikey", "x-client-info"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// SetupRouter mounts every route. Role checks read the caller's profile on
// each request; the token only proves who the caller is.
func SetupRouter(h Handlers, auth *middleware.Authenticator, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(corsOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	signedIn := auth.RequireAuth()
	client := auth.RequireRoles(models.RoleClient)
	admin := auth.RequireRoles(models.RoleAdmin)
	manager := auth.RequireRoles(models.RoleManager)

	store := r.Group("/storage")
	{
		store.GET("/public/*path", h.Storage.Public)
		store.GET("/signed/:token", h.Storage.Signed)
	}

	r.POST("/functions/v1/send-booking-email", controllers.SendBookingEmail)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", h.Auth.SignUp)
			authRoutes.POST("/signin", h.Auth.SignIn)
			authRoutes.POST("/forgot", h.Auth.Forgot)
			authRoutes.POST("/reset", h.Auth.Reset)
			authRoutes.POST("/resend", h.Auth.Resend)
			authRoutes.GET("/confirm", h.Auth.Confirm)
			authRoutes.POST("/signout", signedIn, h.Auth.SignOut)
			authRoutes.GET("/session", signedIn, h.Auth.Session)
		}

		// public storefront
		api.GET("/hotels/default", h.Hotels.Default)
		api.GET("/rooms", h.Rooms.List)
		api.GET("/rooms/:id", h.Rooms.Get)
		api.GET("/rooms/:id/occupied", h.Rooms.Occupied)
		api.GET("/availability", h.Rooms.Availability)
		api.GET("/photos/hero", h.Storage.Hero)

		rpc := api.Group("/rpc")
		{
			rpc.POST("/get_available_rooms", h.Rooms.AvailableRoomsRPC)
			rpc.POST("/confirm_reservation", signedIn, client, h.Reservations.Confirm)
		}

		api.PUT("/account", signedIn, h.Account.Update)
		account := api.Group("/account", signedIn, client)
		{
			account.GET("/reservations", h.Reservations.ListMine)
			account.GET("/inquiries", h.Inquiries.ListMine)
			account.POST("/inquiries", h.Inquiries.Create)
			account.DELETE("/inquiries/:id", h.Inquiries.DeleteMine)
		}

		api.POST("/payments/:id/simulate", signedIn, client, h.Payments.Simulate)
		reservations := api.Group("/reservations/:id", signedIn, client)
		{
			reservations.POST("/payments", h.Reservations.RetryPayment)
			reservations.GET("/qr", h.Reservations.QRCode)
		}

		adminRoutes := api.Group("/admin", signedIn, admin)
		{
			adminRoutes.GET("/rooms", h.Rooms.AdminList)
			adminRoutes.POST("/rooms", h.Rooms.Create)
			adminRoutes.PATCH("/rooms/:id", h.Rooms.Update)
			adminRoutes.PUT("/rooms/:id", h.Rooms.Update)
			adminRoutes.POST("/rooms/:id/toggle", h.Rooms.Toggle)
			adminRoutes.DELETE("/rooms/:id", h.Rooms.Delete)

			adminRoutes.GET("/reservations", h.Reservations.AdminList)
			adminRoutes.PATCH("/reservations/:id", h.Reservations.UpdateStatus)

			adminRoutes.GET("/payments", h.Payments.AdminList)
			adminRoutes.PATCH("/payments/:id", h.Payments.SetStatus)

			adminRoutes.GET("/inquiries", h.Inquiries.AdminList)
			adminRoutes.POST("/inquiries/:id/reply", h.Inquiries.Reply)
			adminRoutes.PATCH("/inquiries/:id/answered", h.Inquiries.SetAnswered)
			adminRoutes.DELETE("/inquiries/:id", h.Inquiries.Delete)

			adminRoutes.GET("/kpis", h.KPIs.Report)
			adminRoutes.GET("/hotel", h.Hotels.Get)
			adminRoutes.PUT("/hotel", h.Hotels.Update)
		}

		managerRoutes := api.Group("/manager", signedIn, manager)
		{
			managerRoutes.GET("/staff", h.Staff.List)
			managerRoutes.PATCH("/staff/:user_id", h.Staff.UpdateRole)
			managerRoutes.GET("/kpis", h.KPIs.Report)
		}
	}

	return r
}
