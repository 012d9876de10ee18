package app

import (
	"context"
	"fmt"
	"log"

	"hotel-booking/clock"
	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/middleware"
	"hotel-booking/routes"
	"hotel-booking/services"
	"hotel-booking/storage"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the external resources an App is built on.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Bucket storage.Bucket
	Mailer utils.Mailer
	Clock  clock.Clock
}

// App is the wired service: every HTTP handler plus the services the CLI
// runs directly.
type App struct {
	Config config.Config
	Deps   Deps

	Hotels       *services.HotelService
	Profiles     *services.ProfileService
	Auth         *services.AuthService
	Rooms        *services.RoomService
	Reservations *services.ReservationService
	Payments     *services.PaymentService
	Photos       *services.PhotoService

	Router *gin.Engine
}

// NewBucket picks the object store named by STORAGE_DRIVER.
func NewBucket(cfg config.Config) (storage.Bucket, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return storage.NewLocalBucket(cfg.StorageDir, cfg.PublicBaseURL+"/storage/public")
	case "cloudinary":
		c := cfg.Cloudinary
		return storage.NewCloudinaryBucket(c.CloudName, c.APIKey, c.APISecret, c.Folder)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

// Connect opens the database, Redis and the bucket described by cfg. The
// database is migrated and seeded with the default hotel.
func Connect(ctx context.Context, cfg config.Config) (Deps, error) {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return Deps{}, fmt.Errorf("database: %w", err)
	}
	if err := config.Migrate(db); err != nil {
		return Deps{}, err
	}
	if err := config.SeedDefaults(db, cfg); err != nil {
		return Deps{}, fmt.Errorf("seed defaults: %w", err)
	}

	rdb, err := config.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		return Deps{}, fmt.Errorf("redis: %w", err)
	}
	if rdb == nil {
		log.Println("⚠️  REDIS_URL not set, signed-out tokens are kept in memory")
	}

	bucket, err := NewBucket(cfg)
	if err != nil {
		return Deps{}, fmt.Errorf("storage: %w", err)
	}

	mailer := utils.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	return Deps{DB: db, Redis: rdb, Bucket: bucket, Mailer: mailer, Clock: clock.NewSystem()}, nil
}

// New wires services, controllers and the router on top of deps.
func New(cfg config.Config, deps Deps) *App {
	if deps.Clock == nil {
		deps.Clock = clock.NewSystem()
	}
	if deps.Mailer == nil {
		deps.Mailer = utils.LogMailer{}
	}

	var deny services.Denylist
	if deps.Redis != nil {
		deny = services.NewRedisDenylist(deps.Redis, deps.Clock)
	} else {
		deny = services.NewMemoryDenylist(deps.Clock)
	}

	db := deps.DB
	hotels := services.NewHotelService(db, cfg.DefaultHotelName)
	profiles := services.NewProfileService(db, hotels)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL, deps.Clock)
	auth := &services.AuthService{
		DB:          db,
		Profiles:    profiles,
		Tokens:      tokens,
		Denylist:    deny,
		Mailer:      deps.Mailer,
		Clock:       deps.Clock,
		FrontendURL: cfg.FrontendURL,
	}
	signer := storage.NewURLSigner(cfg.JWTSecret, cfg.PublicBaseURL+"/storage/signed", deps.Clock)
	photos := services.NewPhotoService(deps.Bucket, signer, cfg.SignedURLTTL)
	rooms := services.NewRoomService(db, deps.Bucket, deps.Clock)
	availability := services.NewAvailabilityService(db)
	reservations := services.NewReservationService(db, deps.Clock, cfg.PendingReservationTTL)
	payments := services.NewPaymentService(db, deps.Clock)
	inquiries := services.NewInquiryService(db, hotels)
	kpis := services.NewKPIService(db)

	handlers := routes.Handlers{
		Auth:         controllers.NewAuthController(auth),
		Account:      controllers.NewAccountController(auth),
		Hotels:       controllers.NewHotelController(hotels),
		Rooms:        controllers.NewRoomController(rooms, availability, photos, hotels),
		Reservations: controllers.NewReservationController(reservations, hotels),
		Payments:     controllers.NewPaymentController(payments),
		Inquiries:    controllers.NewInquiryController(inquiries),
		KPIs:         controllers.NewKPIController(kpis, deps.Clock),
		Staff:        controllers.NewStaffController(profiles),
		Storage:      controllers.NewStorageController(deps.Bucket, signer, photos),
	}
	authn := middleware.NewAuthenticator(tokens, deny, profiles)

	return &App{
		Config:       cfg,
		Deps:         deps,
		Hotels:       hotels,
		Profiles:     profiles,
		Auth:         auth,
		Rooms:        rooms,
		Reservations: reservations,
		Payments:     payments,
		Photos:       photos,
		Router:       routes.SetupRouter(handlers, authn, cfg.CORSOrigins),
	}
}

// Close releases the connections opened by Connect.
func (d Deps) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			log.Printf("warning: close redis: %v", err)
		}
	}
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func (a *App) Close() { a.Deps.Close() }
