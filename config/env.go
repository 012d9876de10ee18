package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"hotel-booking/storage"
)

const DefaultHotelName = "Sheraton Salta"

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Config is the process configuration, read from the environment once at
// start-up. godotenv has already merged any .env file by then.
type Config struct {
	Port        string
	DBDriver    string
	SQLitePath  string
	CORSOrigins []string

	JWTSecret string
	JWTTTL    time.Duration

	RedisURL string

	StorageDriver string
	StorageDir    string
	PublicBaseURL string
	SignedURLTTL  time.Duration
	Cloudinary    CloudinaryConfig

	DefaultHotelName      string
	PendingReservationTTL time.Duration
	ExpiryInterval        time.Duration
	FrontendURL           string

	SMTP SMTPConfig
}

func Load() Config {
	port := EnvOrDefault("PORT", "8080")
	cfg := Config{
		Port:        port,
		DBDriver:    strings.ToLower(EnvOrDefault("DB_DRIVER", "mysql")),
		SQLitePath:  EnvOrDefault("DB_PATH", "hotel.db"),
		CORSOrigins: ParseCorsOrigins(os.Getenv("CORS_ORIGINS")),

		JWTSecret: EnvOrDefault("JWT_SECRET", ""),
		JWTTTL:    durationEnv("JWT_TTL", time.Hour),

		RedisURL: EnvOrDefault("REDIS_URL", ""),

		StorageDriver: strings.ToLower(EnvOrDefault("STORAGE_DRIVER", "local")),
		StorageDir:    EnvOrDefault("STORAGE_DIR", "./uploads"),
		PublicBaseURL: strings.TrimRight(EnvOrDefault("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		SignedURLTTL:  durationEnv("SIGNED_URL_TTL", time.Hour),
		Cloudinary: CloudinaryConfig{
			CloudName: EnvOrDefault("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    EnvOrDefault("CLOUDINARY_API_KEY", ""),
			APISecret: EnvOrDefault("CLOUDINARY_API_SECRET", ""),
			Folder:    EnvOrDefault("CLOUDINARY_FOLDER", storage.BucketName),
		},

		DefaultHotelName:      EnvOrDefault("DEFAULT_HOTEL_NAME", DefaultHotelName),
		PendingReservationTTL: durationEnv("PENDING_RESERVATION_TTL", 30*time.Minute),
		ExpiryInterval:        durationEnv("EXPIRY_INTERVAL", 5*time.Minute),
		FrontendURL:           strings.TrimRight(EnvOrDefault("FRONTEND_URL", "http://localhost:5173"), "/"),

		SMTP: SMTPConfig{
			Host:     EnvOrDefault("SMTP_HOST", ""),
			Port:     intEnv("SMTP_PORT", 587),
			Username: EnvOrDefault("SMTP_USERNAME", ""),
			Password: EnvOrDefault("SMTP_PASSWORD", ""),
			From:     EnvOrDefault("SMTP_FROM", ""),
		},
	}
	if cfg.JWTSecret == "" {
		log.Println("⚠️  JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = "dev-secret-change-me"
	}
	return cfg
}

func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := EnvOrDefault(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("warning: invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return d
}

func intEnv(key string, def int) int {
	raw := EnvOrDefault(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("warning: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

// ParseCorsOrigins splits a comma separated list; empty means any origin.
func ParseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
