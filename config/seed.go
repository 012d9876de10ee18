package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"hotel-booking/models"
	"hotel-booking/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedDefaults makes sure the default hotel exists and that at least one
// admin can sign in to it.
func SeedDefaults(db *gorm.DB, cfg Config) error {
	hotel, err := ensureHotel(db, SeedHotel{Name: cfg.DefaultHotelName})
	if err != nil {
		return err
	}

	var admins int64
	if err := db.Model(&models.Profile{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error; err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}

	email := EnvOrDefault("SEED_ADMIN_EMAIL", "admin@hotel.local")
	password := EnvOrDefault("SEED_ADMIN_PASSWORD", "admin123")
	if _, err := ensureUser(db, SeedUser{
		Email:    email,
		Password: password,
		FullName: "Hotel Admin",
		Role:     models.RoleAdmin,
	}, hotel.ID); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	log.Printf("Default admin seeded (%s)", email)
	return nil
}

type SeedFile struct {
	Hotels []SeedHotel `yaml:"hotels"`
	Users  []SeedUser  `yaml:"users"`
}

type SeedHotel struct {
	Name    string     `yaml:"name"`
	Address string     `yaml:"address"`
	Phone   string     `yaml:"phone"`
	Email   string     `yaml:"email"`
	Website string     `yaml:"website"`
	Rooms   []SeedRoom `yaml:"rooms"`
}

type SeedRoom struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Capacity    int      `yaml:"capacity"`
	BasePrice   float64  `yaml:"base_price"`
	Status      string   `yaml:"status"`
	Amenities   []string `yaml:"amenities"`
	// Photos are file paths relative to the seed file; their order becomes index.json.
	Photos []string `yaml:"photos"`
}

type SeedUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	FullName string `yaml:"full_name"`
	Role     string `yaml:"role"`
	Hotel    string `yaml:"hotel"`
}

type SeedSummary struct {
	Hotels int
	Rooms  int
	Users  int
	Photos int
}

func LoadSeedFile(path string) (SeedFile, error) {
	var sf SeedFile
	raw, err := os.ReadFile(path)
	if err != nil {
		return sf, err
	}
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return sf, fmt.Errorf("parse %s: %w", path, err)
	}
	return sf, nil
}

// ApplySeed upserts hotels, rooms and users from sf. Rooms are matched by
// (hotel, name) so running the same file twice is a no-op. Photo paths are
// resolved against baseDir.
func ApplySeed(ctx context.Context, db *gorm.DB, bucket storage.Bucket, sf SeedFile, baseDir string) (SeedSummary, error) {
	var sum SeedSummary
	hotelIDs := map[string]uint{}

	for _, h := range sf.Hotels {
		hotel, err := ensureHotel(db, h)
		if err != nil {
			return sum, err
		}
		hotelIDs[hotel.Name] = hotel.ID
		sum.Hotels++

		for _, r := range h.Rooms {
			room, err := ensureRoom(db, hotel.ID, r)
			if err != nil {
				return sum, err
			}
			sum.Rooms++
			if bucket == nil {
				continue
			}
			n, err := seedRoomFiles(ctx, bucket, room.ID, r, baseDir)
			if err != nil {
				return sum, err
			}
			sum.Photos += n
		}
	}

	for _, u := range sf.Users {
		var hotelID uint
		if u.Hotel != "" {
			id, ok := hotelIDs[u.Hotel]
			if !ok {
				var h models.Hotel
				if err := db.Where("name = ?", u.Hotel).First(&h).Error; err != nil {
					return sum, fmt.Errorf("user %s: hotel %q: %w", u.Email, u.Hotel, err)
				}
				id = h.ID
			}
			hotelID = id
		}
		if _, err := ensureUser(db, u, hotelID); err != nil {
			return sum, err
		}
		sum.Users++
	}
	return sum, nil
}

func ensureHotel(db *gorm.DB, h SeedHotel) (models.Hotel, error) {
	name := strings.TrimSpace(h.Name)
	if name == "" {
		return models.Hotel{}, errors.New("seed hotel without name")
	}
	hotel := models.Hotel{Name: name, Address: h.Address, Phone: h.Phone, Email: h.Email, Website: h.Website}
	if err := db.Where(models.Hotel{Name: name}).FirstOrCreate(&hotel).Error; err != nil {
		return hotel, fmt.Errorf("seed hotel %s: %w", name, err)
	}
	return hotel, nil
}

func ensureRoom(db *gorm.DB, hotelID uint, r SeedRoom) (models.Room, error) {
	status := r.Status
	if status == "" {
		status = models.RoomStatusOpen
	}
	capacity := r.Capacity
	if capacity < 1 {
		capacity = 1
	}
	var room models.Room
	err := db.Where("hotel_id = ? AND name = ?", hotelID, r.Name).
		Attrs(models.Room{
			HotelID:     hotelID,
			Name:        r.Name,
			Description: r.Description,
			Capacity:    capacity,
			BasePrice:   r.BasePrice,
			Status:      status,
		}).
		FirstOrCreate(&room).Error
	if err != nil {
		return room, fmt.Errorf("seed room %s: %w", r.Name, err)
	}
	return room, nil
}

func ensureUser(db *gorm.DB, u SeedUser, hotelID uint) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	role := u.Role
	if role == "" {
		role = models.RoleClient
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return user, err
		}
		now := db.NowFunc()
		user = models.User{
			ID:               uuid.NewString(),
			Email:            email,
			Password:         string(hash),
			FullName:         u.FullName,
			EmailConfirmedAt: &now,
		}
		if err := db.Create(&user).Error; err != nil {
			return user, fmt.Errorf("seed user %s: %w", email, err)
		}
	} else if err != nil {
		return user, err
	}

	profile := models.Profile{UserID: user.ID, Role: role}
	if u.FullName != "" {
		name := u.FullName
		profile.FullName = &name
	}
	if hotelID != 0 {
		id := hotelID
		profile.HotelID = &id
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "hotel_id", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return user, fmt.Errorf("seed profile %s: %w", email, err)
	}
	return user, nil
}

func seedRoomFiles(ctx context.Context, bucket storage.Bucket, roomID uint, r SeedRoom, baseDir string) (int, error) {
	folder := storage.RoomFolder(roomID)
	if err := bucket.Put(ctx, folder+"/.keep", bytes.NewReader(nil), "text/plain"); err != nil {
		return 0, err
	}

	if len(r.Amenities) > 0 {
		if err := putJSON(ctx, bucket, folder+"/amenities.json", r.Amenities); err != nil {
			return 0, err
		}
	}

	order := make([]string, 0, len(r.Photos))
	for _, p := range r.Photos {
		src := p
		if !filepath.IsAbs(src) {
			src = filepath.Join(baseDir, p)
		}
		f, err := os.Open(src)
		if err != nil {
			return len(order), fmt.Errorf("seed photo %s: %w", p, err)
		}
		name := storage.ObjectName(filepath.Base(p))
		err = bucket.Put(ctx, folder+"/"+name, f, "")
		f.Close()
		if err != nil {
			return len(order), fmt.Errorf("upload %s: %w", name, err)
		}
		order = append(order, name)
	}
	if len(order) > 0 {
		if err := putJSON(ctx, bucket, folder+"/index.json", order); err != nil {
			return len(order), err
		}
	}
	return len(order), nil
}

func putJSON(ctx context.Context, bucket storage.Bucket, objectPath string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return bucket.Put(ctx, objectPath, bytes.NewReader(raw), "application/json")
}
