package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"hotel-booking/models"
	"hotel-booking/storage"
)

var imageNamePattern = regexp.MustCompile(`(?i)\.(jpe?g|png|webp|gif|bmp|heic|heif)$`)

const (
	indexFile     = "index.json"
	amenitiesFile = "amenities.json"
)

// Folders searched, in order, for the landing page hero image.
var heroFolders = []string{"hero", "hotel", "demo"}

type Photo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

type PhotoService struct {
	Bucket    storage.Bucket
	Signer    *storage.URLSigner
	SignedTTL time.Duration
}

func NewPhotoService(bucket storage.Bucket, signer *storage.URLSigner, signedTTL time.Duration) *PhotoService {
	return &PhotoService{Bucket: bucket, Signer: signer, SignedTTL: signedTTL}
}

func IsImageName(name string) bool {
	return imageNamePattern.MatchString(name)
}

// OrderByIndex puts the names listed in index first, in index order, then
// the remaining names in their given order. Index entries that are not in
// names are dropped.
func OrderByIndex(names, index []string) []string {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	out := make([]string, 0, len(names))
	used := make(map[string]bool, len(names))
	for _, n := range index {
		if present[n] && !used[n] {
			out = append(out, n)
			used[n] = true
		}
	}
	for _, n := range names {
		if !used[n] {
			out = append(out, n)
		}
	}
	return out
}

func (s *PhotoService) readStrings(ctx context.Context, objectPath string) []string {
	rc, err := s.Bucket.Get(ctx, objectPath)
	if err != nil {
		if !errors.Is(err, storage.ErrObjectNotFound) {
			log.Printf("warning: read %s: %v", objectPath, err)
		}
		return nil
	}
	defer rc.Close()

	var out []string
	if err := json.NewDecoder(rc).Decode(&out); err != nil {
		log.Printf("warning: %s is not a JSON string array: %v", objectPath, err)
		return nil
	}
	return out
}

// ListPhotos returns the images of a folder, index.json order first.
func (s *PhotoService) ListPhotos(ctx context.Context, folder string) ([]Photo, error) {
	folder = strings.Trim(folder, "/")
	objs, err := s.Bucket.List(ctx, folder)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(objs))
	for _, o := range objs {
		if IsImageName(o.Name) {
			names = append(names, o.Name)
		}
	}
	ordered := OrderByIndex(names, s.readStrings(ctx, folder+"/"+indexFile))

	photos := make([]Photo, 0, len(ordered))
	for _, n := range ordered {
		p := folder + "/" + n
		photos = append(photos, Photo{Name: n, Path: p, URL: s.Bucket.PublicURL(p)})
	}
	return photos, nil
}

// Amenities reads the folder's amenities.json; missing or malformed files
// yield an empty list.
func (s *PhotoService) Amenities(ctx context.Context, folder string) []string {
	raw := s.readStrings(ctx, strings.Trim(folder, "/")+"/"+amenitiesFile)
	out := make([]string, 0, len(raw))
	for _, a := range raw {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func (s *PhotoService) RoomThumbnail(ctx context.Context, roomID uint) string {
	photos, err := s.ListPhotos(ctx, storage.RoomFolder(roomID))
	if err != nil {
		log.Printf("warning: list photos of room %d: %v", roomID, err)
		return ""
	}
	if len(photos) == 0 {
		return ""
	}
	return photos[0].URL
}

func (s *PhotoService) Thumbnails(ctx context.Context, rooms []models.Room) map[uint]string {
	out := make(map[uint]string, len(rooms))
	for _, r := range rooms {
		out[r.ID] = s.RoomThumbnail(ctx, r.ID)
	}
	return out
}

func (s *PhotoService) SignedURL(objectPath string) (string, error) {
	return s.Signer.SignedURL(objectPath, s.SignedTTL)
}

// HeroImage returns a signed URL for the first photo of the first non empty
// hero folder, or "" when none has photos.
func (s *PhotoService) HeroImage(ctx context.Context) (string, error) {
	for _, folder := range heroFolders {
		photos, err := s.ListPhotos(ctx, folder)
		if err != nil {
			return "", err
		}
		if len(photos) > 0 {
			return s.SignedURL(photos[0].Path)
		}
	}
	return "", nil
}
