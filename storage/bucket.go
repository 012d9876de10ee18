package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// BucketName is the logical bucket every backend serves.
const BucketName = "room-photos"

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidPath    = errors.New("invalid object path")
)

type Object struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bucket is a flat object store addressed by slash separated paths.
// List returns the direct children of a folder sorted by name.
type Bucket interface {
	Put(ctx context.Context, objectPath string, r io.Reader, contentType string) error
	Get(ctx context.Context, objectPath string) (io.ReadCloser, error)
	List(ctx context.Context, folder string) ([]Object, error)
	Remove(ctx context.Context, objectPaths ...string) error
	PublicURL(objectPath string) string
}

// CleanPath normalises an object path and rejects escapes out of the bucket.
func CleanPath(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

func cleanFolder(folder string) (string, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return "", nil
	}
	return CleanPath(folder)
}

// RoomFolder is the folder holding a room's photos and sidecars.
func RoomFolder(roomID uint) string {
	return fmt.Sprintf("rooms/%d", roomID)
}
