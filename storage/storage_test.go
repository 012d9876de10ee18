package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"hotel-booking/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	p, err := CleanPath("/rooms//7/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "rooms/7/a.jpg", p)

	_, err = CleanPath("rooms/../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = CleanPath("  ")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalBucketRoundTrip(t *testing.T) {
	ctx := context.Background()
	b, err := NewLocalBucket(t.TempDir(), "http://localhost:8080/storage/public")
	require.NoError(t, err)

	require.NoError(t, b.Put(ctx, "rooms/1/b.jpg", strings.NewReader("bbb"), "image/jpeg"))
	require.NoError(t, b.Put(ctx, "rooms/1/a.png", strings.NewReader("a"), "image/png"))
	require.NoError(t, b.Put(ctx, "rooms/1/nested/c.jpg", strings.NewReader("c"), "image/jpeg"))

	objs, err := b.List(ctx, "rooms/1")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "a.png", objs[0].Name)
	assert.Equal(t, "b.jpg", objs[1].Name)
	assert.EqualValues(t, 3, objs[1].Size)

	rc, err := b.Get(ctx, "rooms/1/b.jpg")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "bbb", string(data))

	require.NoError(t, b.Remove(ctx, "rooms/1/b.jpg", "rooms/1/missing.jpg"))
	_, err = b.Get(ctx, "rooms/1/b.jpg")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	empty, err := b.List(ctx, "rooms/404")
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.Equal(t, "http://localhost:8080/storage/public/rooms/1/a.png", b.PublicURL("rooms/1/a.png"))
}

func TestURLSigner(t *testing.T) {
	c := clock.NewFixed(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	s := NewURLSigner("secret", "http://localhost/storage/signed", c)

	u, err := s.SignedURL("rooms/3/x.jpg", time.Minute)
	require.NoError(t, err)
	token := strings.TrimPrefix(u, "http://localhost/storage/signed/")

	p, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "rooms/3/x.jpg", p)

	c.Advance(2 * time.Minute)
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	other := NewURLSigner("other", "http://localhost/storage/signed", c)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "suite-vista-rio.jpg", ObjectName("Suite Vista Río.JPG"))
	assert.Equal(t, "file.png", ObjectName("!!!.png"))
	assert.Equal(t, "photo.webp", ObjectName(`C:\tmp\photo.webp`))
}

func TestCloudinaryBucketPaths(t *testing.T) {
	b, err := NewCloudinaryBucket("demo", "key", "secret", "/room-photos/")
	require.NoError(t, err)

	id, err := b.publicID("rooms/7/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "room-photos/rooms/7/a.jpg", id)
	assert.Equal(t, "https://res.cloudinary.com/demo/raw/upload/room-photos/rooms/7/a.jpg", b.PublicURL("rooms/7/a.jpg"))

	_, err = b.publicID("../secrets")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Empty(t, b.PublicURL("../secrets"))

	_, err = b.Get(context.Background(), "../secrets")
	assert.ErrorIs(t, err, ErrInvalidPath)

	bare, err := NewCloudinaryBucket("demo", "key", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/raw/upload/hero/x.png", bare.PublicURL("hero/x.png"))
}
