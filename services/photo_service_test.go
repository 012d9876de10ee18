package services

import (
	"strings"
	"testing"

	"hotel-booking/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderByIndex(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		index []string
		want  []string
	}{
		{"no index", []string{"a.jpg", "b.jpg"}, nil, []string{"a.jpg", "b.jpg"}},
		{"index first then rest", []string{"a.jpg", "b.jpg", "c.jpg"}, []string{"c.jpg", "a.jpg"}, []string{"c.jpg", "a.jpg", "b.jpg"}},
		{"unknown and duplicate entries dropped", []string{"a.jpg", "b.jpg"}, []string{"x.jpg", "b.jpg", "b.jpg"}, []string{"b.jpg", "a.jpg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderByIndex(tt.names, tt.index))
		})
	}
}

func (f *fixture) put(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, f.bucket.Put(f.ctx, path, strings.NewReader(body), ""))
}

func TestListPhotosAndAmenities(t *testing.T) {
	f := newFixture(t)
	folder := storage.RoomFolder(7)
	f.put(t, folder+"/.keep", "")
	f.put(t, folder+"/b.JPG", "b")
	f.put(t, folder+"/a.webp", "a")
	f.put(t, folder+"/c.heic", "c")
	f.put(t, folder+"/notes.txt", "n")
	f.put(t, folder+"/index.json", `["c.heic","missing.png"]`)
	f.put(t, folder+"/amenities.json", `["WiFi"," ","Minibar"]`)

	photos, err := f.photos.ListPhotos(f.ctx, folder)
	require.NoError(t, err)
	names := make([]string, 0, len(photos))
	for _, p := range photos {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"c.heic", "a.webp", "b.JPG"}, names)
	assert.Equal(t, "http://test/storage/public/rooms/7/c.heic", photos[0].URL)
	assert.Equal(t, photos[0].URL, f.photos.RoomThumbnail(f.ctx, 7))

	assert.Equal(t, []string{"WiFi", "Minibar"}, f.photos.Amenities(f.ctx, folder))
	assert.Empty(t, f.photos.Amenities(f.ctx, storage.RoomFolder(8)))
	assert.Equal(t, "", f.photos.RoomThumbnail(f.ctx, 8))

	f.put(t, storage.RoomFolder(9)+"/amenities.json", `{"not":"a list"}`)
	assert.Empty(t, f.photos.Amenities(f.ctx, storage.RoomFolder(9)))
}

func TestHeroImageFallsBackAcrossFolders(t *testing.T) {
	f := newFixture(t)

	url, err := f.photos.HeroImage(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, url)

	f.put(t, "demo/d.png", "d")
	f.put(t, "hotel/lobby.jpg", "h")

	url, err = f.photos.HeroImage(f.ctx)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://test/storage/signed/"))

	path, err := f.signer.Verify(strings.TrimPrefix(url, "http://test/storage/signed/"))
	require.NoError(t, err)
	assert.Equal(t, "hotel/lobby.jpg", path)
}
