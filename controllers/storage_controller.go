package controllers

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"hotel-booking/services"
	"hotel-booking/storage"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type StorageController struct {
	Bucket storage.Bucket
	Signer *storage.URLSigner
	Photos *services.PhotoService
}

func NewStorageController(bucket storage.Bucket, signer *storage.URLSigner, photos *services.PhotoService) *StorageController {
	return &StorageController{Bucket: bucket, Signer: signer, Photos: photos}
}

func (sc *StorageController) serve(c *gin.Context, objectPath string, cacheControl string) {
	p, err := storage.CleanPath(objectPath)
	if err != nil {
		respondError(c, err)
		return
	}
	rc, err := sc.Bucket.Get(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(strings.ToLower(path.Ext(p)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", cacheControl)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		_ = c.Error(err)
	}
}

// GET /storage/public/*path
func (sc *StorageController) Public(c *gin.Context) {
	sc.serve(c, strings.TrimPrefix(c.Param("path"), "/"), "public, max-age=3600")
}

// GET /storage/signed/:token
func (sc *StorageController) Signed(c *gin.Context) {
	objectPath, err := sc.Signer.Verify(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	sc.serve(c, objectPath, "private, no-store")
}

// GET /api/photos/hero answers a signed URL, or null when no folder has
// photos.
func (sc *StorageController) Hero(c *gin.Context) {
	url, err := sc.Photos.HeroImage(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	var out *string
	if url != "" {
		out = &url
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"url": out})
}
