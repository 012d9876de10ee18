package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Objects are stored as "raw" resources so public IDs keep their file
// extension and json sidecars live next to images.
const cloudinaryResourceType = "raw"

type CloudinaryBucket struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	folder    string
	http      *http.Client
}

func NewCloudinaryBucket(cloudName, apiKey, apiSecret, folder string) (*CloudinaryBucket, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryBucket{
		cld:       cld,
		cloudName: cloudName,
		folder:    strings.Trim(folder, "/"),
		http:      &http.Client{Timeout: 20 * time.Second},
	}, nil
}

func (b *CloudinaryBucket) publicID(objectPath string) (string, error) {
	p, err := CleanPath(objectPath)
	if err != nil {
		return "", err
	}
	if b.folder == "" {
		return p, nil
	}
	return b.folder + "/" + p, nil
}

func (b *CloudinaryBucket) Put(ctx context.Context, objectPath string, r io.Reader, _ string) error {
	id, err := b.publicID(objectPath)
	if err != nil {
		return err
	}
	res, err := b.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     id,
		ResourceType: cloudinaryResourceType,
		Overwrite:    api.Bool(true),
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("cloudinary upload %s: %w", id, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary upload %s: %s", id, res.Error.Message)
	}
	return nil
}

func (b *CloudinaryBucket) Get(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	u := b.PublicURL(objectPath)
	if u == "" {
		return nil, ErrInvalidPath
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, objectPath)
	case resp.StatusCode >= 300:
		resp.Body.Close()
		return nil, fmt.Errorf("cloudinary get %s: status %d", objectPath, resp.StatusCode)
	}
	return resp.Body, nil
}

func (b *CloudinaryBucket) List(ctx context.Context, folder string) ([]Object, error) {
	f, err := cleanFolder(folder)
	if err != nil {
		return nil, err
	}
	prefix := b.folder
	if f != "" {
		prefix = strings.Trim(prefix+"/"+f, "/")
	}
	if prefix != "" {
		prefix += "/"
	}

	var out []Object
	cursor := ""
	for {
		res, err := b.cld.Admin.Assets(ctx, admin.AssetsParams{
			AssetType:    api.AssetType(cloudinaryResourceType),
			DeliveryType: "upload",
			Prefix:       prefix,
			MaxResults:   500,
			NextCursor:   cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("cloudinary list %s: %w", prefix, err)
		}
		if res.Error.Message != "" {
			return nil, fmt.Errorf("cloudinary list %s: %s", prefix, res.Error.Message)
		}
		for _, a := range res.Assets {
			rest := strings.TrimPrefix(a.PublicID, prefix)
			// only direct children
			if rest == "" || strings.Contains(rest, "/") {
				continue
			}
			out = append(out, Object{Name: path.Base(rest), Size: int64(a.Bytes), UpdatedAt: a.CreatedAt})
		}
		if res.NextCursor == "" {
			break
		}
		cursor = res.NextCursor
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if out == nil {
		out = []Object{}
	}
	return out, nil
}

func (b *CloudinaryBucket) Remove(ctx context.Context, objectPaths ...string) error {
	for _, p := range objectPaths {
		id, err := b.publicID(p)
		if err != nil {
			return err
		}
		res, err := b.cld.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID:     id,
			ResourceType: cloudinaryResourceType,
			Invalidate:   api.Bool(true),
		})
		if err != nil {
			return fmt.Errorf("cloudinary destroy %s: %w", id, err)
		}
		if res.Error.Message != "" {
			return fmt.Errorf("cloudinary destroy %s: %s", id, res.Error.Message)
		}
	}
	return nil
}

func (b *CloudinaryBucket) PublicURL(objectPath string) string {
	id, err := b.publicID(objectPath)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/%s/upload/%s", b.cloudName, cloudinaryResourceType, id)
}
