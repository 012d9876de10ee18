package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalBucket keeps objects under Root on disk; the router serves them
// below BaseURL.
type LocalBucket struct {
	Root    string
	BaseURL string
}

func NewLocalBucket(root, baseURL string) (*LocalBucket, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalBucket{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (b *LocalBucket) fullPath(objectPath string) (string, error) {
	p, err := CleanPath(objectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(b.Root, filepath.FromSlash(p)), nil
}

func (b *LocalBucket) Put(ctx context.Context, objectPath string, r io.Reader, _ string) error {
	full, err := b.fullPath(objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), full)
}

func (b *LocalBucket) Get(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	full, err := b.fullPath(objectPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, objectPath)
	}
	if err != nil {
		return nil, err
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, objectPath)
	}
	return f, nil
}

func (b *LocalBucket) List(ctx context.Context, folder string) ([]Object, error) {
	f, err := cleanFolder(folder)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(b.Root, filepath.FromSlash(f))
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Object{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]Object, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".upload-") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Object{Name: e.Name(), Size: info.Size(), UpdatedAt: info.ModTime().UTC()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (b *LocalBucket) Remove(ctx context.Context, objectPaths ...string) error {
	for _, p := range objectPaths {
		full, err := b.fullPath(p)
		if err != nil {
			return err
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (b *LocalBucket) PublicURL(objectPath string) string {
	p, err := CleanPath(objectPath)
	if err != nil {
		return ""
	}
	return b.BaseURL + "/" + p
}
