package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// localStorage keeps uploads under a directory on local disk through viant/afs.
// Object metadata is not persisted; Get reports size and modification time only.
type localStorage struct {
	fs      afs.Service
	baseURL string
}

// NewLocal creates a Storage rooted at dir, creating the directory if needed.
func NewLocal(ctx context.Context, dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("local storage dir is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}

	fs := afs.New()
	baseURL := "file://" + filepath.ToSlash(abs)
	if err := fs.Create(ctx, baseURL, 0o755, true); err != nil {
		exists, existsErr := fs.Exists(ctx, baseURL)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	return &localStorage{fs: fs, baseURL: baseURL}, nil
}

func (l *localStorage) objectURL(key string) string {
	return url.Join(l.baseURL, key)
}

// Put writes the object to disk. Parent folders are created as needed.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	URL := l.objectURL(key)
	if err := l.fs.Upload(ctx, URL, 0o644, r); err != nil {
		return ObjectInfo{}, err
	}
	obj, err := l.fs.Object(ctx, URL)
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:          key,
		Size:         obj.Size(),
		ContentType:  opt.ContentType,
		LastModified: obj.ModTime(),
		Metadata:     opt.Metadata,
	}, nil
}

// Get opens the object for reading.
func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	URL := l.objectURL(key)
	exists, err := l.fs.Exists(ctx, URL)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	if !exists {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
	obj, err := l.fs.Object(ctx, URL)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	rc, err := l.fs.OpenURL(ctx, URL)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	return rc, ObjectInfo{Key: key, Size: obj.Size(), LastModified: obj.ModTime()}, nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (l *localStorage) Delete(ctx context.Context, key string) error {
	URL := l.objectURL(key)
	exists, err := l.fs.Exists(ctx, URL)
	if err != nil || !exists {
		return err
	}
	return l.fs.Delete(ctx, URL)
}
