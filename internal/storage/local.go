package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const attachmentPrefix = "offboarding/attachments"

// ErrInvalidKey is returned when a key escapes the storage root.
var ErrInvalidKey = errors.New("invalid storage key")

// Object describes a stored upload.
type Object struct {
	Key      string
	FileName string
	MimeType string
	Size     int64
}

// LocalStore keeps uploads on the local filesystem under a root directory.
type LocalStore struct {
	root string
}

// NewLocalStore prepares the root directory.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(attachmentPrefix)), 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Put copies an uploaded file into the store under a fresh key.
func (s *LocalStore) Put(ctx context.Context, fh *multipart.FileHeader) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	src, err := fh.Open()
	if err != nil {
		return Object{}, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	key := path.Join(attachmentPrefix, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	dstPath := filepath.Join(s.root, filepath.FromSlash(key))
	dst, err := os.Create(dstPath)
	if err != nil {
		return Object{}, fmt.Errorf("create %s: %w", key, err)
	}

	size, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dstPath)
		return Object{}, fmt.Errorf("write %s: %w", key, err)
	}

	mime, err := mimetype.DetectFile(dstPath)
	if err != nil {
		_ = os.Remove(dstPath)
		return Object{}, fmt.Errorf("detect mime type of %s: %w", key, err)
	}

	return Object{
		Key:      key,
		FileName: filepath.Base(fh.Filename),
		MimeType: mime.String(),
		Size:     size,
	}, nil
}

// Open returns a reader over a stored object.
func (s *LocalStore) Open(key string) (io.ReadCloser, error) {
	p, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (s *LocalStore) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || !strings.HasPrefix(clean, "/"+attachmentPrefix+"/") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
