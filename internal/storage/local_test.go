package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("attachment", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["attachment"][0]
}

func TestLocalStorePutAndOpen(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	obj, err := store.Put(context.Background(), fileHeader(t, "Handover.TXT", []byte("laptop returned\n")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Key, "offboarding/attachments/"))
	assert.True(t, strings.HasSuffix(obj.Key, ".txt"))
	assert.Equal(t, "Handover.TXT", obj.FileName)
	assert.Equal(t, int64(16), obj.Size)
	assert.Contains(t, obj.MimeType, "text/plain")

	rc, err := store.Open(obj.Key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "laptop returned\n", string(data))
}

func TestLocalStoreDetectsPNG(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	obj, err := store.Put(context.Background(), fileHeader(t, "badge.bin", png))
	require.NoError(t, err)
	assert.Equal(t, "image/png", obj.MimeType)
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestLocalStoreHonoursCancelledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Put(ctx, fileHeader(t, "a.txt", []byte("x")))
	assert.ErrorIs(t, err, context.Canceled)
}
