package handlers

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/offboarding-service/internal/storage"
	apperrors "github.com/spec-kit/offboarding-service/pkg/util/errorutil"
)

// sniffLen matches the header size mimetype inspects by default.
const sniffLen = 3072

// FileOpener reads stored attachments back.
type FileOpener interface {
	Open(key string) (io.ReadCloser, error)
}

// FilesHandler streams note attachments.
type FilesHandler struct {
	files FileOpener
}

// NewFilesHandler constructs handler.
func NewFilesHandler(files FileOpener) *FilesHandler {
	return &FilesHandler{files: files}
}

// streamBody replays the sniffed header before the rest of the file and
// closes the file once fiber has written the response.
type streamBody struct {
	io.Reader
	io.Closer
}

// Download GET /files/*.
func (h *FilesHandler) Download(c *fiber.Ctx) error {
	key := c.Params("*")
	rc, err := h.files.Open(key)
	switch {
	case errors.Is(err, storage.ErrInvalidKey):
		return apperrors.NewValidationError("invalid file key", nil)
	case errors.Is(err, os.ErrNotExist):
		return apperrors.NewNotFound("file", map[string]any{"key": key})
	case err != nil:
		return apperrors.NewInternalError(err)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		_ = rc.Close()
		return apperrors.NewInternalError(err)
	}
	head = head[:n]

	c.Set(fiber.HeaderContentType, mimetype.Detect(head).String())
	return c.SendStream(streamBody{Reader: io.MultiReader(bytes.NewReader(head), rc), Closer: rc})
}
