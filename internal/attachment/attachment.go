// Package attachment validates and encodes image attachments into the
// transport form expected by the RAG backend.
package attachment

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// MaxImageBytes is the ceiling on attachment size, checked before any
// encoding step and re-checked before network submission.
const MaxImageBytes = 3 * 1024 * 1024

// Validation errors surfaced to the user, in the original portal's language.
var (
	ErrNotImage = errors.New("Chỉ hỗ trợ tập tin hình ảnh")
	ErrTooLarge = fmt.Errorf("Kích thước ảnh quá lớn (tối đa %dMB)", MaxImageBytes/(1024*1024))
	ErrDecode   = errors.New("Không thể đọc tập tin ảnh")
)

// Candidate is a validated image attachment. A candidate failing size or
// mime-type validation is never constructed; callers keep the error in their
// "current attachment error" slot instead.
type Candidate struct {
	// Name is a display label (file name, "clipboard", "capture").
	Name string
	// MimeType of the source payload.
	MimeType string

	source []byte
}

// FromBytes validates raw image bytes (clipboard paste, screen capture).
func FromBytes(name string, data []byte) (*Candidate, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrNotImage
	}
	if len(data) > MaxImageBytes {
		return nil, ErrTooLarge
	}
	return &Candidate{Name: name, MimeType: mimeType, source: data}, nil
}

// FromFile validates an image file. The size ceiling is enforced from file
// metadata, before the payload is read or encoded.
func FromFile(path string) (*Candidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	if info.Size() > MaxImageBytes {
		return nil, ErrTooLarge
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrNotImage
	}
	return &Candidate{Name: filepath.Base(path), MimeType: mimeType, source: data}, nil
}

// Size returns the source payload size in bytes.
func (c *Candidate) Size() int {
	return len(c.source)
}

// PreviewDataURL returns the base64 data URL used for on-screen preview.
func (c *Candidate) PreviewDataURL() string {
	return "data:" + c.MimeType + ";base64," + base64.StdEncoding.EncodeToString(c.source)
}

// Payload returns the base64 payload stripped of its data-URL prefix, the
// form sent to the backend. The size ceiling is re-verified here before
// network submission.
func (c *Candidate) Payload() (string, error) {
	if len(c.source) > MaxImageBytes {
		return "", ErrTooLarge
	}
	dataURL := c.PreviewDataURL()
	_, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return "", ErrDecode
	}
	return payload, nil
}
