package attachment

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFromBytesAcceptsImage(t *testing.T) {
	data := pngBytes(t, 8, 8)
	candidate, err := FromBytes("clipboard", data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", candidate.MimeType)
	assert.Equal(t, len(data), candidate.Size())
}

func TestFromBytesRejectsNonImage(t *testing.T) {
	_, err := FromBytes("notes", []byte("%PDF-1.4 definitely not an image"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestFromBytesRejectsOversized(t *testing.T) {
	// Valid PNG header followed by padding beyond the ceiling: the size check
	// must fire regardless of mime type, before any encoding.
	data := append(pngBytes(t, 8, 8), make([]byte, MaxImageBytes)...)
	_, err := FromBytes("big", data)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFromFileRejectsOversizedBeforeRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, os.WriteFile(path, make([]byte, MaxImageBytes+1), 0644))
	_, err := FromFile(path)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFromFileRejectsMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestPayloadRoundTrip(t *testing.T) {
	data := pngBytes(t, 16, 4)
	candidate, err := FromBytes("clipboard", data)
	require.NoError(t, err)

	payload, err := candidate.Payload()
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(payload, "data:"))

	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestPreviewDataURLPrefix(t *testing.T) {
	candidate, err := FromBytes("clipboard", pngBytes(t, 4, 4))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(candidate.PreviewDataURL(), "data:image/png;base64,"))
}
