package capture

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSelectionIdentityScale(t *testing.T) {
	frame := image.Rect(0, 0, 100, 50)
	viewport := image.Pt(100, 50)
	got := MapSelection(image.Rect(10, 5, 30, 25), viewport, frame)
	assert.Equal(t, image.Rect(10, 5, 30, 25), got)
}

func TestMapSelectionScalesUp(t *testing.T) {
	// 2x horizontal, 4x vertical: a HiDPI frame behind a smaller viewport.
	frame := image.Rect(0, 0, 200, 200)
	viewport := image.Pt(100, 50)
	got := MapSelection(image.Rect(10, 10, 20, 20), viewport, frame)
	assert.Equal(t, image.Rect(20, 40, 40, 80), got)
}

func TestMapSelectionAspectMismatch(t *testing.T) {
	// Non-uniform scale factors must be applied per axis.
	frame := image.Rect(0, 0, 1920, 1080)
	viewport := image.Pt(120, 40)
	got := MapSelection(image.Rect(0, 0, 60, 20), viewport, frame)
	assert.Equal(t, image.Rect(0, 0, 960, 540), got)
}

func TestMapSelectionClampsToFrame(t *testing.T) {
	frame := image.Rect(0, 0, 100, 100)
	viewport := image.Pt(100, 100)
	got := MapSelection(image.Rect(80, 80, 140, 140), viewport, frame)
	assert.Equal(t, image.Rect(80, 80, 100, 100), got)
}

func TestMapSelectionNormalizesInvertedDrag(t *testing.T) {
	frame := image.Rect(0, 0, 100, 100)
	viewport := image.Pt(100, 100)
	got := MapSelection(image.Rect(30, 40, 10, 20), viewport, frame)
	assert.Equal(t, image.Rect(10, 20, 30, 40), got)
}

func TestMapSelectionEmpty(t *testing.T) {
	frame := image.Rect(0, 0, 100, 100)
	viewport := image.Pt(100, 100)
	assert.True(t, MapSelection(image.Rect(10, 10, 10, 30), viewport, frame).Empty())
	assert.True(t, MapSelection(image.Rect(10, 10, 30, 30), image.Pt(0, 0), frame).Empty())
}

func TestMapSelectionOffsetFrame(t *testing.T) {
	// Secondary displays report bounds offset from the origin.
	frame := image.Rect(1920, 0, 3840, 1080)
	viewport := image.Pt(1920, 1080)
	got := MapSelection(image.Rect(0, 0, 100, 100), viewport, frame)
	assert.Equal(t, image.Rect(1920, 0, 2020, 100), got)
}
