// Package capture implements screen-region capture: grabbing a display
// frame, mapping a user-drawn selection onto it, and exporting the cropped
// region as a compressed raster.
package capture

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"sync"

	"github.com/kbinani/screenshot"
	"github.com/pkg/errors"
)

// jpegQuality for exported crops. Screen captures tolerate lossy compression;
// uploads are never re-encoded.
const jpegQuality = 85

// ErrEmptySelection is returned when the selection has no area, which is
// treated as a cancellation.
var ErrEmptySelection = errors.New("selection has no area")

// FrameSource provides frames of a live capture. Close must be called on
// every path out of a capture interaction (success, cancellation, teardown).
type FrameSource interface {
	// Bounds reports the source resolution.
	Bounds() image.Rectangle
	// Frame grabs the current frame.
	Frame() (image.Image, error)
	// Close releases the underlying capture resource. Idempotent.
	Close() error
}

// DisplayGrabber is a FrameSource backed by a physical display.
type DisplayGrabber struct {
	display int

	mu     sync.Mutex
	closed bool
}

// NewDisplayGrabber opens a frame source for the given display index.
func NewDisplayGrabber(display int) (*DisplayGrabber, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, errors.New("no active display")
	}
	if display < 0 || display >= n {
		return nil, errors.Errorf("display %d out of range (%d active)", display, n)
	}
	return &DisplayGrabber{display: display}, nil
}

// Bounds reports the display resolution.
func (g *DisplayGrabber) Bounds() image.Rectangle {
	return screenshot.GetDisplayBounds(g.display)
}

// Frame grabs the current contents of the display.
func (g *DisplayGrabber) Frame() (image.Image, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil, errors.New("frame source is closed")
	}
	img, err := screenshot.CaptureRect(g.Bounds())
	if err != nil {
		return nil, errors.Wrap(err, "capturing display")
	}
	return img, nil
}

// Close releases the grabber.
func (g *DisplayGrabber) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}

// Region crops the selected sub-region of the current frame and exports it
// as a JPEG. The selection is given in viewport coordinates; viewport holds
// the viewport dimensions in the same unit.
func Region(source FrameSource, selection image.Rectangle, viewport image.Point) ([]byte, error) {
	frame, err := source.Frame()
	if err != nil {
		return nil, err
	}

	crop := MapSelection(selection, viewport, frame.Bounds())
	if crop.Empty() {
		return nil, ErrEmptySelection
	}

	// Draw the crop onto a canvas sized to the selection.
	canvas := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(canvas, canvas.Bounds(), frame, crop.Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, errors.Wrap(err, "encoding crop")
	}
	return buf.Bytes(), nil
}
