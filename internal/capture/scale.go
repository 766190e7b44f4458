package capture

import (
	"image"
	"math"
)

// MapSelection maps a selection drawn in viewport coordinates onto the frame
// coordinate space, accounting for the scale factor between the reported
// frame resolution and the viewport. The result is clamped to the frame
// bounds. An inverted selection (drag up/left) is normalized first.
//
// This transform is kept free of the capture/permission flow so it can be
// exercised headlessly.
func MapSelection(selection image.Rectangle, viewport image.Point, frame image.Rectangle) image.Rectangle {
	if viewport.X <= 0 || viewport.Y <= 0 {
		return image.Rectangle{}
	}
	selection = selection.Canon()
	if selection.Dx() == 0 || selection.Dy() == 0 {
		return image.Rectangle{}
	}

	scaleX := float64(frame.Dx()) / float64(viewport.X)
	scaleY := float64(frame.Dy()) / float64(viewport.Y)

	mapped := image.Rect(
		frame.Min.X+int(math.Round(float64(selection.Min.X)*scaleX)),
		frame.Min.Y+int(math.Round(float64(selection.Min.Y)*scaleY)),
		frame.Min.X+int(math.Round(float64(selection.Max.X)*scaleX)),
		frame.Min.Y+int(math.Round(float64(selection.Max.Y)*scaleY)),
	)
	return mapped.Intersect(frame)
}
