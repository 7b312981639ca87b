// Package viewport maps between display and image coordinates for a centred,
// zoomed image.
package viewport

import (
	"image"
	"math"
)

const (
	// ZoomStep is applied by ZoomIn and ZoomOut.
	ZoomStep = 1.25
	// MinZoom is the smallest zoom factor a Mapper accepts.
	MinZoom = 0.1
)

// Mapper centres an ImageW×ImageH image, scaled by Zoom, inside a
// DisplayW×DisplayH area. With no image or no display it maps points
// unchanged.
type Mapper struct {
	ImageW, ImageH     int
	Zoom               float64
	DisplayW, DisplayH int
}

// ClampZoom keeps z at or above MinZoom.
func ClampZoom(z float64) float64 {
	if z < MinZoom || math.IsNaN(z) {
		return MinZoom
	}
	return z
}

func (m Mapper) zoom() float64 { return ClampZoom(m.Zoom) }

func (m Mapper) empty() bool {
	return m.ImageW <= 0 || m.ImageH <= 0 || m.DisplayW <= 0 || m.DisplayH <= 0
}

// Offset is the display position of the image's top-left corner.
func (m Mapper) Offset() image.Point {
	if m.empty() {
		return image.Point{}
	}
	z := m.zoom()
	return image.Pt(
		(m.DisplayW-int(float64(m.ImageW)*z))/2,
		(m.DisplayH-int(float64(m.ImageH)*z))/2,
	)
}

// ToImage maps a display point to the image pixel beneath it. The result may
// lie outside the image.
func (m Mapper) ToImage(p image.Point) image.Point {
	if m.empty() {
		return p
	}
	off := m.Offset()
	z := m.zoom()
	return image.Pt(
		int(math.Floor(float64(p.X-off.X)/z)),
		int(math.Floor(float64(p.Y-off.Y)/z)),
	)
}

// ToDisplay maps an image point to display coordinates.
func (m Mapper) ToDisplay(p image.Point) image.Point {
	if m.empty() {
		return p
	}
	off := m.Offset()
	z := m.zoom()
	return image.Pt(
		int(math.Floor(float64(p.X)*z+float64(off.X))),
		int(math.Floor(float64(p.Y)*z+float64(off.Y))),
	)
}

// ImageRect is the display rectangle covered by the image.
func (m Mapper) ImageRect() image.Rectangle {
	off := m.Offset()
	z := m.zoom()
	return image.Rect(off.X, off.Y,
		off.X+int(float64(m.ImageW)*z), off.Y+int(float64(m.ImageH)*z))
}

// Center returns the image point under the middle of the display.
func (m Mapper) Center() image.Point {
	if m.empty() {
		return image.Pt(m.ImageW/2, m.ImageH/2)
	}
	return m.ToImage(image.Pt(m.DisplayW/2, m.DisplayH/2))
}

// ZoomIn returns the next larger zoom factor.
func ZoomIn(z float64) float64 { return ClampZoom(z * ZoomStep) }

// ZoomOut returns the next smaller zoom factor.
func ZoomOut(z float64) float64 { return ClampZoom(z / ZoomStep) }

// Fit returns the zoom that fits an image inside a display, never enlarging
// beyond 1.
func Fit(imgW, imgH, displayW, displayH int) float64 {
	if imgW <= 0 || imgH <= 0 || displayW <= 0 || displayH <= 0 {
		return 1
	}
	z := math.Min(float64(displayW)/float64(imgW), float64(displayH)/float64(imgH))
	if z > 1 {
		z = 1
	}
	return ClampZoom(z)
}
