// Package clipboard mirrors copied selections to the desktop clipboard as
// PNG data. All functions are best effort and return an error when no
// clipboard is reachable.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"

	"github.com/example/easel/internal/canvas"
)

// ErrNoImage is returned when the clipboard holds no PNG data.
var ErrNoImage = errors.New("clipboard does not contain image data")

// System exposes the package functions as a value so callers can swap it out.
type System struct{}

func (System) WriteImage(img image.Image) error { return WriteImage(img) }
func (System) ReadImage() (*image.RGBA, error)  { return ReadImage() }

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (*image.RGBA, error) {
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return canvas.ToRGBA(img), nil
}
