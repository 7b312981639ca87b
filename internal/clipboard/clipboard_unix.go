//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"errors"
	"image"
	"os"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

// WriteImage encodes the provided image as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := encode(img)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

// ReadImage retrieves PNG image data from the clipboard and decodes it.
func ReadImage() (*image.RGBA, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	return decode(clipboard.Read(clipboard.FmtImage))
}
