package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned when a file cannot be decoded as any of
// the registered image formats.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format names an encoder chosen from a file extension.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
	FormatPDF  Format = "pdf"
)

// JPEGQuality is used for every JPEG save.
const JPEGQuality = 90

// Extension returns the lower-cased text after the last dot of path. A dot at
// the start or end of the name does not start an extension.
func Extension(path string) string {
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// LookupFormat maps an extension to a Format.
func LookupFormat(ext string) (Format, bool) {
	switch strings.ToLower(ext) {
	case "png":
		return FormatPNG, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "bmp":
		return FormatBMP, true
	case "pdf":
		return FormatPDF, true
	}
	return "", false
}

// FormatForPath picks the encoder for path. Unknown or missing extensions
// fall back to PNG.
func FormatForPath(path string) Format {
	if f, ok := LookupFormat(Extension(path)); ok {
		return f
	}
	return FormatPNG
}

// Load decodes the image at path into an RGBA buffer with origin (0,0).
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads any registered image format from r.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToRGBA(img), nil
}

// Save writes img to path using the format implied by its extension. The
// image is encoded into a temporary file next to path and renamed over it, so
// a failed save leaves any earlier file intact.
func Save(img image.Image, path string) (err error) {
	mode := os.FileMode(0o644)
	if st, statErr := os.Stat(path); statErr == nil {
		mode = st.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()
	if err := Encode(f, img, FormatForPath(path)); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Chmod(mode); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the requested format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatJPEG:
		return jpeg.Encode(w, Flatten(img, color.White), &jpeg.Options{Quality: JPEGQuality})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatPDF:
		return encodePDF(w, img)
	default:
		return png.Encode(w, img)
	}
}

// Flatten composites img over an opaque background. Formats without alpha
// would otherwise render transparent areas black.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// encodePDF embeds img on a single page sized to the image, one point per
// pixel.
func encodePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opts, &buf)
	pdf.ImageOptions("canvas", 0, 0, wd, ht, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
