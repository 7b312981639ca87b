package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Parse reads a theme definition from an io.Reader.
// The format is a simple key-value pair per line: Key: #RRGGBB or #RRGGBBAA
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if err := SetField(t, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return nil, err
		}
	}

	return t, scanner.Err()
}

// SetField assigns a colour (or the Name) to the field matching key, ignoring
// case. Unknown keys are ignored for forward compatibility.
func SetField(t *Theme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !strings.EqualFold(f.Name, key) || f.Type != reflect.TypeOf(color.RGBA{}) {
			continue
		}
		col, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil
}

// Fields returns the colour fields of t in declaration order, keyed by name.
func Fields(t *Theme) []Field {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	var out []Field
	for i := 0; i < typ.NumField(); i++ {
		if c, ok := val.Field(i).Interface().(color.RGBA); ok {
			out = append(out, Field{Name: typ.Field(i).Name, Color: c})
		}
	}
	return out
}

// Field is one named theme colour.
type Field struct {
	Name  string
	Color color.RGBA
}

// ParseColor accepts #RRGGBB, #RRGGBBAA or an SVG colour name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}

// Hex renders c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.Color) string {
	r, g, b, a := c.RGBA()
	if rgba, ok := c.(color.RGBA); ok {
		r, g, b, a = uint32(rgba.R)<<8, uint32(rgba.G)<<8, uint32(rgba.B)<<8, uint32(rgba.A)<<8
	}
	if a>>8 == 255 {
		return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r>>8, g>>8, b>>8, a>>8)
}
