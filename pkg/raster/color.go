package raster

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

var namedColors = map[string]color.NRGBA{
	"black":       {A: 0xff},
	"white":       {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"transparent": {},
}

// ParseColor parses a background colour: a name ("black", "white",
// "transparent") or hex in the form #rgb, #rrggbb, or #rrggbbaa.
// The empty string returns nil, meaning "leave the canvas zeroed".
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return nil, fmt.Errorf("invalid colour %q", s)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q", s)
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}
