package poster

import (
	"image/color"
	"strings"
)

// ParseHexColor parses "#RRGGBB" and "#AARRGGBB" strings. Six hex digits
// produce an opaque color, eight put the alpha channel first. Anything
// unparsable yields opaque white so a bad config value degrades visibly
// instead of failing a render.
func ParseHexColor(s string) color.NRGBA {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 6:
		v, ok := parseHex(s)
		if !ok {
			return white
		}
		return color.NRGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 255,
		}
	case 8:
		v, ok := parseHex(s)
		if !ok {
			return white
		}
		return color.NRGBA{
			A: uint8(v >> 24),
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
		}
	default:
		return white
	}
}

func parseHex(s string) (uint32, bool) {
	var v uint32
	for _, c := range s {
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}
