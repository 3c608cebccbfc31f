package utils

import (
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses "#RGB" or "#RRGGBB" into an opaque color.
func ParseHexColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(s, "#")

	switch len(hex) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[i*2] = hex[i]
			expanded[i*2+1] = hex[i]
		}
		hex = string(expanded)
	case 6:
	default:
		return nil, ErrInvalidColor
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, ErrInvalidColor
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
