package utils

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  color.RGBA
	}{
		{"black long form", "#000000", color.RGBA{0, 0, 0, 0xff}},
		{"white long form", "#ffffff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"mixed case", "#FFA500", color.RGBA{0xff, 0xa5, 0x00, 0xff}},
		{"short form", "#f0c", color.RGBA{0xff, 0x00, 0xcc, 0xff}},
		{"without hash", "336699", color.RGBA{0x33, 0x66, 0x99, 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, input := range []string{"", "#", "#12", "#12345", "#gggggg", "red"} {
		if _, err := ParseHexColor(input); err == nil {
			t.Errorf("ParseHexColor(%q) = nil error, want ErrInvalidColor", input)
		}
	}
}
