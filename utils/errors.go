package utils

import "errors"

var (
	ErrEmptyURL      = errors.New("URL cannot be empty")
	ErrInvalidURL    = errors.New("invalid URL format")
	ErrInvalidScheme = errors.New("URL scheme must be http or https")
	ErrEmptyHost     = errors.New("URL host cannot be empty")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidPhone  = errors.New("invalid phone number")
	ErrInvalidColor  = errors.New("invalid hex color, expected #RGB or #RRGGBB")
)
