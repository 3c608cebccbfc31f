package payload

import (
	"fmt"

	"github.com/Mayen007/qrgen/utils"
)

// Field length limits. These bound what downstream QR symbol versions can
// hold (2953 bytes is the byte-mode capacity of a version 40-L symbol) and
// what the WIFI: format allows for network credentials.
const (
	MaxTextLength     = 2953
	MaxSSIDLength     = 32
	MaxPasswordLength = 63
	MaxNameLength     = 100
	MaxOrgLength      = 100
)

// FieldError is a user-facing validation failure scoped to a single input
// field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the fields for the given QR type. It must pass before
// Encode is called: encoding itself never rejects anything, so this is the
// only gate between raw user input and the persisted payload.
func Validate(qrType string, f Fields) error {
	switch qrType {
	case TypeURL:
		if f.Content == "" {
			return &FieldError{Field: "content", Message: "URL is required"}
		}
		if err := utils.ValidateURL(f.Content); err != nil {
			return &FieldError{Field: "content", Message: err.Error()}
		}
	case TypeWiFi:
		if f.WiFi.SSID == "" {
			return &FieldError{Field: "ssid", Message: "Network name is required"}
		}
		if len(f.WiFi.SSID) > MaxSSIDLength {
			return &FieldError{Field: "ssid", Message: fmt.Sprintf("Network name must be %d characters or less", MaxSSIDLength)}
		}
		if len(f.WiFi.Password) > MaxPasswordLength {
			return &FieldError{Field: "password", Message: fmt.Sprintf("Password must be %d characters or less", MaxPasswordLength)}
		}
		switch f.WiFi.Security {
		case SecurityWPA, SecurityWEP, SecurityNopass:
		default:
			return &FieldError{Field: "security", Message: "Security must be WPA, WEP, or nopass"}
		}
	case TypeContact:
		if f.Contact.Name == "" {
			return &FieldError{Field: "name", Message: "Name is required"}
		}
		if len(f.Contact.Name) > MaxNameLength {
			return &FieldError{Field: "name", Message: fmt.Sprintf("Name must be %d characters or less", MaxNameLength)}
		}
		if len(f.Contact.Organization) > MaxOrgLength {
			return &FieldError{Field: "organization", Message: fmt.Sprintf("Organization must be %d characters or less", MaxOrgLength)}
		}
		if f.Contact.Email != "" {
			if err := utils.ValidateEmail(f.Contact.Email); err != nil {
				return &FieldError{Field: "email", Message: err.Error()}
			}
		}
		if f.Contact.Phone != "" {
			if err := utils.ValidatePhone(f.Contact.Phone); err != nil {
				return &FieldError{Field: "phone", Message: err.Error()}
			}
		}
	default:
		// text and unknown types encode the raw content
		if f.Content == "" {
			return &FieldError{Field: "content", Message: "Content is required"}
		}
		if len(f.Content) > MaxTextLength {
			return &FieldError{Field: "content", Message: fmt.Sprintf("Text must be %d characters or less", MaxTextLength)}
		}
	}
	return nil
}
