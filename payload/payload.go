// Package payload turns user-supplied QR fields into the exact string that
// gets embedded in a QR symbol. Encoding is pure and never fails; callers
// are expected to run Validate on the same fields first.
package payload

import (
	"fmt"

	"github.com/Mayen007/qrgen/model"
)

// Recognized QR payload types.
const (
	TypeURL     = "url"
	TypeText    = "text"
	TypeWiFi    = "wifi"
	TypeContact = "contact"
)

// WiFi security modes.
const (
	SecurityWPA    = "WPA"
	SecurityWEP    = "WEP"
	SecurityNopass = "nopass"
)

// Fields carries the inputs for every payload type. Only the group matching
// the requested type is consulted.
type Fields struct {
	Content string // url and text types
	WiFi    model.WiFiFields
	Contact model.ContactFields
}

// Encode maps a QR type and its fields to the payload string. Unknown types
// fall back to the raw content, same as text. Fields are interpolated
// verbatim: a ";" or ":" inside an SSID produces a broken WIFI: string, which
// matches what other QR tools emit and what scanners expect.
func Encode(qrType string, f Fields) string {
	switch qrType {
	case TypeWiFi:
		return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;;", f.WiFi.Security, f.WiFi.SSID, f.WiFi.Password)
	case TypeContact:
		return fmt.Sprintf("BEGIN:VCARD\nVERSION:3.0\nFN:%s\nORG:%s\nTEL:%s\nEMAIL:%s\nEND:VCARD",
			f.Contact.Name, f.Contact.Organization, f.Contact.Phone, f.Contact.Email)
	default:
		// url, text, and anything unrecognized
		return f.Content
	}
}

// DeriveTitle produces a short human label for a QR code when the user did
// not supply one.
func DeriveTitle(qrType string, f Fields) string {
	switch qrType {
	case TypeWiFi:
		return "WiFi: " + f.WiFi.SSID
	case TypeContact:
		return "Contact: " + f.Contact.Name
	default:
		return Truncate(f.Content, 30)
	}
}

// Truncate shortens s to at most max characters, appending "..." when
// anything was cut.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
