package payload

import (
	"strings"
	"testing"

	"github.com/Mayen007/qrgen/model"
)

func TestValidateWiFi(t *testing.T) {
	tests := []struct {
		name      string
		wifi      model.WiFiFields
		wantField string // empty means valid
	}{
		{"valid WPA", model.WiFiFields{SSID: "Net", Password: "pw", Security: "WPA"}, ""},
		{"valid nopass without password", model.WiFiFields{SSID: "Open", Security: "nopass"}, ""},
		{"missing SSID", model.WiFiFields{Security: "WPA"}, "ssid"},
		{"SSID too long", model.WiFiFields{SSID: strings.Repeat("a", 33), Security: "WPA"}, "ssid"},
		{"SSID at limit", model.WiFiFields{SSID: strings.Repeat("a", 32), Security: "WPA"}, ""},
		{"password too long", model.WiFiFields{SSID: "Net", Password: strings.Repeat("p", 64), Security: "WPA"}, "password"},
		{"password at limit", model.WiFiFields{SSID: "Net", Password: strings.Repeat("p", 63), Security: "WPA"}, ""},
		{"bad security mode", model.WiFiFields{SSID: "Net", Security: "WPA3"}, "security"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(TypeWiFi, Fields{WiFi: tt.wifi})
			checkFieldError(t, err, tt.wantField)
		})
	}
}

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name      string
		contact   model.ContactFields
		wantField string
	}{
		{"valid full contact", model.ContactFields{Name: "John", Phone: "+1234567890", Email: "john@example.com", Organization: "Co"}, ""},
		{"name only", model.ContactFields{Name: "John"}, ""},
		{"missing name", model.ContactFields{Email: "john@example.com"}, "name"},
		{"name too long", model.ContactFields{Name: strings.Repeat("n", 101)}, "name"},
		{"organization too long", model.ContactFields{Name: "J", Organization: strings.Repeat("o", 101)}, "organization"},
		{"bad email", model.ContactFields{Name: "J", Email: "not-an-email"}, "email"},
		{"bad phone", model.ContactFields{Name: "J", Phone: "call me"}, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(TypeContact, Fields{Contact: tt.contact})
			checkFieldError(t, err, tt.wantField)
		})
	}
}

func TestValidateURLAndText(t *testing.T) {
	tests := []struct {
		name      string
		qrType    string
		content   string
		wantField string
	}{
		{"valid url", TypeURL, "https://example.com/page", ""},
		{"empty url", TypeURL, "", "content"},
		{"ftp url", TypeURL, "ftp://example.com", "content"},
		{"valid text", TypeText, "hello", ""},
		{"empty text", TypeText, "", "content"},
		{"text at limit", TypeText, strings.Repeat("x", MaxTextLength), ""},
		{"text over limit", TypeText, strings.Repeat("x", MaxTextLength+1), "content"},
		{"unknown type treated as text", "barcode", "hello", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.qrType, Fields{Content: tt.content})
			checkFieldError(t, err, tt.wantField)
		})
	}
}

func checkFieldError(t *testing.T, err error, wantField string) {
	t.Helper()
	if wantField == "" {
		if err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
		return
	}
	fieldErr, ok := err.(*FieldError)
	if !ok {
		t.Fatalf("Validate() = %v, want *FieldError for field %q", err, wantField)
	}
	if fieldErr.Field != wantField {
		t.Errorf("Validate() failed field %q, want %q", fieldErr.Field, wantField)
	}
	if fieldErr.Message == "" {
		t.Error("FieldError has no user-facing message")
	}
}
