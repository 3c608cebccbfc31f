package payload

import (
	"strings"
	"testing"

	"github.com/Mayen007/qrgen/model"
)

func TestEncodeWiFi(t *testing.T) {
	tests := []struct {
		name string
		wifi model.WiFiFields
		want string
	}{
		{
			name: "WPA network",
			wifi: model.WiFiFields{SSID: "MyWiFi", Password: "password123", Security: "WPA"},
			want: "WIFI:T:WPA;S:MyWiFi;P:password123;;",
		},
		{
			name: "WEP network",
			wifi: model.WiFiFields{SSID: "Legacy", Password: "abc", Security: "WEP"},
			want: "WIFI:T:WEP;S:Legacy;P:abc;;",
		},
		{
			name: "open network with empty password",
			wifi: model.WiFiFields{SSID: "Cafe", Password: "", Security: "nopass"},
			want: "WIFI:T:nopass;S:Cafe;P:;;",
		},
		{
			// Special characters pass through verbatim; the format is
			// deliberately not escaped.
			name: "SSID with semicolon",
			wifi: model.WiFiFields{SSID: "My;Net", Password: "p:w", Security: "WPA"},
			want: "WIFI:T:WPA;S:My;Net;P:p:w;;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(TypeWiFi, Fields{WiFi: tt.wifi})
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeContact(t *testing.T) {
	got := Encode(TypeContact, Fields{Contact: model.ContactFields{
		Name:         "John Doe",
		Organization: "Company",
		Phone:        "+1234567890",
		Email:        "john@example.com",
	}})

	want := "BEGIN:VCARD\nVERSION:3.0\nFN:John Doe\nORG:Company\nTEL:+1234567890\nEMAIL:john@example.com\nEND:VCARD"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}

	// Real newlines, six lines of structure around the four fields
	if strings.Contains(got, `\n`) {
		t.Error("vCard must use real newlines, not escaped sequences")
	}
	if lines := strings.Split(got, "\n"); len(lines) != 7 {
		t.Errorf("vCard has %d lines, want 7", len(lines))
	}
}

func TestEncodeContact_EmptyFields(t *testing.T) {
	got := Encode(TypeContact, Fields{Contact: model.ContactFields{Name: "Jane"}})
	want := "BEGIN:VCARD\nVERSION:3.0\nFN:Jane\nORG:\nTEL:\nEMAIL:\nEND:VCARD"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodePassthrough(t *testing.T) {
	inputs := []string{
		"",
		"https://example.com",
		"plain text with spaces",
		"WIFI:T:WPA;S:looks-like-wifi;P:x;;",
		"BEGIN:VCARD\nVERSION:3.0\nEND:VCARD",
	}

	for _, in := range inputs {
		for _, qrType := range []string{TypeURL, TypeText, "barcode", ""} {
			if got := Encode(qrType, Fields{Content: in}); got != in {
				t.Errorf("Encode(%q, %q) = %q, want input unchanged", qrType, in, got)
			}
		}
	}
}

func TestEncodeIdempotent(t *testing.T) {
	f := Fields{WiFi: model.WiFiFields{SSID: "Net", Password: "pw", Security: "WPA"}}
	first := Encode(TypeWiFi, f)
	second := Encode(TypeWiFi, f)
	if first != second {
		t.Errorf("Encode is not deterministic: %q != %q", first, second)
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name   string
		qrType string
		fields Fields
		want   string
	}{
		{"wifi", TypeWiFi, Fields{WiFi: model.WiFiFields{SSID: "MyWiFi"}}, "WiFi: MyWiFi"},
		{"contact", TypeContact, Fields{Contact: model.ContactFields{Name: "John Doe"}}, "Contact: John Doe"},
		{"short url", TypeURL, Fields{Content: "https://example.com"}, "https://example.com"},
		{
			"long text truncated",
			TypeText,
			Fields{Content: "Welcome to our event! Visit booth 42 for special discounts."},
			"Welcome to our event! Visit bo...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(tt.qrType, tt.fields); got != tt.want {
				t.Errorf("DeriveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
