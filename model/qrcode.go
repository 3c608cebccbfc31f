package model

import "time"

// QRSettings holds the display options chosen at generation time. They are
// the defaults for image rendering and can be overridden per request.
type QRSettings struct {
	Color   string `json:"color"`   // Foreground color, hex (#RRGGBB)
	BgColor string `json:"bgColor"` // Background color, hex (#RRGGBB)
	Size    int    `json:"size"`    // Pixel size of the rendered image
}

// QRCode represents a generated QR code owned by a user. Content is the exact
// payload string produced by the encoder at generation time; rendering always
// encodes this string verbatim.
type QRCode struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"ownerId"`
	Type          string     `json:"type"`    // url, text, wifi, contact
	Content       string     `json:"content"` // encoded payload string
	Title         string     `json:"title"`
	Settings      QRSettings `json:"settings"`
	CreatedAt     time.Time  `json:"createdAt"`
	ScanCount     int64      `json:"scanCount"`
	LastScannedAt *time.Time `json:"lastScannedAt,omitempty"` // nil until first scan
}

// CreateQRCodeRequest is the payload for POST /api/qrcodes. Exactly one of
// the field groups is consulted, selected by Type.
type CreateQRCodeRequest struct {
	Type     string         `json:"type" example:"url"`
	Title    string         `json:"title,omitempty" example:"Company Website"`
	Content  string         `json:"content,omitempty" example:"https://example.com"` // url and text types
	WiFi     *WiFiFields    `json:"wifi,omitempty"`
	Contact  *ContactFields `json:"contact,omitempty"`
	Settings *QRSettings    `json:"settings,omitempty"`
}

// WiFiFields are the inputs for a wifi payload.
type WiFiFields struct {
	SSID     string `json:"ssid" example:"MyWiFi"`
	Password string `json:"password" example:"password123"`
	Security string `json:"security" example:"WPA"` // WPA, WEP, or nopass
}

// ContactFields are the inputs for a contact (vCard) payload.
type ContactFields struct {
	Name         string `json:"name" example:"John Doe"`
	Phone        string `json:"phone,omitempty" example:"+1234567890"`
	Email        string `json:"email,omitempty" example:"john@example.com"`
	Organization string `json:"organization,omitempty" example:"Company"`
}

// QRCodeResponse is the API representation of a QRCode plus derived URLs.
type QRCodeResponse struct {
	QRCode
	ScanURL  string `json:"scanURL"`  // public tracking URL encoded into shared images
	ImageURL string `json:"imageURL"` // PNG rendering endpoint
}
