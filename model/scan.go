package model

import "time"

// ScanEvent records a single scan (or visit) of a QR code. All descriptive
// fields are opaque strings supplied by the scanning client and may be empty.
type ScanEvent struct {
	ID               string     `json:"id"`
	QRCodeID         string     `json:"qrCodeId"`
	OwnerID          string     `json:"ownerId"` // denormalized owner of the QR code
	Timestamp        *time.Time `json:"timestamp,omitempty"`
	UserAgent        string     `json:"userAgent,omitempty"`
	Language         string     `json:"language,omitempty"`
	Platform         string     `json:"platform,omitempty"`
	Timezone         string     `json:"timezone,omitempty"`
	SessionID        string     `json:"sessionId,omitempty"`
	Referrer         string     `json:"referrer,omitempty"`
	ScreenResolution string     `json:"screenResolution,omitempty"`
}

// ScanLogResponse is the API representation of a QR code's raw scan log.
type ScanLogResponse struct {
	QRCodeID   string      `json:"qrCodeId"`
	Title      string      `json:"title"`
	TotalScans int         `json:"totalScans"`
	Scans      []ScanEvent `json:"scans"`
}
