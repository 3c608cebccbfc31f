package model

// AnalyticsSummary is the derived dashboard view over a user's QR codes and
// scan events. It is recomputed from scratch on every request; nothing here
// is persisted.
type AnalyticsSummary struct {
	TotalScans         int           `json:"totalScans"`         // all-time, not window-limited
	TotalQRCodes       int           `json:"totalQRCodes"`       // all-time, not window-limited
	TotalViewsToday    int           `json:"totalViewsToday"`    // today's calendar day
	TotalViewsThisWeek int           `json:"totalViewsThisWeek"` // fixed 7-day lookback
	ScansByDay         []DayPoint    `json:"scansByDay"`         // oldest first, one entry per day in range
	ScansByType        []TypeCount   `json:"scansByType"`
	ScansByDevice      []DeviceCount `json:"scansByDevice"`
	TopQRCodes         []TopQRCode   `json:"topQRCodes"`
	RecentScans        []ScanEvent   `json:"recentScans"` // newest first, capped
}

// DayPoint is one calendar day in the scans-by-day series.
type DayPoint struct {
	Date        string `json:"date"` // display format, e.g. "Jan 02"
	Scans       int    `json:"scans"`
	UniqueUsers int    `json:"uniqueUsers"` // distinct session keys that day
}

// TypeCount is the number of in-range scans attributed to one QR payload type.
type TypeCount struct {
	Type  string `json:"type"` // capitalized for display
	Scans int    `json:"scans"`
}

// DeviceCount is the number of in-range scans classified into one device bucket.
type DeviceCount struct {
	Device string `json:"device"` // Mobile, Tablet, Desktop, Other
	Scans  int    `json:"scans"`
}

// TopQRCode is one entry of the scan-count ranking within the selected range.
type TopQRCode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Scans int    `json:"scans"`
}
