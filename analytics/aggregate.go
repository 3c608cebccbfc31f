// Package analytics computes the dashboard summary from a user's QR codes and
// scan events. Aggregation is a pure function of its inputs plus an injected
// "now"; every request recomputes from scratch, so invocations are safe to
// run in parallel.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/Mayen007/qrgen/model"
)

const (
	// dayFormat is the display bucketing key for the per-day series. Days are
	// matched by formatted-string equality, so two scans land in the same
	// bucket exactly when they render to the same chart label.
	dayFormat = "Jan 02"

	topCodesLimit    = 5
	recentScansLimit = 10
	weekLookbackDays = 7
)

// Device buckets, in display output order.
var deviceOrder = []string{"mobile", "desktop", "tablet", "other"}

// Aggregate computes the analytics summary for the given records. Scans must
// be supplied newest-first; the result's RecentScans preserves that order
// without re-sorting. Records with a missing timestamp are excluded from all
// time-bucketed metrics but still count toward the all-time totals, and scans
// referencing a QR code absent from qrCodes are dropped from the type and
// top-code attributions without failing the computation.
func Aggregate(qrCodes []model.QRCode, scans []model.ScanEvent, days int, now time.Time) model.AnalyticsSummary {
	windowStart := startOfDay(now.AddDate(0, 0, -days))
	windowEnd := endOfDay(now)

	inWindow := make([]model.ScanEvent, 0, len(scans))
	for _, s := range scans {
		if s.Timestamp == nil {
			continue
		}
		if !s.Timestamp.Before(windowStart) && !s.Timestamp.After(windowEnd) {
			inWindow = append(inWindow, s)
		}
	}

	byID := make(map[string]*model.QRCode, len(qrCodes))
	for i := range qrCodes {
		byID[qrCodes[i].ID] = &qrCodes[i]
	}

	recent := inWindow
	if len(recent) > recentScansLimit {
		recent = recent[:recentScansLimit]
	}

	return model.AnalyticsSummary{
		TotalScans:         len(scans),
		TotalQRCodes:       len(qrCodes),
		TotalViewsToday:    countViewsToday(scans, now),
		TotalViewsThisWeek: countViewsThisWeek(scans, now),
		ScansByDay:         dailySeries(inWindow, days, now),
		ScansByType:        byType(inWindow, byID),
		ScansByDevice:      byDevice(inWindow),
		TopQRCodes:         topCodes(inWindow, byID),
		RecentScans:        recent,
	}
}

// countViewsToday counts scans within today's calendar day.
func countViewsToday(scans []model.ScanEvent, now time.Time) int {
	dayStart := startOfDay(now)
	dayEnd := endOfDay(now)

	count := 0
	for _, s := range scans {
		if s.Timestamp == nil {
			continue
		}
		if !s.Timestamp.Before(dayStart) && !s.Timestamp.After(dayEnd) {
			count++
		}
	}
	return count
}

// countViewsThisWeek counts scans within a fixed 7-day lookback. This is
// intentionally independent of the selected chart range: "this week" is
// always seven days.
func countViewsThisWeek(scans []model.ScanEvent, now time.Time) int {
	weekStart := startOfDay(now.AddDate(0, 0, -weekLookbackDays))

	count := 0
	for _, s := range scans {
		if s.Timestamp == nil {
			continue
		}
		if !s.Timestamp.Before(weekStart) {
			count++
		}
	}
	return count
}

// dailySeries buckets the in-window scans into one entry per calendar day,
// oldest first. Unique users are approximated by distinct session keys
// (session ID, falling back to user agent).
func dailySeries(inWindow []model.ScanEvent, days int, now time.Time) []model.DayPoint {
	series := make([]model.DayPoint, 0, days)

	for i := days - 1; i >= 0; i-- {
		label := now.AddDate(0, 0, -i).Format(dayFormat)

		scanCount := 0
		sessions := make(map[string]struct{})
		for _, s := range inWindow {
			if s.Timestamp.Format(dayFormat) != label {
				continue
			}
			scanCount++
			sessions[sessionKey(s)] = struct{}{}
		}

		series = append(series, model.DayPoint{
			Date:        label,
			Scans:       scanCount,
			UniqueUsers: len(sessions),
		})
	}

	return series
}

// sessionKey approximates a distinct visitor within a day.
func sessionKey(s model.ScanEvent) string {
	if s.SessionID != "" {
		return s.SessionID
	}
	return s.UserAgent
}

// byType attributes each in-window scan to its QR code's payload type.
// Orphan scans (QR code deleted or not loaded) are silently dropped. Entry
// order follows first encounter, which keeps output stable for a stable
// input ordering.
func byType(inWindow []model.ScanEvent, byID map[string]*model.QRCode) []model.TypeCount {
	counts := make(map[string]int)
	var order []string

	for _, s := range inWindow {
		qr, ok := byID[s.QRCodeID]
		if !ok {
			continue
		}
		t := qr.Type
		if t == "" {
			t = "unknown"
		}
		if _, seen := counts[t]; !seen {
			order = append(order, t)
		}
		counts[t]++
	}

	result := make([]model.TypeCount, 0, len(order))
	for _, t := range order {
		result = append(result, model.TypeCount{Type: capitalize(t), Scans: counts[t]})
	}
	return result
}

// ClassifyDevice maps a user agent string to one of the device buckets. The
// rules are ordered: the tablet signatures win over the mobile ones, so the
// iPad entry in the mobile list never fires. Matching is case-sensitive.
func ClassifyDevice(userAgent string) string {
	switch {
	case containsAny(userAgent, "iPad", "Tablet"):
		return "tablet"
	case containsAny(userAgent, "Mobile", "Android", "iPhone", "iPad"):
		return "mobile"
	case containsAny(userAgent, "Windows", "Macintosh", "Linux"):
		return "desktop"
	default:
		return "other"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// byDevice classifies every in-window scan into exactly one device bucket and
// reports the non-zero buckets in a fixed display order.
func byDevice(inWindow []model.ScanEvent) []model.DeviceCount {
	counts := make(map[string]int, len(deviceOrder))
	for _, s := range inWindow {
		counts[ClassifyDevice(s.UserAgent)]++
	}

	result := make([]model.DeviceCount, 0, len(deviceOrder))
	for _, d := range deviceOrder {
		if counts[d] > 0 {
			result = append(result, model.DeviceCount{Device: capitalize(d), Scans: counts[d]})
		}
	}
	return result
}

// topCodes ranks QR codes by in-window scan count, descending, capped at
// five. Ties keep first-encounter order. Orphan scans carry no code to rank
// and are skipped.
func topCodes(inWindow []model.ScanEvent, byID map[string]*model.QRCode) []model.TopQRCode {
	counts := make(map[string]int)
	var order []string

	for _, s := range inWindow {
		if _, ok := byID[s.QRCodeID]; !ok {
			continue
		}
		if _, seen := counts[s.QRCodeID]; !seen {
			order = append(order, s.QRCodeID)
		}
		counts[s.QRCodeID]++
	}

	result := make([]model.TopQRCode, 0, len(order))
	for _, id := range order {
		qr := byID[id]
		result = append(result, model.TopQRCode{
			ID:    id,
			Title: displayTitle(qr),
			Type:  typeOrUnknown(qr.Type),
			Scans: counts[id],
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Scans > result[j].Scans
	})

	if len(result) > topCodesLimit {
		result = result[:topCodesLimit]
	}
	return result
}

// displayTitle resolves a ranking label: the stored title, else a truncated
// content preview, else a fixed placeholder.
func displayTitle(qr *model.QRCode) string {
	if qr.Title != "" {
		return qr.Title
	}
	if qr.Content != "" {
		content := qr.Content
		if len(content) > 30 {
			content = content[:30]
		}
		return content + "..."
	}
	return "Unknown QR Code"
}

func typeOrUnknown(t string) string {
	if t == "" {
		return "unknown"
	}
	return t
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
