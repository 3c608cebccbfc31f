package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/Mayen007/qrgen/analytics"
	"github.com/Mayen007/qrgen/middleware"
	"github.com/Mayen007/qrgen/model"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// GetAnalytics handles GET /api/analytics
// @Summary Get analytics summary
// @Description Computes the dashboard summary over the caller's QR codes and scan events: totals, per-day series, type and device breakdowns, top codes and recent scans.
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param days query int false "Chart range in days" default(7)
// @Success 200 {object} model.AnalyticsSummary "Analytics summary"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/analytics [get]
func (h *QRHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := middleware.GetUserID(r)
	if userID == "" {
		SendJSONError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Authentication required")
		return
	}

	days := h.config.Analytics.DefaultRangeDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil {
			SendJSONError(w, http.StatusBadRequest, errors.New("invalid days parameter"), "Days must be a number")
			return
		}
		days = parsed
	}
	if days < 1 {
		days = 1
	}
	if days > h.config.Analytics.MaxRangeDays {
		days = h.config.Analytics.MaxRangeDays
	}

	qrCodes, err := h.fetchOwnerQRCodes(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("owner_id", userID).Msg("Failed to fetch QR codes for analytics")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to fetch analytics, try refreshing")
		return
	}

	scans, err := h.fetchScans(ctx, qrCodes)
	if err != nil {
		log.Error().Err(err).Str("owner_id", userID).Msg("Failed to fetch scan events")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to fetch analytics, try refreshing")
		return
	}

	summary := analytics.Aggregate(qrCodes, scans, days, time.Now())

	log.Debug().
		Str("owner_id", userID).
		Int("days", days).
		Int("qr_codes", summary.TotalQRCodes).
		Int("scans", summary.TotalScans).
		Msg("Analytics computed")

	SendJSONSuccess(w, http.StatusOK, summary)
}

// GetScanLog handles GET /api/qrcodes/{qrCodeID}/scans
// @Summary Get raw scan log
// @Description Returns the full scan event log for one QR code, newest first. Only the owner may read it.
// @Tags Analytics
// @Security BearerAuth
// @Produce json
// @Param qrCodeID path string true "QR code ID"
// @Success 200 {object} model.ScanLogResponse "Scan log"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Failure 404 {object} ErrorResponse "QR code not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/qrcodes/{qrCodeID}/scans [get]
func (h *QRHandler) GetScanLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := middleware.GetUserID(r)
	if userID == "" {
		SendJSONError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Authentication required")
		return
	}

	qrCodeID := mux.Vars(r)["qrCodeID"]

	qr, err := h.loadQRCode(ctx, qrCodeID)
	if err != nil {
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to retrieve QR code")
		return
	}
	if qr == nil {
		SendJSONError(w, http.StatusNotFound, errors.New("QR code not found"), "")
		return
	}
	if qr.OwnerID != userID {
		SendJSONError(w, http.StatusForbidden, errors.New("forbidden"), "You do not have permission to read this QR code's scans")
		return
	}

	scans, err := h.loadScanLog(ctx, qrCodeID)
	if err != nil {
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to retrieve scan log")
		return
	}

	SendJSONSuccess(w, http.StatusOK, model.ScanLogResponse{
		QRCodeID:   qrCodeID,
		Title:      qr.Title,
		TotalScans: len(scans),
		Scans:      scans,
	})
}

// loadScanLog reads one QR code's scan events, newest first. Entries that no
// longer parse are skipped rather than failing the whole read.
func (h *QRHandler) loadScanLog(ctx context.Context, qrCodeID string) ([]model.ScanEvent, error) {
	raw, err := h.redis.LRange(ctx, scansKey(qrCodeID), 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	scans := make([]model.ScanEvent, 0, len(raw))
	for _, entry := range raw {
		var scan model.ScanEvent
		if err := json.Unmarshal([]byte(entry), &scan); err != nil {
			log.Warn().Err(err).Str("qr_id", qrCodeID).Msg("Skipping unparseable scan event")
			continue
		}
		scans = append(scans, scan)
	}
	return scans, nil
}

// fetchScans collects the scan logs of all given QR codes into one slice
// sorted newest-first, the input order the aggregator requires. Events with
// no timestamp sort last.
func (h *QRHandler) fetchScans(ctx context.Context, qrCodes []model.QRCode) ([]model.ScanEvent, error) {
	var all []model.ScanEvent
	for _, qr := range qrCodes {
		scans, err := h.loadScanLog(ctx, qr.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, scans...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		ti, tj := all[i].Timestamp, all[j].Timestamp
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})

	return all, nil
}
