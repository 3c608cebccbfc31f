package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Mayen007/qrgen/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const sessionCookieName = "qr_session"

// TrackScan handles GET /s/{qrCodeID} - the public scan tracking endpoint.
// Every scannable image encodes this URL (for url payloads) so that a visit
// records exactly one scan event and one counter increment before the client
// is sent on to the target.
// @Summary Track a QR code scan
// @Description Records a scan event with client metadata, increments the scan counter, then redirects to the target URL (url type) or serves the payload content (other types).
// @Tags Scans
// @Produce plain
// @Param qrCodeID path string true "QR code ID"
// @Param tz query string false "Client timezone, e.g. Europe/Berlin"
// @Param res query string false "Client screen resolution, e.g. 1920x1080"
// @Success 302 "Redirect to target URL"
// @Success 200 "Payload content"
// @Failure 404 {object} ErrorResponse "QR code not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /s/{qrCodeID} [get]
func (h *QRHandler) TrackScan(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	qrCodeID := mux.Vars(r)["qrCodeID"]

	qr, err := h.loadQRCode(ctx, qrCodeID)
	if err != nil {
		log.Error().Err(err).Str("qr_id", qrCodeID).Msg("Failed to load QR code for scan")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to retrieve QR code")
		return
	}
	if qr == nil {
		log.Warn().Str("qr_id", qrCodeID).Msg("Scan of unknown QR code")
		SendJSONError(w, http.StatusNotFound, errors.New("QR code not found"), "")
		return
	}

	event := h.buildScanEvent(w, r, qr)
	h.recordScan(ctx, qr, event)

	// The scan is delivered regardless of whether recording succeeded; a
	// broken analytics write must not break the scanning user's experience.
	if qr.Type == "url" {
		log.Info().
			Str("qr_id", qr.ID).
			Str("target", qr.Content).
			Str("device", event.UserAgent).
			Msg("Scan redirect")
		http.Redirect(w, r, qr.Content, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, qr.Content)
}

// buildScanEvent assembles a scan record from what the scanning client
// reveals about itself. All fields besides the references are optional.
func (h *QRHandler) buildScanEvent(w http.ResponseWriter, r *http.Request, qr *model.QRCode) model.ScanEvent {
	now := time.Now()

	// Reuse the session cookie when present so repeat visits within a day
	// count as one unique user; mint one otherwise.
	sessionID := ""
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		sessionID = cookie.Value
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int((24 * time.Hour).Seconds()),
			HttpOnly: true,
		})
	}

	language := r.Header.Get("Accept-Language")
	if i := strings.IndexAny(language, ",;"); i >= 0 {
		language = language[:i]
	}

	platform := strings.Trim(r.Header.Get("Sec-Ch-Ua-Platform"), `"`)

	return model.ScanEvent{
		ID:               uuid.New().String(),
		QRCodeID:         qr.ID,
		OwnerID:          qr.OwnerID,
		Timestamp:        &now,
		UserAgent:        r.Header.Get("User-Agent"),
		Language:         language,
		Platform:         platform,
		Timezone:         r.URL.Query().Get("tz"),
		SessionID:        sessionID,
		Referrer:         r.Referer(),
		ScreenResolution: r.URL.Query().Get("res"),
	}
}

// recordScan appends the event to the QR code's scan log and bumps the
// record's counter, exactly once per request. Failures are logged but not
// surfaced to the scanning client.
func (h *QRHandler) recordScan(ctx context.Context, qr *model.QRCode, event model.ScanEvent) {
	eventData, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("qr_id", qr.ID).Msg("Failed to marshal scan event")
		return
	}

	// LPUSH keeps the log newest-first, which is the order the aggregator
	// expects its input in.
	if err := h.redis.LPush(ctx, scansKey(qr.ID), eventData).Err(); err != nil {
		log.Error().Err(err).Str("qr_id", qr.ID).Msg("Failed to store scan event")
		return
	}

	qr.ScanCount++
	qr.LastScannedAt = event.Timestamp
	if err := h.storeQRCode(ctx, qr); err != nil {
		log.Error().Err(err).Str("qr_id", qr.ID).Msg("Failed to update scan counter")
	}
}
