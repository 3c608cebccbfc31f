package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Mayen007/qrgen/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

// QRCodeImage handles GET /qr/{qrCodeID} - renders the stored payload as PNG
// @Summary Render QR code image
// @Description Renders the QR code's stored payload string as a PNG. Size, error correction level and colors are adjustable; colors default to the settings chosen at generation time.
// @Tags QRCodes
// @Produce png
// @Param qrCodeID path string true "QR code ID"
// @Param size query int false "Image size in pixels (128-1024)" default(256)
// @Param level query string false "Error correction level: low, medium, high, highest" default(medium)
// @Param fg query string false "Foreground color, hex"
// @Param bg query string false "Background color, hex"
// @Success 200 "PNG image"
// @Failure 400 {object} ErrorResponse "Invalid parameter"
// @Failure 404 {object} ErrorResponse "QR code not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /qr/{qrCodeID} [get]
func (h *QRHandler) QRCodeImage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	qrCodeID := mux.Vars(r)["qrCodeID"]

	qr, err := h.loadQRCode(ctx, qrCodeID)
	if err != nil {
		log.Error().Err(err).Str("qr_id", qrCodeID).Msg("Failed to load QR code for rendering")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to retrieve QR code")
		return
	}
	if qr == nil {
		log.Warn().Str("qr_id", qrCodeID).Msg("QR code not found for rendering")
		SendJSONError(w, http.StatusNotFound, errors.New("QR code not found"), "")
		return
	}

	query := r.URL.Query()

	// Size parameter (default: the stored setting, min: 128, max: 1024)
	size := qr.Settings.Size
	if size == 0 {
		size = defaultImageSize
	}
	if sizeStr := query.Get("size"); sizeStr != "" {
		parsedSize, err := strconv.Atoi(sizeStr)
		if err != nil {
			SendJSONError(w, http.StatusBadRequest, errors.New("invalid size parameter"), "Size must be a number")
			return
		}
		size = parsedSize
	}
	if size < 128 || size > 1024 {
		SendJSONError(w, http.StatusBadRequest, errors.New("size out of range"), "Size must be between 128 and 1024")
		return
	}

	// Error correction level (default: medium)
	level := qrcode.Medium
	if levelStr := query.Get("level"); levelStr != "" {
		switch levelStr {
		case "low":
			level = qrcode.Low
		case "medium":
			level = qrcode.Medium
		case "high":
			level = qrcode.High
		case "highest":
			level = qrcode.Highest
		default:
			SendJSONError(w, http.StatusBadRequest, errors.New("invalid level parameter"), "Level must be: low, medium, high, or highest")
			return
		}
	}

	fg := qr.Settings.Color
	if v := query.Get("fg"); v != "" {
		fg = v
	}
	bg := qr.Settings.BgColor
	if v := query.Get("bg"); v != "" {
		bg = v
	}

	// The stored content string is encoded verbatim; the scannable image and
	// the persisted payload can never drift apart.
	code, err := qrcode.New(qr.Content, level)
	if err != nil {
		log.Error().Err(err).Str("qr_id", qrCodeID).Msg("Failed to build QR symbol")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to generate QR code")
		return
	}

	if fg != "" {
		fgColor, err := utils.ParseHexColor(fg)
		if err != nil {
			SendJSONError(w, http.StatusBadRequest, err, "Invalid foreground color")
			return
		}
		code.ForegroundColor = fgColor
	}
	if bg != "" {
		bgColor, err := utils.ParseHexColor(bg)
		if err != nil {
			SendJSONError(w, http.StatusBadRequest, err, "Invalid background color")
			return
		}
		code.BackgroundColor = bgColor
	}

	png, err := code.PNG(size)
	if err != nil {
		log.Error().Err(err).Str("qr_id", qrCodeID).Msg("Failed to render QR PNG")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))

	if _, err := w.Write(png); err != nil {
		log.Error().Err(err).Msg("Failed to write QR image response")
		return
	}

	log.Info().
		Str("qr_id", qrCodeID).
		Str("type", qr.Type).
		Int("size", size).
		Msg("QR image rendered")
}
