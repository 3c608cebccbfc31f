package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Mayen007/qrgen/middleware"
	"github.com/Mayen007/qrgen/model"
	"github.com/Mayen007/qrgen/payload"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const defaultImageSize = 256

// CreateQRCode handles POST /api/qrcodes
// @Summary Create a QR code
// @Description Validates the type-specific fields, encodes the payload string and persists the QR code record.
// @Tags QRCodes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateQRCodeRequest true "QR code fields"
// @Success 201 {object} model.QRCodeResponse "Created QR code"
// @Failure 400 {object} ErrorResponse "Invalid or missing fields"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/qrcodes [post]
func (h *QRHandler) CreateQRCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	userID := middleware.GetUserID(r)
	if userID == "" {
		SendJSONError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Authentication required")
		return
	}

	var req model.CreateQRCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		SendJSONError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	if req.Type == "" {
		req.Type = payload.TypeURL
	}

	fields := payload.Fields{Content: req.Content}
	if req.WiFi != nil {
		fields.WiFi = *req.WiFi
	}
	if req.Contact != nil {
		fields.Contact = *req.Contact
	}

	// Validation gates encoding: a limit violation blocks the request rather
	// than producing an oversized payload.
	if err := payload.Validate(req.Type, fields); err != nil {
		var fieldErr *payload.FieldError
		if errors.As(err, &fieldErr) {
			log.Warn().Str("field", fieldErr.Field).Str("type", req.Type).Msg("QR field validation failed")
			SendFieldError(w, fieldErr)
			return
		}
		SendJSONError(w, http.StatusBadRequest, err, "")
		return
	}

	title := req.Title
	if title == "" {
		title = payload.DeriveTitle(req.Type, fields)
	}

	settings := model.QRSettings{Color: "#000000", BgColor: "#ffffff", Size: defaultImageSize}
	if req.Settings != nil {
		settings = *req.Settings
	}

	qr := model.QRCode{
		ID:        uuid.New().String(),
		OwnerID:   userID,
		Type:      req.Type,
		Content:   payload.Encode(req.Type, fields),
		Title:     title,
		Settings:  settings,
		CreatedAt: time.Now(),
	}

	if err := h.storeQRCode(ctx, &qr); err != nil {
		log.Error().Err(err).Str("qr_id", qr.ID).Msg("Failed to store QR code")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to store QR code")
		return
	}

	if err := h.redis.SAdd(ctx, ownerIndexKey(userID), qr.ID).Err(); err != nil {
		log.Error().Err(err).Str("qr_id", qr.ID).Msg("Failed to add QR code to owner index")
		// Record is stored, the index can be repaired; don't fail the request
	}

	log.Info().
		Str("qr_id", qr.ID).
		Str("type", qr.Type).
		Str("owner_id", userID).
		Msg("QR code created")

	SendJSONSuccess(w, http.StatusCreated, model.QRCodeResponse{
		QRCode:   qr,
		ScanURL:  h.scanURL(qr.ID),
		ImageURL: h.imageURL(qr.ID),
	})
}

// ListQRCodes handles GET /api/qrcodes
// @Summary List QR codes
// @Description Returns all QR codes owned by the authenticated user, newest first.
// @Tags QRCodes
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.QRCodeResponse "QR codes"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/qrcodes [get]
func (h *QRHandler) ListQRCodes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	userID := middleware.GetUserID(r)
	if userID == "" {
		SendJSONError(w, http.StatusUnauthorized, errors.New("unauthorized"), "Authentication required")
		return
	}

	qrCodes, err := h.fetchOwnerQRCodes(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("owner_id", userID).Msg("Failed to fetch QR codes")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to fetch QR codes, try refreshing")
		return
	}

	responses := make([]model.QRCodeResponse, 0, len(qrCodes))
	for _, qr := range qrCodes {
		responses = append(responses, model.QRCodeResponse{
			QRCode:   qr,
			ScanURL:  h.scanURL(qr.ID),
			ImageURL: h.imageURL(qr.ID),
		})
	}

	SendJSONSuccess(w, http.StatusOK, responses)
}

// DeleteQRCode handles DELETE /api/qrcodes/{qrCodeID}
// @Summary Delete a QR code
// @Description Deletes a QR code and its scan log. Only the owner may delete.
// @Tags QRCodes
// @Security BearerAuth
// @Produce json
// @Param qrCodeID path string true "QR code ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Failure 404 {object} ErrorResponse "QR code not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/qrcodes/{qrCodeID} [delete]
func (h *QRHandler) DeleteQRCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
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
		SendJSONError(w, http.StatusForbidden, errors.New("forbidden"), "You do not own this QR code")
		return
	}

	if err := h.redis.Del(ctx, qrKey(qrCodeID), scansKey(qrCodeID)).Err(); err != nil {
		log.Error().Err(err).Str("qr_id", qrCodeID).Msg("Failed to delete QR code")
		SendJSONError(w, http.StatusInternalServerError, err, "Failed to delete QR code")
		return
	}
	h.redis.SRem(ctx, ownerIndexKey(userID), qrCodeID)

	if h.cacheEnabled() {
		h.cache.Delete(qrKey(qrCodeID))
	}

	log.Info().Str("qr_id", qrCodeID).Str("owner_id", userID).Msg("QR code deleted")
	SendJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted", "id": qrCodeID})
}

// fetchOwnerQRCodes loads every QR record in the owner's index. Index entries
// whose record has been deleted are skipped.
func (h *QRHandler) fetchOwnerQRCodes(ctx context.Context, userID string) ([]model.QRCode, error) {
	ids, err := h.redis.SMembers(ctx, ownerIndexKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	qrCodes := make([]model.QRCode, 0, len(ids))
	for _, id := range ids {
		qr, err := h.loadQRCode(ctx, id)
		if err != nil {
			return nil, err
		}
		if qr == nil {
			continue
		}
		qrCodes = append(qrCodes, *qr)
	}

	// Newest first, matching the dashboard listing order
	for i := 0; i < len(qrCodes); i++ {
		for j := i + 1; j < len(qrCodes); j++ {
			if qrCodes[j].CreatedAt.After(qrCodes[i].CreatedAt) {
				qrCodes[i], qrCodes[j] = qrCodes[j], qrCodes[i]
			}
		}
	}

	return qrCodes, nil
}
