package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Mayen007/qrgen/cache"
	"github.com/Mayen007/qrgen/config"
	"github.com/Mayen007/qrgen/model"

	"github.com/go-redis/redis/v8"
)

// Redis key layout. Scan logs are LPUSHed so that index 0 is always the most
// recent event; the aggregator relies on newest-first input.
func qrKey(id string) string          { return "qr:" + id }
func scansKey(qrID string) string     { return "scans:" + qrID }
func ownerIndexKey(uid string) string { return "user_qrcodes:" + uid }

// QRHandler handles QR code generation, rendering, scan tracking and
// analytics.
type QRHandler struct {
	redis   *redis.Client
	cache   *cache.Cache
	config  config.Config
	baseURL string
}

// NewQRHandler creates a new QR handler
func NewQRHandler(redisClient *redis.Client, cacheClient *cache.Cache, cfg config.Config) *QRHandler {
	// Use configured base_url if provided, otherwise construct from scheme, IP, and port
	baseURL := cfg.WebServer.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s://%s:%s", cfg.WebServer.Scheme, cfg.WebServer.IP, cfg.WebServer.Port)
	}
	return &QRHandler{
		redis:   redisClient,
		cache:   cacheClient,
		config:  cfg,
		baseURL: baseURL,
	}
}

// loadQRCode fetches a QR record by ID, consulting the in-process cache
// first. Returns (nil, nil) when the record does not exist.
func (h *QRHandler) loadQRCode(ctx context.Context, id string) (*model.QRCode, error) {
	if h.cacheEnabled() {
		if cached, found := h.cache.Get(qrKey(id)); found {
			if qr, ok := cached.(model.QRCode); ok {
				return &qr, nil
			}
		}
	}

	data, err := h.redis.Get(ctx, qrKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var qr model.QRCode
	if err := json.Unmarshal(data, &qr); err != nil {
		return nil, err
	}

	if h.cacheEnabled() {
		h.cache.Set(qrKey(id), qr, 1024)
	}
	return &qr, nil
}

// storeQRCode persists a QR record and refreshes the cache entry.
func (h *QRHandler) storeQRCode(ctx context.Context, qr *model.QRCode) error {
	data, err := json.Marshal(qr)
	if err != nil {
		return err
	}
	if err := h.redis.Set(ctx, qrKey(qr.ID), data, 0).Err(); err != nil {
		return err
	}
	if h.cacheEnabled() {
		h.cache.Set(qrKey(qr.ID), *qr, 1024)
	}
	return nil
}

func (h *QRHandler) cacheEnabled() bool {
	return h.config.Cache.Enabled && h.cache != nil
}

func (h *QRHandler) scanURL(id string) string  { return fmt.Sprintf("%s/s/%s", h.baseURL, id) }
func (h *QRHandler) imageURL(id string) string { return fmt.Sprintf("%s/qr/%s", h.baseURL, id) }
