// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/card-keeper-bot/internal/logger"
	"github.com/MKhiriev/card-keeper-bot/internal/utils"
	"github.com/MKhiriev/card-keeper-bot/models"
	"github.com/go-resty/resty/v2"
)

// HTTPClientConfig configures the HTTP implementation of [ServerAdapter].
type HTTPClientConfig struct {
	// BaseURL is the address of the card-keeper server. A missing scheme is
	// treated as "http://".
	BaseURL string

	// RequestTimeout bounds each request. Defaults to 15 seconds.
	RequestTimeout time.Duration
}

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL and configures
// the underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(cfg HTTPClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) SendAction(ctx context.Context, action models.Action) (models.Instruction, error) {
	log := h.logger.With().Str("func", "SendAction").Logger()

	envelope, err := models.NewActionEnvelope(action)
	if err != nil {
		return nil, fmt.Errorf("encode action: %w", err)
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(envelope).
		Post("/api/actions")
	if err != nil {
		return nil, fmt.Errorf("send action request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Error().Err(err).Msg("server rejected action")
		return nil, err
	}

	var instructionEnvelope models.InstructionEnvelope
	if err = json.Unmarshal(resp.Body(), &instructionEnvelope); err != nil {
		return nil, fmt.Errorf("decode instruction envelope: %w", err)
	}

	instruction, err := instructionEnvelope.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode instruction: %w", err)
	}

	return instruction, nil
}

func (h *httpServerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("server version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("address %q has no host", raw)
	}

	return strings.TrimRight(parsed.String(), "/"), nil
}
