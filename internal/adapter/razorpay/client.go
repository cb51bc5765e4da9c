// Package razorpay implements the payment gateway port against the Razorpay
// Payment Links API.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/taxnation/crm-backend/internal/config"
	"github.com/taxnation/crm-backend/internal/service/payment"
)

// Client issues payment links via the Razorpay REST API using basic auth.
type Client struct {
	baseURL     string
	keyID       string
	keySecret   string
	callbackURL string
	httpClient  *http.Client
	log         *slog.Logger
}

// NewClient creates a gateway client from payment configuration.
func NewClient(cfg config.PaymentConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		keyID:       cfg.KeyID,
		keySecret:   cfg.KeySecret,
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		log:         logger.With("adapter", "razorpay"),
	}
}

// linkRequest is the Razorpay payment-link creation payload. Amount is in
// the smallest currency unit (paise for INR).
type linkRequest struct {
	Amount      int64        `json:"amount"`
	Currency    string       `json:"currency"`
	Description string       `json:"description,omitempty"`
	Customer    linkCustomer `json:"customer"`
	CallbackURL string       `json:"callback_url,omitempty"`
	NotifySMS   bool         `json:"notify_sms"`
}

type linkCustomer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// linkResponse is the subset of the Razorpay response the service needs.
type linkResponse struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

// apiError is the Razorpay error envelope.
type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateLink creates a payment link and returns its id and shareable URL.
func (c *Client) CreateLink(ctx context.Context, req payment.GatewayRequest) (*payment.GatewayLink, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	payload := linkRequest{
		Amount:      toSubunits(req.Amount),
		Currency:    currency,
		Description: req.Description,
		Customer: linkCustomer{
			Name:    req.CustomerName,
			Contact: req.Contact,
		},
		CallbackURL: c.callbackURL,
		NotifySMS:   req.Contact != "",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("razorpay: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment_links", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("razorpay: create request: %w", err)
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.DebugContext(ctx, "razorpay create link",
		slog.Int64("amount_subunits", payload.Amount),
		slog.String("currency", currency))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.ErrorContext(ctx, "razorpay request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("razorpay: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("razorpay: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e apiError
		if json.Unmarshal(respBody, &e) == nil && e.Error.Description != "" {
			return nil, fmt.Errorf("razorpay: status %d: %s", resp.StatusCode, e.Error.Description)
		}
		return nil, fmt.Errorf("razorpay: unexpected status %d", resp.StatusCode)
	}

	var link linkResponse
	if err := json.Unmarshal(respBody, &link); err != nil {
		return nil, fmt.Errorf("razorpay: decode json: %w", err)
	}
	if link.ID == "" || link.ShortURL == "" {
		return nil, fmt.Errorf("razorpay: response missing link id or url")
	}

	c.log.InfoContext(ctx, "payment link created",
		slog.String("link_id", link.ID),
		slog.String("status", link.Status))

	return &payment.GatewayLink{
		ID:       link.ID,
		ShortURL: link.ShortURL,
		Status:   link.Status,
	}, nil
}

// toSubunits converts a rupee amount to paise, rounding to the nearest unit
// to dodge float representation noise like 99.99*100 = 9998.999...
func toSubunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// interface guard
var _ payment.Gateway = (*Client)(nil)
