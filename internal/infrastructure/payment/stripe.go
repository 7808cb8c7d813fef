// Package payment implements the ports.PaymentGateway adapter against the
// Stripe Checkout Sessions API. The engine only ever sees the narrow port:
// a checkout URL out, a redirect callback back in.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskbid/marketplace/internal/core/domain"
)

const requestTimeout = 10 * time.Second

// StripeGateway creates hosted checkout sessions for task settlement.
type StripeGateway struct {
	secretKey string
	apiURL    string
	client    *http.Client
	log       zerolog.Logger
}

func NewStripeGateway(secretKey, apiURL string, log zerolog.Logger) *StripeGateway {
	return &StripeGateway{
		secretKey: secretKey,
		apiURL:    strings.TrimRight(apiURL, "/"),
		client:    &http.Client{Timeout: requestTimeout},
		log:       log,
	}
}

type checkoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckout creates a single-item checkout session and returns the URL
// the buyer is redirected to. The amount arrives in major currency units and
// is converted to minor units (×100) here, at the provider boundary.
func (g *StripeGateway) CreateCheckout(ctx context.Context, taskTitle string, amount int, successURL, cancelURL string) (string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.Itoa(amount*100))
	form.Set("line_items[0][price_data][product_data][name]", taskTitle)
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create checkout: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("create checkout: %w: %v", domain.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("stripe rejected checkout session")
		return "", fmt.Errorf("create checkout: status %d: %w", resp.StatusCode, domain.ErrGatewayFailure)
	}

	var session checkoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("create checkout: decode response: %w: %v", domain.ErrGatewayFailure, err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("create checkout: empty session url: %w", domain.ErrGatewayFailure)
	}

	g.log.Debug().Str("session_id", session.ID).Msg("checkout session created")
	return session.URL, nil
}
