package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/config"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
)

const (
	sandboxEnv    = "sandbox"
	productionEnv = "production"

	sandboxBaseURL    = "https://sandbox.cashfree.com/pg"
	productionBaseURL = "https://api.cashfree.com/pg"
)

var (
	errClientIDRequired      = errors.New("cashfree client id is required")
	errClientSecretRequired  = errors.New("cashfree client secret is required")
	errWebhookSecretRequired = errors.New("cashfree webhook secret is required")
	errInvalidCashfreeEnv    = fmt.Errorf("cashfree environment must be %q or %q", sandboxEnv, productionEnv)
)

// Client wraps the Cashfree PG REST API plus env-specific metadata.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	environment   string
	clientID      string
	clientSecret  string
	webhookSecret string
	apiVersion    string
}

// NewClient validates the configured credentials and pins the environment.
func NewClient(ctx context.Context, cfg config.CashfreeConfig, logg *logger.Logger) (*Client, error) {
	env := cfg.Environment()
	if env != sandboxEnv && env != productionEnv {
		return nil, errInvalidCashfreeEnv
	}

	clientID := strings.TrimSpace(cfg.ClientID)
	if clientID == "" {
		return nil, errClientIDRequired
	}
	clientSecret := strings.TrimSpace(cfg.ClientSecret)
	if clientSecret == "" {
		return nil, errClientSecretRequired
	}
	webhookSecret := strings.TrimSpace(cfg.WebhookSecret)
	if webhookSecret == "" {
		return nil, errWebhookSecretRequired
	}

	baseURL := sandboxBaseURL
	if env == productionEnv {
		baseURL = productionBaseURL
	}

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("cashfree client initialized (%s)", env))
	}

	return &Client{
		httpClient:    &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL:       baseURL,
		environment:   env,
		clientID:      clientID,
		clientSecret:  clientSecret,
		webhookSecret: webhookSecret,
		apiVersion:    cfg.APIVersion,
	}, nil
}

// Environment reports the normalized Cashfree environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// WebhookSecret exposes the signing secret used for webhook verification.
func (c *Client) WebhookSecret() string {
	if c == nil {
		return ""
	}
	return c.webhookSecret
}

// SetBaseURL overrides the API host. Intended for tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// CustomerDetails identifies the payer on an order.
type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

// CreateOrderParams is the payload for creating a checkout order.
type CreateOrderParams struct {
	OrderID       string            `json:"order_id,omitempty"`
	OrderAmount   decimal.Decimal   `json:"order_amount"`
	OrderCurrency string            `json:"order_currency"`
	Customer      CustomerDetails   `json:"customer_details"`
	OrderTags     map[string]string `json:"order_tags,omitempty"`
	OrderNote     string            `json:"order_note,omitempty"`
}

// Order is the subset of the gateway's order resource the platform consumes.
type Order struct {
	OrderID          string          `json:"order_id"`
	OrderAmount      decimal.Decimal `json:"order_amount"`
	OrderCurrency    string          `json:"order_currency"`
	OrderStatus      string          `json:"order_status"`
	PaymentSessionID string          `json:"payment_session_id"`
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Type    string `json:"type"`
}

// CreateOrder registers a checkout order with the gateway.
func (c *Client) CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error) {
	if params.OrderAmount.Sign() <= 0 {
		return nil, fmt.Errorf("order amount must be positive")
	}
	if params.OrderCurrency == "" {
		params.OrderCurrency = "INR"
	}
	if params.Customer.CustomerID == "" {
		return nil, fmt.Errorf("customer id is required")
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode order params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", c.apiVersion)
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-client-secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var gatewayErr apiError
		if jsonErr := json.Unmarshal(payload, &gatewayErr); jsonErr == nil && gatewayErr.Message != "" {
			return nil, fmt.Errorf("cashfree order rejected (%d): %s", resp.StatusCode, gatewayErr.Message)
		}
		return nil, fmt.Errorf("cashfree order rejected (%d)", resp.StatusCode)
	}

	var order Order
	if err := json.Unmarshal(payload, &order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &order, nil
}
