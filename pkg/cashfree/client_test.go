package cashfree

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/config"
)

func testConfig() config.CashfreeConfig {
	return config.CashfreeConfig{
		ClientID:      "cf_client",
		ClientSecret:  "cf_secret",
		WebhookSecret: "wh_secret",
		Env:           "sandbox",
		APIVersion:    "2023-08-01",
		HTTPTimeout:   5 * time.Second,
	}
}

func TestNewClientValidatesCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.ClientID = ""
	_, err := NewClient(context.Background(), cfg, nil)
	require.ErrorIs(t, err, errClientIDRequired)

	cfg = testConfig()
	cfg.WebhookSecret = "  "
	_, err = NewClient(context.Background(), cfg, nil)
	require.ErrorIs(t, err, errWebhookSecretRequired)

	cfg = testConfig()
	cfg.Env = "staging"
	_, err = NewClient(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestCreateOrderSendsCredentialHeaders(t *testing.T) {
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		var params CreateOrderParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		require.Equal(t, "INR", params.OrderCurrency)
		json.NewEncoder(w).Encode(Order{
			OrderID:          "order_1",
			OrderAmount:      params.OrderAmount,
			OrderStatus:      "ACTIVE",
			PaymentSessionID: "session_abc",
		})
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	client.SetBaseURL(server.URL)

	order, err := client.CreateOrder(context.Background(), CreateOrderParams{
		OrderAmount: decimal.NewFromInt(100),
		Customer:    CustomerDetails{CustomerID: "user_1", CustomerPhone: "9999999999"},
		OrderTags:   map[string]string{"purchase": "swipes"},
	})
	require.NoError(t, err)
	require.Equal(t, "order_1", order.OrderID)
	require.Equal(t, "session_abc", order.PaymentSessionID)
	require.Equal(t, "cf_client", gotHeaders.Get("x-client-id"))
	require.Equal(t, "cf_secret", gotHeaders.Get("x-client-secret"))
	require.Equal(t, "2023-08-01", gotHeaders.Get("x-api-version"))
}

func TestCreateOrderSurfacesGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(apiError{Message: "order_amount invalid", Code: "invalid_request"})
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	client.SetBaseURL(server.URL)

	_, err = client.CreateOrder(context.Background(), CreateOrderParams{
		OrderAmount: decimal.NewFromInt(10),
		Customer:    CustomerDetails{CustomerID: "user_1"},
	})
	require.ErrorContains(t, err, "order_amount invalid")
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	client, err := NewClient(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	_, err = client.CreateOrder(context.Background(), CreateOrderParams{
		OrderAmount: decimal.Zero,
		Customer:    CustomerDetails{CustomerID: "user_1"},
	})
	require.Error(t, err)
}

func TestWebhookSignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK"}`)
	ts := "1717171717"
	sig := SignWebhookPayload(payload, ts, "wh_secret")

	require.True(t, VerifyWebhookSignature(payload, ts, sig, "wh_secret"))
	require.False(t, VerifyWebhookSignature(payload, ts, sig, "other_secret"))
	require.False(t, VerifyWebhookSignature(payload, "1717171718", sig, "wh_secret"))
	require.False(t, VerifyWebhookSignature([]byte(`{}`), ts, sig, "wh_secret"))
	require.False(t, VerifyWebhookSignature(payload, ts, "", "wh_secret"))
}

func TestPaymentSignatureRoundTrip(t *testing.T) {
	sig := SignPayment("order_9", "payment_3", "wh_secret")
	require.True(t, VerifyPaymentSignature("order_9", "payment_3", sig, "wh_secret"))
	require.False(t, VerifyPaymentSignature("order_9", "payment_4", sig, "wh_secret"))
	require.False(t, VerifyPaymentSignature("order_8", "payment_3", sig, "wh_secret"))
}
