package cashfree

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// VerifyWebhookSignature checks the x-webhook-signature header value against
// the exact raw payload bytes. Cashfree signs base64(HMAC-SHA256(timestamp +
// rawBody)) with the merchant webhook secret, so the body must not be parsed
// or re-serialized before verification.
func VerifyWebhookSignature(payload []byte, timestamp, signature, secret string) bool {
	if len(payload) == 0 || timestamp == "" || signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignWebhookPayload produces the signature a gateway would send. Used by the
// client-driven purchase verification flow and by tests.
func SignWebhookPayload(payload []byte, timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature checks a client-supplied payment confirmation:
// hex(HMAC-SHA256("orderId|paymentId")) keyed by the webhook secret.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}
	expected := SignPayment(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignPayment computes the hex HMAC over "orderId|paymentId".
func SignPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
