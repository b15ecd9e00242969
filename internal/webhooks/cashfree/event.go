package cashfreewebhook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Recognized event types. Anything else is acknowledged without processing
// so the gateway stops retrying.
const (
	EventPaymentSuccess     = "PAYMENT_SUCCESS_WEBHOOK"
	EventPaymentFailed      = "PAYMENT_FAILED_WEBHOOK"
	EventPaymentUserDropped = "PAYMENT_USER_DROPPED_WEBHOOK"
	EventTransferFailed     = "TRANSFER_FAILED"
	EventTransferRejected   = "TRANSFER_REJECTED"
	EventTransferReversed   = "TRANSFER_REVERSED"
)

// Event is the gateway's webhook envelope, reduced to the fields the
// reconciler consumes.
type Event struct {
	Type      string    `json:"type"`
	EventTime string    `json:"event_time"`
	Data      EventData `json:"data"`
}

type EventData struct {
	Order    OrderData    `json:"order"`
	Payment  PaymentData  `json:"payment"`
	Transfer TransferData `json:"transfer"`
	Error    *ErrorData   `json:"error_details"`
}

type OrderData struct {
	OrderID   string            `json:"order_id"`
	OrderTags map[string]string `json:"order_tags"`
}

type PaymentData struct {
	CfPaymentID    json.Number `json:"cf_payment_id"`
	PaymentStatus  string      `json:"payment_status"`
	PaymentMessage string      `json:"payment_message"`
}

type TransferData struct {
	TransferID json.Number `json:"transfer_id"`
	Reason     string      `json:"reason"`
}

type ErrorData struct {
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
}

// OrderID yields the join key for the event: the gateway order id, or the
// transfer id for payout events (both resolve against the same columns).
func (e *Event) OrderID() string {
	if id := strings.TrimSpace(e.Data.Order.OrderID); id != "" {
		return id
	}
	return strings.TrimSpace(e.Data.Transfer.TransferID.String())
}

// PaymentID yields the gateway payment id, empty when absent.
func (e *Event) PaymentID() string {
	return strings.TrimSpace(e.Data.Payment.CfPaymentID.String())
}

// Key dedupes redeliveries of the same gateway notification.
func (e *Event) Key() string {
	return fmt.Sprintf("%s:%s:%s", e.Type, e.OrderID(), e.EventTime)
}

// FailureReason derives the reason recorded on rows marked FAILED.
func (e *Event) FailureReason() string {
	switch e.Type {
	case EventPaymentUserDropped:
		return "User dropped payment"
	case EventTransferFailed, EventTransferRejected, EventTransferReversed:
		if reason := strings.TrimSpace(e.Data.Transfer.Reason); reason != "" {
			return reason
		}
		return "Transfer " + strings.ToLower(strings.TrimPrefix(e.Type, "TRANSFER_"))
	default:
		if e.Data.Error != nil && e.Data.Error.ErrorDescription != "" {
			return e.Data.Error.ErrorDescription
		}
		if msg := strings.TrimSpace(e.Data.Payment.PaymentMessage); msg != "" {
			return msg
		}
		return "Payment failed"
	}
}
