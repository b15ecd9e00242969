package purchases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/cashfree"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/config"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db/models"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gatewayClient interface {
	CreateOrder(ctx context.Context, params cashfree.CreateOrderParams) (*cashfree.Order, error)
	WebhookSecret() string
}

type ServiceParams struct {
	Repo              Repository
	Gateway           gatewayClient
	TransactionRunner txRunner
	Swipes            config.SwipeConfig
	Logger            *logger.Logger
}

// Service owns the swipe-pack purchase flow: order creation against the
// gateway and the two completion paths (client-driven verification here,
// webhook-driven via CompleteFromWebhook).
type Service struct {
	repo     Repository
	gateway  gatewayClient
	txRunner txRunner
	swipes   config.SwipeConfig
	logg     *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "purchases repo required")
	}
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "gateway client required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &Service{
		repo:     params.Repo,
		gateway:  params.Gateway,
		txRunner: params.TransactionRunner,
		swipes:   params.Swipes,
		logg:     params.Logger,
	}, nil
}

// PurchaseOrder is returned to the client to drive the gateway checkout.
type PurchaseOrder struct {
	PurchaseID       uuid.UUID       `json:"purchaseId"`
	OrderID          string          `json:"orderId"`
	PaymentSessionID string          `json:"paymentSessionId"`
	Amount           decimal.Decimal `json:"amount"`
	SwipeCount       int             `json:"swipeCount"`
}

// CreateOrder registers a gateway order priced at count x per-swipe price
// (rounded up to whole rupees) and records a PENDING SwipePurchase.
func (s *Service) CreateOrder(ctx context.Context, userID uuid.UUID, count int) (*PurchaseOrder, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if count <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "swipe count must be positive")
	}

	amount := decimal.NewFromInt(int64(count)).
		Mul(decimal.NewFromInt(int64(s.swipes.PricePerSwipeINR))).
		Ceil()

	order, err := s.gateway.CreateOrder(ctx, cashfree.CreateOrderParams{
		OrderAmount: amount,
		Customer:    cashfree.CustomerDetails{CustomerID: userID.String()},
		OrderTags:   map[string]string{"purchase": "swipes"},
		OrderNote:   fmt.Sprintf("%d swipes", count),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create gateway order")
	}

	purchase := &models.SwipePurchase{
		UserID:          userID,
		SwipeCount:      count,
		Amount:          amount,
		CashfreeOrderID: order.OrderID,
		PaymentStatus:   enums.PaymentStatusPending,
	}
	if err := s.repo.CreateSwipePurchase(ctx, purchase); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record swipe purchase")
	}

	if s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, order.OrderID)
		s.logg.Info(logCtx, fmt.Sprintf("swipe purchase order created (%d swipes)", count))
	}

	return &PurchaseOrder{
		PurchaseID:       purchase.ID,
		OrderID:          order.OrderID,
		PaymentSessionID: order.PaymentSessionID,
		Amount:           amount,
		SwipeCount:       count,
	}, nil
}

// VerifyClientPayment is the client-driven completion path: the caller sends
// back (orderId, paymentId, signature) after checkout and we verify the
// signature before applying the same grant the webhook path applies. A
// missing PENDING row is an explicit error here, unlike at the webhook
// boundary.
func (s *Service) VerifyClientPayment(ctx context.Context, userID uuid.UUID, orderID, paymentID, signature string) error {
	if !cashfree.VerifyPaymentSignature(orderID, paymentID, signature, s.gateway.WebhookSecret()) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid payment signature")
	}

	applied, err := s.complete(ctx, orderID, paymentID, &userID)
	if err != nil {
		return err
	}
	if !applied {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no pending purchase for this order")
	}
	return nil
}

// CompleteFromWebhook applies a gateway-confirmed swipe purchase. Reports
// applied=false when no PENDING row matches so the reconciler can keep
// resolving.
func (s *Service) CompleteFromWebhook(ctx context.Context, orderID, paymentID string) (bool, error) {
	return s.complete(ctx, orderID, paymentID, nil)
}

func (s *Service) complete(ctx context.Context, orderID, paymentID string, expectUser *uuid.UUID) (bool, error) {
	if orderID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	applied := false
	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		purchase, err := repo.FindPendingByOrderID(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pending swipe purchase")
		}
		if purchase == nil {
			return nil
		}
		if expectUser != nil && purchase.UserID != *expectUser {
			return pkgerrors.New(pkgerrors.CodeForbidden, "purchase belongs to another user")
		}

		purchase.PaymentStatus = enums.PaymentStatusCompleted
		if paymentID != "" {
			purchase.CashfreePaymentID = &paymentID
		}
		if err := repo.UpdateSwipePurchase(ctx, purchase); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark swipe purchase completed")
		}

		pref, err := repo.FindOrCreatePreference(ctx, purchase.UserID, s.swipes.DefaultDailyLimit)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user preference")
		}

		// Overwrite, not increment: base allotment plus the purchased count.
		// Redelivery cannot double-apply because the PENDING lookup above
		// fails once the purchase is finalized.
		pref.DailySwipeLimit = s.swipes.PurchaseBaseGrant + purchase.SwipeCount
		if err := repo.UpdatePreference(ctx, pref); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grant swipe capacity")
		}

		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if applied && s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, orderID)
		s.logg.Info(logCtx, "swipe purchase completed")
	}
	return applied, nil
}
