package purchases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/cashfree"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/config"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/db/models"
	"github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/enums"
	pkgerrors "github.com/paritbhardwaj019/molle-event-platform-sub003/pkg/errors"
)

const testWebhookSecret = "whsec_test"

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubGateway struct {
	lastParams cashfree.CreateOrderParams
	order      *cashfree.Order
	err        error
}

func (g *stubGateway) CreateOrder(ctx context.Context, params cashfree.CreateOrderParams) (*cashfree.Order, error) {
	g.lastParams = params
	if g.err != nil {
		return nil, g.err
	}
	return g.order, nil
}

func (g *stubGateway) WebhookSecret() string { return testWebhookSecret }

type stubPurchaseRepo struct {
	purchases map[string]*models.SwipePurchase
	prefs     map[uuid.UUID]*models.UserPreference
	created   []*models.SwipePurchase
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{
		purchases: map[string]*models.SwipePurchase{},
		prefs:     map[uuid.UUID]*models.UserPreference{},
	}
}

func (r *stubPurchaseRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubPurchaseRepo) CreateSwipePurchase(ctx context.Context, purchase *models.SwipePurchase) error {
	purchase.ID = uuid.New()
	r.purchases[purchase.CashfreeOrderID] = purchase
	r.created = append(r.created, purchase)
	return nil
}

func (r *stubPurchaseRepo) FindPendingByOrderID(ctx context.Context, orderID string) (*models.SwipePurchase, error) {
	purchase, ok := r.purchases[orderID]
	if !ok || purchase.PaymentStatus != enums.PaymentStatusPending {
		return nil, nil
	}
	return purchase, nil
}

func (r *stubPurchaseRepo) UpdateSwipePurchase(ctx context.Context, purchase *models.SwipePurchase) error {
	r.purchases[purchase.CashfreeOrderID] = purchase
	return nil
}

func (r *stubPurchaseRepo) MarkPendingFailedByOrderID(ctx context.Context, orderID, reason string) (int64, error) {
	purchase, ok := r.purchases[orderID]
	if !ok || purchase.PaymentStatus != enums.PaymentStatusPending {
		return 0, nil
	}
	purchase.PaymentStatus = enums.PaymentStatusFailed
	purchase.FailureReason = &reason
	return 1, nil
}

func (r *stubPurchaseRepo) FindOrCreatePreference(ctx context.Context, userID uuid.UUID, defaultDailyLimit int) (*models.UserPreference, error) {
	if pref, ok := r.prefs[userID]; ok {
		return pref, nil
	}
	pref := &models.UserPreference{ID: uuid.New(), UserID: userID, DailySwipeLimit: defaultDailyLimit}
	r.prefs[userID] = pref
	return pref, nil
}

func (r *stubPurchaseRepo) UpdatePreference(ctx context.Context, pref *models.UserPreference) error {
	r.prefs[pref.UserID] = pref
	return nil
}

func newPurchaseService(t *testing.T, repo Repository, gateway gatewayClient) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:              repo,
		Gateway:           gateway,
		TransactionRunner: stubTxRunner{},
		Swipes: config.SwipeConfig{
			FreeSwipes:        3,
			PurchaseBaseGrant: 3,
			PricePerSwipeINR:  10,
			DefaultDailyLimit: 20,
		},
	})
	require.NoError(t, err)
	return svc
}

func TestCreateOrderPricesAndRecordsPending(t *testing.T) {
	repo := newStubPurchaseRepo()
	gateway := &stubGateway{order: &cashfree.Order{
		OrderID:          "order_abc",
		PaymentSessionID: "session_abc",
	}}
	svc := newPurchaseService(t, repo, gateway)

	userID := uuid.New()
	order, err := svc.CreateOrder(context.Background(), userID, 10)

	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.OrderID)
	assert.Equal(t, "session_abc", order.PaymentSessionID)
	assert.Equal(t, 10, order.SwipeCount)
	assert.True(t, order.Amount.Equal(decimal.NewFromInt(100)))

	assert.True(t, gateway.lastParams.OrderAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, userID.String(), gateway.lastParams.Customer.CustomerID)
	assert.Equal(t, "swipes", gateway.lastParams.OrderTags["purchase"])

	require.Len(t, repo.created, 1)
	recorded := repo.created[0]
	assert.Equal(t, enums.PaymentStatusPending, recorded.PaymentStatus)
	assert.Equal(t, userID, recorded.UserID)
	assert.Equal(t, "order_abc", recorded.CashfreeOrderID)
}

func TestCreateOrderRejectsNonPositiveCount(t *testing.T) {
	svc := newPurchaseService(t, newStubPurchaseRepo(), &stubGateway{})

	_, err := svc.CreateOrder(context.Background(), uuid.New(), 0)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestVerifyClientPaymentAppliesGrant(t *testing.T) {
	repo := newStubPurchaseRepo()
	svc := newPurchaseService(t, repo, &stubGateway{})

	userID := uuid.New()
	repo.purchases["order_abc"] = &models.SwipePurchase{
		ID:              uuid.New(),
		UserID:          userID,
		SwipeCount:      10,
		CashfreeOrderID: "order_abc",
		PaymentStatus:   enums.PaymentStatusPending,
	}

	signature := cashfree.SignPayment("order_abc", "pay_1", testWebhookSecret)
	err := svc.VerifyClientPayment(context.Background(), userID, "order_abc", "pay_1", signature)

	require.NoError(t, err)
	purchase := repo.purchases["order_abc"]
	assert.Equal(t, enums.PaymentStatusCompleted, purchase.PaymentStatus)
	require.NotNil(t, purchase.CashfreePaymentID)
	assert.Equal(t, "pay_1", *purchase.CashfreePaymentID)

	pref := repo.prefs[userID]
	require.NotNil(t, pref)
	assert.Equal(t, 13, pref.DailySwipeLimit)
}

func TestVerifyClientPaymentRejectsBadSignature(t *testing.T) {
	repo := newStubPurchaseRepo()
	svc := newPurchaseService(t, repo, &stubGateway{})

	err := svc.VerifyClientPayment(context.Background(), uuid.New(), "order_abc", "pay_1", "forged")

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestVerifyClientPaymentRejectsOtherUsersPurchase(t *testing.T) {
	repo := newStubPurchaseRepo()
	svc := newPurchaseService(t, repo, &stubGateway{})

	repo.purchases["order_abc"] = &models.SwipePurchase{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		SwipeCount:      5,
		CashfreeOrderID: "order_abc",
		PaymentStatus:   enums.PaymentStatusPending,
	}

	signature := cashfree.SignPayment("order_abc", "pay_1", testWebhookSecret)
	err := svc.VerifyClientPayment(context.Background(), uuid.New(), "order_abc", "pay_1", signature)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
	assert.Equal(t, enums.PaymentStatusPending, repo.purchases["order_abc"].PaymentStatus)
}

func TestVerifyClientPaymentWithoutPendingPurchase(t *testing.T) {
	repo := newStubPurchaseRepo()
	svc := newPurchaseService(t, repo, &stubGateway{})

	signature := cashfree.SignPayment("order_missing", "pay_1", testWebhookSecret)
	err := svc.VerifyClientPayment(context.Background(), uuid.New(), "order_missing", "pay_1", signature)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestCompleteFromWebhookIsIdempotent(t *testing.T) {
	repo := newStubPurchaseRepo()
	svc := newPurchaseService(t, repo, &stubGateway{})

	userID := uuid.New()
	repo.purchases["order_abc"] = &models.SwipePurchase{
		ID:              uuid.New(),
		UserID:          userID,
		SwipeCount:      7,
		CashfreeOrderID: "order_abc",
		PaymentStatus:   enums.PaymentStatusPending,
	}

	applied, err := svc.CompleteFromWebhook(context.Background(), "order_abc", "pay_1")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 10, repo.prefs[userID].DailySwipeLimit)

	// Redelivery finds no PENDING row and must not touch the grant.
	repo.prefs[userID].DailySwipeLimit = 10
	applied, err = svc.CompleteFromWebhook(context.Background(), "order_abc", "pay_1")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 10, repo.prefs[userID].DailySwipeLimit)
}

func TestCompleteFromWebhookUnknownOrder(t *testing.T) {
	svc := newPurchaseService(t, newStubPurchaseRepo(), &stubGateway{})

	applied, err := svc.CompleteFromWebhook(context.Background(), "order_unknown", "pay_1")

	require.NoError(t, err)
	assert.False(t, applied)
}
