package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/watoukuang/demochain/internal/clock"
	"github.com/watoukuang/demochain/models"
	"go.uber.org/zap"
)

const defaultOrderTTL = 30 * time.Minute

// ConfirmationPolicy decides whether an order in the created state should
// advance to confirmed. The shipped DelayPolicy stands in for an external
// settlement oracle; a callback-driven policy can be substituted without
// touching the read path.
type ConfirmationPolicy interface {
	ShouldConfirm(order models.Order, now time.Time) bool
}

// DelayPolicy confirms an order once a fixed delay after creation has
// elapsed.
type DelayPolicy struct {
	Delay time.Duration
}

func (p DelayPolicy) ShouldConfirm(order models.Order, now time.Time) bool {
	return now.Sub(order.CreatedAt) >= p.Delay
}

// Engine owns the order lifecycle: it creates payment intents and advances
// their status, publishing every status change to the hub.
type Engine struct {
	store    *Store
	hub      *Hub
	clock    clock.Clock
	policy   ConfirmationPolicy
	orderTTL time.Duration
	logger   *zap.SugaredLogger
}

func NewEngine(store *Store, hub *Hub, clk clock.Clock, policy ConfirmationPolicy, logger *zap.SugaredLogger, opts ...EngineOption) *Engine {
	e := &Engine{
		store:    store,
		hub:      hub,
		clock:    clk,
		policy:   policy,
		orderTTL: defaultOrderTTL,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type EngineOption func(*Engine)

// WithOrderTTL overrides the default expiry window for new orders.
func WithOrderTTL(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.orderTTL = d
		}
	}
}

// CreateOrder validates the plan and payment method, resolves price and
// receiving address, and registers a new order in the created state.
func (e *Engine) CreateOrder(ctx context.Context, userID, plan, method string) (models.CreateOrderResponse, error) {
	amount, err := PriceForPlan(plan)
	if err != nil {
		return models.CreateOrderResponse{}, err
	}

	address, err := AddressForMethod(method)
	if err != nil {
		return models.CreateOrderResponse{}, err
	}

	now := e.clock.Now()
	order := models.Order{
		ID:             uuid.New().String(),
		UserID:         userID,
		Plan:           plan,
		Amount:         amount,
		Currency:       models.Currency,
		PaymentMethod:  method,
		Status:         models.OrderCreated,
		QRCode:         GenerateQR(address, amount, method),
		DeepLink:       GenerateDeepLink(address, amount, method),
		PaymentAddress: address,
		PaymentAmount:  amount,
		CreatedAt:      now,
		ExpiresAt:      now.Add(e.orderTTL),
	}

	if err := e.store.Insert(order); err != nil {
		e.logger.Errorw("failed to insert order", "order_id", order.ID, "error", err)
		return models.CreateOrderResponse{}, err
	}

	e.hub.Publish(order.ID, order)

	return models.CreateOrderResponse{
		Order:    order,
		QRCode:   order.QRCode,
		DeepLink: order.DeepLink,
	}, nil
}

// GetStatus returns the current snapshot of the order, advancing it to
// confirmed first when the confirmation policy fires. The transition is
// lazy: it happens on reads only, so callers that never poll or subscribe
// never observe it.
func (e *Engine) GetStatus(ctx context.Context, id string) (models.Order, error) {
	order, err := e.store.Get(id)
	if err != nil {
		return models.Order{}, err
	}

	now := e.clock.Now()
	if order.Status != models.OrderCreated || !e.policy.ShouldConfirm(order, now) {
		return order, nil
	}

	confirmed := false
	order, err = e.store.Update(id, func(o *models.Order) {
		// Re-check under the lock: a concurrent read may have confirmed
		// the order already.
		if o.Status != models.OrderCreated {
			return
		}
		o.Status = models.OrderConfirmed
		confirmations := uint32(1)
		o.Confirmations = &confirmations
		confirmedAt := now
		o.ConfirmedAt = &confirmedAt
		confirmed = true
	})
	if err != nil {
		return models.Order{}, err
	}

	if confirmed {
		e.logger.Infow("order confirmed", "order_id", id)
		e.hub.Publish(id, order)
	}

	return order, nil
}

// Subscribe opens a live status stream for the order id.
func (e *Engine) Subscribe(id string) *Subscription {
	return e.hub.Subscribe(id)
}
