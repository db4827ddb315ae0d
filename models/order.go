package models

import (
	"time"
)

type OrderStatus string

func (s OrderStatus) String() string {
	return string(s)
}

// Order lifecycle states
const (
	OrderCreated   OrderStatus = "created"
	OrderPaid      OrderStatus = "paid"
	OrderConfirmed OrderStatus = "confirmed"
	OrderExpired   OrderStatus = "expired"
	OrderCancelled OrderStatus = "cancelled"
)

// Subscription plans
const (
	PlanMonthly  = "monthly"
	PlanYearly   = "yearly"
	PlanLifetime = "lifetime"
)

// Payment rails
const (
	MethodUSDTTRC20 = "usdt_trc20"
	MethodUSDTERC20 = "usdt_erc20"
	MethodUSDTBEP20 = "usdt_bep20"
)

// Currency is fixed for the deployment.
const Currency = "USDT"

type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Plan           string      `json:"plan"`
	Amount         float64     `json:"amount"`
	Currency       string      `json:"currency"`
	PaymentMethod  string      `json:"payment_method"`
	Status         OrderStatus `json:"status"`
	QRCode         string      `json:"qr_code"`
	DeepLink       string      `json:"deep_link"`
	PaymentAddress string      `json:"payment_address"`
	PaymentAmount  float64     `json:"payment_amount"`
	CreatedAt      time.Time   `json:"created_at"`
	ExpiresAt      time.Time   `json:"expires_at"`
	TxHash         *string     `json:"tx_hash,omitempty"`
	PaidAt         *time.Time  `json:"paid_at,omitempty"`
	Confirmations  *uint32     `json:"confirmations,omitempty"`
	ConfirmedAt    *time.Time  `json:"confirmed_at,omitempty"`
}

type CreateOrderRequest struct {
	Plan          string `json:"plan"`
	PaymentMethod string `json:"payment_method"`
}

type CreateOrderResponse struct {
	Order    Order  `json:"order"`
	QRCode   string `json:"qr_code"`
	DeepLink string `json:"deep_link"`
}
