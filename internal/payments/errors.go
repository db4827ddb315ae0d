package payments

import "errors"

var (
	ErrUnsupportedPlan   = errors.New("unsupported plan")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrOrderNotFound     = errors.New("order not found")
	ErrDuplicateOrderID  = errors.New("duplicate order id")
)
