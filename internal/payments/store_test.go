package payments

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/watoukuang/demochain/models"
)

func testOrder(id string) models.Order {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return models.Order{
		ID:             id,
		UserID:         "user-1",
		Plan:           models.PlanMonthly,
		Amount:         3,
		Currency:       models.Currency,
		PaymentMethod:  models.MethodUSDTTRC20,
		Status:         models.OrderCreated,
		PaymentAddress: "TL1a2b3c4d5e6f7g8h9i0j",
		PaymentAmount:  3,
		CreatedAt:      now,
		ExpiresAt:      now.Add(30 * time.Minute),
	}
}

func TestStoreInsertAndGet(t *testing.T) {
	store := NewStore()

	err := store.Insert(testOrder("order-1"))
	assert.NoError(t, err)

	got, err := store.Get("order-1")
	assert.NoError(t, err)
	assert.Equal(t, "order-1", got.ID)
	assert.Equal(t, models.OrderCreated, got.Status)
}

func TestStoreInsertDuplicate(t *testing.T) {
	store := NewStore()

	assert.NoError(t, store.Insert(testOrder("order-1")))
	assert.ErrorIs(t, store.Insert(testOrder("order-1")), ErrDuplicateOrderID)
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestStoreUpdateUnknown(t *testing.T) {
	store := NewStore()

	_, err := store.Update("missing", func(o *models.Order) {
		o.Status = models.OrderConfirmed
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestStoreUpdateReturnsNewSnapshot(t *testing.T) {
	store := NewStore()
	assert.NoError(t, store.Insert(testOrder("order-1")))

	updated, err := store.Update("order-1", func(o *models.Order) {
		o.Status = models.OrderCancelled
	})
	assert.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, updated.Status)

	got, err := store.Get("order-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, got.Status)
}

func TestStoreUpdateIsAtomic(t *testing.T) {
	store := NewStore()
	order := testOrder("order-1")
	order.Amount = 0
	assert.NoError(t, store.Insert(order))

	const workers = 100

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := store.Update("order-1", func(o *models.Order) {
				o.Amount++
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get("order-1")
	assert.NoError(t, err)
	assert.Equal(t, float64(workers), got.Amount)
}
