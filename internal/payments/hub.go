package payments

import (
	"sync"

	"github.com/watoukuang/demochain/models"
)

// subscriberBuffer bounds how many unread snapshots a single subscriber may
// hold before the oldest are dropped.
const subscriberBuffer = 16

// Hub fans order status snapshots out to live subscribers of a specific
// order id. Publishing never blocks: a subscriber that falls behind loses
// its oldest entries and can detect that through Missed.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[*Subscription]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

type Subscription struct {
	hub     *Hub
	orderID string
	ch      chan models.Order
	once    sync.Once

	missedMu sync.Mutex
	missed   int
}

// Updates yields every snapshot published for the order after Subscribe.
// The channel is closed when the subscription or the hub is closed.
func (s *Subscription) Updates() <-chan models.Order {
	return s.ch
}

// Missed reports how many snapshots were dropped because the subscriber
// fell behind.
func (s *Subscription) Missed() int {
	s.missedMu.Lock()
	defer s.missedMu.Unlock()
	return s.missed
}

// Close detaches the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	if set, ok := s.hub.subs[s.orderID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(s.hub.subs, s.orderID)
		}
	}
	s.hub.mu.Unlock()

	s.once.Do(func() {
		close(s.ch)
	})
}

// Subscribe registers an observer for the order id. A new subscriber does
// not receive history, only snapshots published after this call. On a
// closed hub the returned subscription is already terminated.
func (h *Hub) Subscribe(orderID string) *Subscription {
	sub := &Subscription{
		hub:     h,
		orderID: orderID,
		ch:      make(chan models.Order, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub.once.Do(func() {
			close(sub.ch)
		})
		return sub
	}

	set, ok := h.subs[orderID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[orderID] = set
	}
	set[sub] = struct{}{}

	return sub
}

// Publish delivers the snapshot to every current subscriber of the order
// id. With no subscribers the snapshot is dropped silently. A full
// subscriber buffer loses its oldest entry instead of blocking the caller.
func (h *Hub) Publish(orderID string, snapshot models.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	for sub := range h.subs[orderID] {
		select {
		case sub.ch <- snapshot:
		default:
			select {
			case <-sub.ch:
				sub.missedMu.Lock()
				sub.missed++
				sub.missedMu.Unlock()
			default:
			}
			select {
			case sub.ch <- snapshot:
			default:
			}
		}
	}
}

// Close tears the hub down and ends every subscriber stream.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, set := range h.subs {
		for sub := range set {
			sub.once.Do(func() {
				close(sub.ch)
			})
		}
	}
	h.subs = make(map[string]map[*Subscription]struct{})
}
