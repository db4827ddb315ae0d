package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/watoukuang/demochain/internal/payments"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// snapshotWriter is the slice of *websocket.Conn the stream loop needs.
type snapshotWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// missedNotice tells a subscriber that it fell behind and lost frames.
type missedNotice struct {
	MissedUpdates int `json:"missed_updates"`
}

// OrderEvents upgrades the connection and streams one JSON text frame per
// status change of the order. Inbound frames are read and discarded; the
// stream ends when the client disconnects or the hub shuts down.
func (h *Handler) OrderEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_id", "order id required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Errorw("websocket upgrade failed", "order_id", id, "error", err)
		return
	}

	sub := h.Payments.Subscribe(id)
	defer sub.Close()
	defer conn.Close()

	// Client disconnect surfaces as a read error and ends the stream.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.streamOrderUpdates(conn, sub, disconnected, id)
}

// streamOrderUpdates forwards hub snapshots to the connection. When the
// subscriber fell behind and the hub dropped frames, a one-off notice is
// sent ahead of the next snapshot so the client knows its view has a gap.
func (h *Handler) streamOrderUpdates(conn snapshotWriter, sub *payments.Subscription, disconnected <-chan struct{}, orderID string) {
	reported := 0
	for {
		select {
		case snapshot, ok := <-sub.Updates():
			if !ok {
				return
			}
			if missed := sub.Missed(); missed > reported {
				h.Logger.Warnw("subscriber fell behind, updates dropped",
					"order_id", orderID, "missed", missed-reported)
				notice, err := json.Marshal(missedNotice{MissedUpdates: missed - reported})
				if err == nil {
					if err := conn.WriteMessage(websocket.TextMessage, notice); err != nil {
						h.Logger.Debugw("websocket write failed", "order_id", orderID, "error", err)
						return
					}
				}
				reported = missed
			}
			data, err := json.Marshal(snapshot)
			if err != nil {
				h.Logger.Errorw("failed to marshal order snapshot", "order_id", orderID, "error", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.Logger.Debugw("websocket write failed", "order_id", orderID, "error", err)
				return
			}
		case <-disconnected:
			return
		}
	}
}
