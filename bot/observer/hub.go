package observer

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"gleaner/bot/domain"
)

const defaultSubscriberBuffer = 64

// Hub は runner の tick イベントを購読中の観戦者全員へ配信します。
// 受信が追いつかない購読者宛のメッセージは破棄し、runner を待たせません。
type Hub struct {
	mu     sync.RWMutex
	subs   map[uuid.UUID]chan []byte
	buffer int
	logger *slog.Logger
}

var _ domain.Publisher = (*Hub)(nil)

func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[uuid.UUID]chan []byte),
		buffer: buffer,
		logger: logger,
	}
}

// Subscribe は id 宛の配信チャネルを返します。同じ id で再購読すると古いチャネルは閉じられます。
func (h *Hub) Subscribe(id uuid.UUID) <-chan []byte {
	ch := make(chan []byte, h.buffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.subs[id]; ok {
		close(old)
	}
	h.subs[id] = ch
	return ch
}

func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		close(ch)
		delete(h.subs, id)
	}
}

// Len は現在の購読者数です。
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Publish(ctx context.Context, event domain.TickEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to encode tick event", "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- data:
		default:
			h.logger.WarnContext(ctx, "hub: subscriber full, event dropped", "viewer", id, "bot", event.Bot, "tick", event.Tick)
		}
	}
}
