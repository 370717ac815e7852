package feed

import (
	"context"
	"encoding/json"
	"sync"

	"Traxor/internal/domain/models"
	domrepo "Traxor/internal/domain/repository"
	applogger "Traxor/pkg/logger"
)

// Hub fans new signals out to subscribers. A subscriber whose buffer is
// full is dropped rather than blocking Publish.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	buffer int
	closed bool
	log    *applogger.Logger
}

var _ domrepo.SignalPublisher = (*Hub)(nil)

// Subscription receives encoded SignalResponse frames on C. C is closed when
// the subscriber is dropped, unsubscribed, or the hub shuts down.
type Subscription struct {
	C  <-chan []byte
	ch chan []byte
}

func NewHub(buffer int, l *applogger.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: buffer,
		log:    l.With(applogger.String("component", "feed")),
	}
}

// Subscribe returns false once the hub is closed.
func (h *Hub) Subscribe() (*Subscription, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	ch := make(chan []byte, h.buffer)
	sub := &Subscription{C: ch, ch: ch}
	h.subs[sub] = struct{}{}
	return sub, true
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(sub)
}

func (h *Hub) Publish(s *models.SignalResponse) {
	if s == nil {
		return
	}
	msg, err := json.Marshal(s)
	if err != nil {
		h.log.Error("encode signal", applogger.String("id", s.ID), applogger.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.ch <- msg:
		default:
			h.dropLocked(sub)
			h.log.Warn("dropped slow feed subscriber", applogger.String("id", s.ID))
		}
	}
}

// Len is the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Run blocks until ctx is done, then closes the hub.
func (h *Hub) Run(ctx context.Context) error {
	<-ctx.Done()
	h.Close()
	return nil
}

// Close drops every subscriber. Further subscriptions are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		h.dropLocked(sub)
	}
}

func (h *Hub) dropLocked(sub *Subscription) {
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}
