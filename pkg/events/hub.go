// Package events fans calibration progress out to any number of observers
// (CLI printer, GUI, daemon event stream).
package events

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultBuffer holds a full default run (one countdown of ten ticks plus
// every phase change and the result) without dropping.
const DefaultBuffer = 32

type subscriber struct {
	dropped int
}

// EventHub delivers every published event to every subscriber without ever
// blocking the publisher. A subscriber that falls behind loses events.
type EventHub struct {
	mu     sync.Mutex
	subs   map[chan Event]*subscriber
	closed bool
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[chan Event]*subscriber)}
}

// Subscribe registers a subscriber with DefaultBuffer slots.
func (h *EventHub) Subscribe() chan Event {
	return h.SubscribeN(DefaultBuffer)
}

// SubscribeN registers a subscriber with room for buffer undelivered events.
// On a closed hub the returned channel is already closed.
func (h *EventHub) SubscribeN(buffer int) chan Event {
	ch := make(chan Event, max(buffer, 1))

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subs[ch] = &subscriber{}
	return ch
}

// Unsubscribe removes ch and closes it. Unknown channels are ignored.
func (h *EventHub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	sub, ok := h.subs[ch]
	if ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()

	if ok && sub.dropped > 0 {
		logrus.WithField("dropped", sub.dropped).Debug("subscriber missed events")
	}
}

// Subscribers returns the number of live subscribers.
func (h *EventHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close unsubscribes everyone. Later publishes are dropped and later
// subscriptions are closed immediately.
func (h *EventHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		close(ch)
	}
	h.subs = nil
}

// Publish is a no-op on a nil hub.
func (h *EventHub) Publish(name string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).WithField("event", name).Warn("failed to marshal event payload")
		return
	}
	msg := Event{Name: name, Data: b}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch, sub := range h.subs {
		select {
		case ch <- msg:
		default:
			if sub.dropped == 0 {
				logrus.WithField("event", name).Debug("subscriber is full, dropping events")
			}
			sub.dropped++
		}
	}
}
