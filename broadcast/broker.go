// Package broadcast fans board-updated notifications out to every viewer
// subscribed to a board. Delivery is fire-and-forget: no acknowledgment,
// no retry, no replay of notifications missed while disconnected.
package broadcast

import "sync"

const subscriberBuffer = 8

// Broker is the in-process subscriber registry. Group membership per
// board id is the only addressing mechanism.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan []byte]struct{}
}

// NewBroker creates an empty registry.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[chan []byte]struct{})}
}

// Subscribe joins the board's group and returns the delivery channel.
func (b *Broker) Subscribe(boardID string) chan []byte {
	ch := make(chan []byte, subscriberBuffer)
	b.mu.Lock()
	group, ok := b.subs[boardID]
	if !ok {
		group = make(map[chan []byte]struct{})
		b.subs[boardID] = group
	}
	group[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe leaves the board's group. Notifications pending after the
// leave are simply missed.
func (b *Broker) Unsubscribe(boardID string, ch chan []byte) {
	b.mu.Lock()
	if group, ok := b.subs[boardID]; ok {
		delete(group, ch)
		if len(group) == 0 {
			delete(b.subs, boardID)
		}
	}
	b.mu.Unlock()
}

// publish delivers the payload to every current subscriber of the board.
// Sends never block: a subscriber with a full buffer drops the payload.
func (b *Broker) publish(boardID string, data []byte) {
	b.mu.Lock()
	for ch := range b.subs[boardID] {
		select {
		case ch <- data:
		default:
		}
	}
	b.mu.Unlock()
}
