package toolserver

import "sync"

// event is one frame pushed to SSE subscribers.
type event struct {
	Name string
	Data string
}

// broker fans events out to all live SSE subscribers. A slow subscriber
// drops frames rather than blocking the publisher.
type broker struct {
	mu   sync.Mutex
	subs map[chan event]struct{}
}

func newBroker() *broker {
	return &broker{subs: make(map[chan event]struct{})}
}

func (b *broker) subscribe() chan event {
	ch := make(chan event, 64)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(ch chan event) {
	b.mu.Lock()
	delete(b.subs, ch)
	b.mu.Unlock()
	close(ch)
}

func (b *broker) publish(ev event) {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	b.mu.Unlock()
}
