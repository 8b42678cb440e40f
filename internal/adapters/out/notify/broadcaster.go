// internal/adapters/out/notify/broadcaster.go
package notify

import (
	"context"
	"log"
	"sync"

	notifdom "leafline/internal/domain/notification"
)

// Broadcaster fans notifications out to per-device subscribers. The SSE
// handler subscribes one channel per open stream; Notify never blocks the
// mutating request, a full subscriber just misses the event.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[string]map[chan notifdom.Notification]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: map[string]map[chan notifdom.Notification]struct{}{}}
}

// Subscribe registers a buffered channel for deviceID. The returned cancel
// func removes the subscription and closes the channel.
func (b *Broadcaster) Subscribe(deviceID string) (<-chan notifdom.Notification, func()) {
	ch := make(chan notifdom.Notification, 8)

	b.mu.Lock()
	set, ok := b.subs[deviceID]
	if !ok {
		set = map[chan notifdom.Notification]struct{}{}
		b.subs[deviceID] = set
	}
	set[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[deviceID]; ok {
			if _, live := set[ch]; live {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(b.subs, deviceID)
			}
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *Broadcaster) Notify(ctx context.Context, deviceID string, n notifdom.Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[deviceID] {
		select {
		case ch <- n:
		default:
			log.Printf("[notify] dropped event for deviceId=%q (subscriber slow)", deviceID)
		}
	}
}

// SubscriberCount reports the open streams for a device.
func (b *Broadcaster) SubscriberCount(deviceID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[deviceID])
}
