// internal/adapters/out/notify/log_notifier.go
package notify

import (
	"context"
	"log"

	notifdom "leafline/internal/domain/notification"
)

// LogNotifier writes notifications to the process log. Used on its own in
// scripts, and as a fan-out member behind the SSE broadcaster in the server.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (LogNotifier) Notify(ctx context.Context, deviceID string, n notifdom.Notification) {
	log.Printf("[notify] deviceId=%q title=%q description=%q destructive=%t",
		deviceID, n.Title, n.Description, n.Destructive)
}

// Fanout delivers each notification to every member, in order.
type Fanout []notifdom.Notifier

func (f Fanout) Notify(ctx context.Context, deviceID string, n notifdom.Notification) {
	for _, m := range f {
		if m != nil {
			m.Notify(ctx, deviceID, n)
		}
	}
}
