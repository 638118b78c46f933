package service

import (
	"context"
	"time"

	"spacenotes-be/internal/pkg/logger"
	"spacenotes-be/pkg/events"
	pktNats "spacenotes-be/pkg/nats"

	"github.com/google/uuid"
)

// publishEvent sends a lifecycle event best-effort. A nil publisher (NATS
// unavailable at boot) or a publish failure never fails the operation that
// already committed.
func publishEvent(pub *pktNats.Publisher, log logger.ILogger, module, eventType string, data map[string]interface{}) {
	if pub == nil {
		return
	}
	data["event_id"] = uuid.NewString()
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := pub.Publish(context.Background(), evt); err != nil && log != nil {
		log.Warn(module, "failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
