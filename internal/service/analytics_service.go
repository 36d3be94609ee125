package service

import (
	"context"
	"fmt"

	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/pkg/events"
	pktNats "campus-assistant-be/pkg/nats"
)

// AnalyticsService drains dispatch events off the NATS bus and records
// them. It is the only consumer of the analytics stream; losing it costs
// metrics, never answers.
type AnalyticsService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewAnalyticsService(sub *pktNats.Subscriber, log logger.ILogger) *AnalyticsService {
	return &AnalyticsService{
		subscriber: sub,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *AnalyticsService) Start() {
	err := s.subscriber.Subscribe("chat.>", "analytics-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("AnalyticsService", "Failed to start analytics subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("AnalyticsService", "Analytics service started, listening to chat.>", nil)
}

func (s *AnalyticsService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("AnalyticsService", fmt.Sprintf("Dispatch event: %s", event.EventType()), event.Payload())
	return nil
}
