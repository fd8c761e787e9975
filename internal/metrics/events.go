package metrics

import (
	"context"

	"github.com/avelins/tapcore/internal/event"
	"github.com/avelins/tapcore/internal/logger"
)

// EventMetricsCollector subscribes to engine events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events the collector cares about
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.EventTypeTapScored,
		event.EventTypeAutobotScored,
		event.EventTypeBoosterActivated,
		event.EventTypeUpgradePurchased,
		event.EventTypeCoinsFlushed,
		event.EventTypeFlushDeferred,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics. Decode failures are
// logged and swallowed: a malformed payload must never fail the publisher.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	switch evt.Type {
	case event.EventTypeTapScored:
		payload, err := event.DecodePayload[event.TapScoredPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventDecodeFailed, "event_type", evt.Type, "error", err)
			return nil
		}
		TapsProcessed.Inc()
		CoinsEarned.WithLabelValues(SourceTap).Add(float64(payload.CoinsEarned))

	case event.EventTypeAutobotScored:
		payload, err := event.DecodePayload[event.AutobotScoredPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventDecodeFailed, "event_type", evt.Type, "error", err)
			return nil
		}
		source := SourceAutobot
		if payload.Offline {
			source = SourceOffline
		}
		CoinsEarned.WithLabelValues(source).Add(float64(payload.CoinsEarned))

	case event.EventTypeBoosterActivated:
		payload, err := event.DecodePayload[event.BoosterActivatedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventDecodeFailed, "event_type", evt.Type, "error", err)
			return nil
		}
		BoostersActivated.WithLabelValues(payload.Kind).Inc()

	case event.EventTypeUpgradePurchased:
		UpgradesPurchased.Inc()

	case event.EventTypeCoinsFlushed:
		payload, err := event.DecodePayload[event.CoinsFlushedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventDecodeFailed, "event_type", evt.Type, "error", err)
			return nil
		}
		FlushesTotal.WithLabelValues(OutcomeConfirmed).Inc()
		FlushedCoins.Add(float64(payload.Delta))

	case event.EventTypeFlushDeferred:
		FlushesTotal.WithLabelValues(OutcomeDeferred).Inc()
	}

	return nil
}
