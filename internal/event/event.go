package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event types published by the session engine
const (
	EventTypeTapScored        Type = "tap.scored"
	EventTypeAutobotScored    Type = "autobot.scored"
	EventTypeBoosterActivated Type = "booster.activated"
	EventTypeUpgradePurchased Type = "upgrade.purchased"
	EventTypeCoinsFlushed     Type = "coins.flushed"
	EventTypeFlushDeferred    Type = "flush.deferred"
	EventTypeSessionStarted   Type = "session.started"
	EventTypeSessionEvicted   Type = "session.evicted"
)

// Typed event payloads for type safety

// TapScoredPayloadV1 is the typed payload for tap events
type TapScoredPayloadV1 struct {
	UserID      string `json:"user_id"`
	InputCount  int    `json:"input_count"`
	Multiplier  int    `json:"multiplier"`
	CoinsEarned int64  `json:"coins_earned"`
	Timestamp   int64  `json:"timestamp"`
}

// AutobotScoredPayloadV1 is the typed payload for background tap events
type AutobotScoredPayloadV1 struct {
	UserID      string `json:"user_id"`
	CoinsEarned int64  `json:"coins_earned"`
	Offline     bool   `json:"offline"` // true when credited by offline catch-up
	Timestamp   int64  `json:"timestamp"`
}

// BoosterActivatedPayloadV1 is the typed payload for daily booster activations
type BoosterActivatedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Kind      string `json:"kind"`
	UsesLeft  int    `json:"uses_left"`
	Timestamp int64  `json:"timestamp"`
}

// UpgradePurchasedPayloadV1 is the typed payload for permanent upgrade purchases
type UpgradePurchasedPayloadV1 struct {
	UserID    string `json:"user_id"`
	BoosterID int    `json:"booster_id"`
	Timestamp int64  `json:"timestamp"`
}

// CoinsFlushedPayloadV1 is the typed payload for confirmed ledger syncs
type CoinsFlushedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Delta     int64  `json:"delta"`
	Total     int64  `json:"total"`
	Timestamp int64  `json:"timestamp"`
}

// FlushDeferredPayloadV1 is the typed payload for failed ledger syncs
type FlushDeferredPayloadV1 struct {
	UserID    string `json:"user_id"`
	Pending   int64  `json:"pending"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// SessionLifecyclePayloadV1 is the typed payload for session start/evict events
type SessionLifecyclePayloadV1 struct {
	UserID    string `json:"user_id"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewTapScoredEvent creates a new tap scored event
func NewTapScoredEvent(userID string, inputCount, multiplier int, coinsEarned int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EventTypeTapScored,
		Payload: TapScoredPayloadV1{
			UserID:      userID,
			InputCount:  inputCount,
			Multiplier:  multiplier,
			CoinsEarned: coinsEarned,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewAutobotScoredEvent creates a new autobot scored event
func NewAutobotScoredEvent(userID string, coinsEarned int64, offline bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EventTypeAutobotScored,
		Payload: AutobotScoredPayloadV1{
			UserID:      userID,
			CoinsEarned: coinsEarned,
			Offline:     offline,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewBoosterActivatedEvent creates a new booster activated event
func NewBoosterActivatedEvent(userID, kind string, usesLeft int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EventTypeBoosterActivated,
		Payload: BoosterActivatedPayloadV1{
			UserID:    userID,
			Kind:      kind,
			UsesLeft:  usesLeft,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewUpgradePurchasedEvent creates a new upgrade purchased event
func NewUpgradePurchasedEvent(userID string, boosterID int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EventTypeUpgradePurchased,
		Payload: UpgradePurchasedPayloadV1{
			UserID:    userID,
			BoosterID: boosterID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewCoinsFlushedEvent creates a new coins flushed event
func NewCoinsFlushedEvent(userID string, delta, total int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EventTypeCoinsFlushed,
		Payload: CoinsFlushedPayloadV1{
			UserID:    userID,
			Delta:     delta,
			Total:     total,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewFlushDeferredEvent creates a new flush deferred event
func NewFlushDeferredEvent(userID string, pending int64, reason string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EventTypeFlushDeferred,
		Payload: FlushDeferredPayloadV1{
			UserID:    userID,
			Pending:   pending,
			Reason:    reason,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSessionStartedEvent creates a new session started event
func NewSessionStartedEvent(userID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EventTypeSessionStarted,
		Payload: SessionLifecyclePayloadV1{
			UserID:    userID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSessionEvictedEvent creates a new session evicted event
func NewSessionEvictedEvent(userID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EventTypeSessionEvicted,
		Payload: SessionLifecyclePayloadV1{
			UserID:    userID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order; every handler runs even when an earlier one fails.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
