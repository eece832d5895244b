package events

import (
	"context"
	"time"

	"github.com/Kir-Mi/shareit/internal/kafka"
	"go.uber.org/zap"
)

// TopicBookingEvents carries booking lifecycle events.
const TopicBookingEvents = "booking.events"

// Booking lifecycle event types.
const (
	BookingRequested = "booking.requested"
	BookingApproved  = "booking.approved"
	BookingRejected  = "booking.rejected"
)

const eventSource = "shareit-server"

// BookingLifecycleEvent is the payload for all booking lifecycle events.
type BookingLifecycleEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingPublisher publishes booking lifecycle events. Publishing is
// best-effort: failures are logged and never fail the originating request.
type BookingPublisher struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewBookingPublisher creates a BookingPublisher.
func NewBookingPublisher(producer *kafka.Producer, logger *zap.Logger) *BookingPublisher {
	return &BookingPublisher{producer: producer, logger: logger}
}

// Publish wraps the event in a CloudEvent and writes it to the booking topic.
func (p *BookingPublisher) Publish(ctx context.Context, eventType string, evt BookingLifecycleEvent) {
	if p == nil || p.producer == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, evt)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := p.producer.PublishEvent(ctx, TopicBookingEvents, cloudEvent); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
