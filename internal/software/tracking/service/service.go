package service

import (
	"context"
	"encoding/json"
	"time"

	"travel-po/internal/general/contracts"
	"travel-po/internal/general/logger"
	"travel-po/internal/ports"
)

// trackingService encapsulates driver GPS, trip progress, and the pickup
// queue logic.
type trackingService struct {
	logger        *logger.Logger
	uow           ports.UnitOfWork
	driverLocRepo ports.DriverLocationRepository
	driverRepo    ports.DriverRepository
	bookingRepo   ports.BookingRepository
	queueRepo     ports.PickupQueueRepository
	trackingRepo  ports.TravelTrackingRepository
	pub           ports.EventPublisher
	opTimeout     time.Duration
}

// NewTrackingService creates a new tracking service with the provided
// dependencies. opTimeout bounds each position fetch and queue rebuild.
func NewTrackingService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	driverLocRepo ports.DriverLocationRepository,
	driverRepo ports.DriverRepository,
	bookingRepo ports.BookingRepository,
	queueRepo ports.PickupQueueRepository,
	trackingRepo ports.TravelTrackingRepository,
	pub ports.EventPublisher,
	opTimeout time.Duration,
) ports.TrackingService {
	return &trackingService{
		logger:        logger,
		uow:           uow,
		driverLocRepo: driverLocRepo,
		driverRepo:    driverRepo,
		bookingRepo:   bookingRepo,
		queueRepo:     queueRepo,
		trackingRepo:  trackingRepo,
		pub:           pub,
		opTimeout:     opTimeout,
	}
}

// publishEvent publishes a wrapped domain event. Best effort: failures are
// logged, never returned, so broker downtime cannot fail a committed write.
func (service *trackingService) publishEvent(ctx context.Context, routingKey string, data any) {
	body, err := json.Marshal(contracts.Event{
		Type:       routingKey,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		service.logger.Error(ctx, "event_encode_failed", "Failed to encode event", err,
			map[string]any{"routing_key": routingKey})
		return
	}

	if err := service.pub.Publish(ctx, routingKey, body); err != nil {
		service.logger.Error(ctx, "event_publish_failed", "Failed to publish event", err,
			map[string]any{"routing_key": routingKey})
	}
}
