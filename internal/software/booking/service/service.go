package service

import (
	"context"
	"encoding/json"
	"time"

	"travel-po/internal/general/contracts"
	"travel-po/internal/general/logger"
	"travel-po/internal/ports"
)

// bookingService handles the student booking lifecycle and the operator's
// view over it. Seat accounting and the booking write always share one
// transaction.
type bookingService struct {
	logger      *logger.Logger
	uow         ports.UnitOfWork
	bookingRepo ports.BookingRepository
	travelRepo  ports.TravelRepository
	pub         ports.EventPublisher
}

// NewBookingService creates a new booking service with the provided
// dependencies.
func NewBookingService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	bookingRepo ports.BookingRepository,
	travelRepo ports.TravelRepository,
	pub ports.EventPublisher,
) ports.BookingService {
	return &bookingService{
		logger:      logger,
		uow:         uow,
		bookingRepo: bookingRepo,
		travelRepo:  travelRepo,
		pub:         pub,
	}
}

// publishEvent publishes a wrapped domain event. Best effort: failures are
// logged, never returned, so broker downtime cannot fail a committed write.
func (service *bookingService) publishEvent(ctx context.Context, routingKey string, data any) {
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
