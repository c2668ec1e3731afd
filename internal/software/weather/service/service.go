package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"travel-po/internal/general/contracts"
	"travel-po/internal/general/logger"
	"travel-po/internal/ports"
)

// ErrNoRouteCoordinates is returned when a travel's origin or destination
// has no location reference with coordinates, so no route check is possible.
var ErrNoRouteCoordinates = errors.New("no coordinates known for the travel's origin or destination")

// weatherService serves cached weather lookups and route alert evaluation.
type weatherService struct {
	logger       *logger.Logger
	uow          ports.UnitOfWork
	travelRepo   ports.TravelRepository
	locationRepo ports.LocationRepository
	cache        ports.WeatherCache
	provider     ports.WeatherProvider
	pub          ports.EventPublisher
}

// NewWeatherService creates a new weather service with the provided
// dependencies.
func NewWeatherService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	travelRepo ports.TravelRepository,
	locationRepo ports.LocationRepository,
	cache ports.WeatherCache,
	provider ports.WeatherProvider,
	pub ports.EventPublisher,
) ports.WeatherService {
	return &weatherService{
		logger:       logger,
		uow:          uow,
		travelRepo:   travelRepo,
		locationRepo: locationRepo,
		cache:        cache,
		provider:     provider,
		pub:          pub,
	}
}

// publishEvent publishes a wrapped domain event. Best effort: failures are
// logged, never returned.
func (service *weatherService) publishEvent(ctx context.Context, routingKey string, data any) {
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
