package service

import (
	"context"
	"errors"

	"travel-po/internal/domain/location"
	"travel-po/internal/domain/travel"
	"travel-po/internal/domain/weather"
	"travel-po/internal/general/contracts"
	"travel-po/internal/ports"
)

// ByCoordinate returns current conditions for a coordinate, serving from
// the cache when possible. Cache errors degrade to a provider fetch rather
// than failing the lookup.
func (service *weatherService) ByCoordinate(ctx context.Context, lat, lon float64, locationName string) (ports.CoordinateWeatherResult, error) {
	snap, err := service.cache.Get(ctx, lat, lon)
	if err != nil {
		service.logger.Error(ctx, "weather_cache_get_failed", "Weather cache read failed", err,
			map[string]any{"latitude": lat, "longitude": lon})
	}
	if snap != nil {
		return ports.CoordinateWeatherResult{Snapshot: snap, Cached: true}, nil
	}

	snap, err = service.provider.Fetch(ctx, lat, lon, locationName)
	if err != nil {
		return ports.CoordinateWeatherResult{}, err
	}

	if err := service.cache.Set(ctx, snap); err != nil {
		service.logger.Error(ctx, "weather_cache_set_failed", "Weather cache write failed", err,
			map[string]any{"latitude": lat, "longitude": lon})
	}

	return ports.CoordinateWeatherResult{Snapshot: snap, Cached: false}, nil
}

// Route checks both endpoints of a route and evaluates the combined alert.
func (service *weatherService) Route(ctx context.Context, in ports.RouteWeatherInput) (ports.RouteWeatherResult, error) {
	origin, err := service.ByCoordinate(ctx, in.OriginLat, in.OriginLon, in.OriginName)
	if err != nil {
		return ports.RouteWeatherResult{}, err
	}
	dest, err := service.ByCoordinate(ctx, in.DestLat, in.DestLon, in.DestName)
	if err != nil {
		return ports.RouteWeatherResult{}, err
	}

	return ports.RouteWeatherResult{
		Origin:      origin.Snapshot,
		Destination: dest.Snapshot,
		Alert:       weather.EvaluateRouteAlert(*origin.Snapshot, *dest.Snapshot),
	}, nil
}

// ForTravel resolves a travel's origin and destination to coordinates via
// the location references, evaluates the route alert, and persists the
// verdict on the travel. An alert also publishes a weather.alert event.
func (service *weatherService) ForTravel(ctx context.Context, travelID string) (ports.TravelWeatherResult, error) {
	var (
		t         *travel.Travel
		originRef *location.Reference
		destRef   *location.Reference
	)

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		t, err = service.travelRepo.GetByID(txCtx, travelID)
		if err != nil {
			return err
		}
		// Unknown names fall through as nil refs and fail the coordinate
		// check below instead of surfacing as a lookup error.
		originRef, err = service.locationRepo.FindByName(txCtx, t.Origin)
		if err != nil && !errors.Is(err, location.ErrNotFound) {
			return err
		}
		destRef, err = service.locationRepo.FindByName(txCtx, t.Destination)
		if err != nil && !errors.Is(err, location.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return ports.TravelWeatherResult{}, err
	}

	if !hasCoordinates(originRef) || !hasCoordinates(destRef) {
		return ports.TravelWeatherResult{}, ErrNoRouteCoordinates
	}

	route, err := service.Route(ctx, ports.RouteWeatherInput{
		OriginLat:  *originRef.Latitude,
		OriginLon:  *originRef.Longitude,
		DestLat:    *destRef.Latitude,
		DestLon:    *destRef.Longitude,
		OriginName: originRef.Name,
		DestName:   destRef.Name,
	})
	if err != nil {
		return ports.TravelWeatherResult{}, err
	}

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.travelRepo.UpdateWeather(txCtx, travelID, route.Alert.HasAlert, route.Alert.Condition)
	})
	if err != nil {
		return ports.TravelWeatherResult{}, err
	}

	if route.Alert.HasAlert {
		service.logger.Info(service.logger.WithTravelID(ctx, travelID), "weather_alert_raised",
			"Weather alert raised for travel route",
			map[string]any{"condition": route.Alert.Condition})
		service.publishEvent(ctx, contracts.RouteWeatherAlert, contracts.WeatherAlertEvent{
			TravelID:  travelID,
			Condition: route.Alert.Condition,
			Alerts:    route.Alert.Alerts,
		})
	}

	return ports.TravelWeatherResult{
		TravelID:    travelID,
		RouteName:   t.RouteName,
		Origin:      route.Origin,
		Destination: route.Destination,
		Alert:       route.Alert,
	}, nil
}

func hasCoordinates(ref *location.Reference) bool {
	return ref != nil && ref.Latitude != nil && ref.Longitude != nil
}
