package service

import (
	"context"
	"time"

	"travel-po/internal/domain/tracking"
	"travel-po/internal/general/contracts"
	"travel-po/internal/ports"
)

// UpdateDriverLocation stores a GPS ping as the driver's current position and
// mirrors it onto the driver row.
func (service *trackingService) UpdateDriverLocation(ctx context.Context, in ports.UpdateDriverLocationInput) (ports.DriverLocationView, error) {
	pos := &tracking.DriverPosition{
		DriverID:       in.DriverID,
		TravelID:       in.TravelID,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		SpeedKMH:       in.SpeedKMH,
		HeadingDegrees: in.HeadingDegrees,
		AccuracyMeters: in.AccuracyMeters,
	}

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		if err := service.driverLocRepo.Upsert(txCtx, pos); err != nil {
			return err
		}
		return service.driverRepo.UpdateCurrentPosition(txCtx, in.DriverID, in.Latitude, in.Longitude, pos.UpdatedAt)
	})
	if err != nil {
		service.logger.Error(ctx, "driver_location_update_failed", "Failed to store driver location", err,
			map[string]any{"driver_id": in.DriverID})
		return ports.DriverLocationView{}, err
	}

	service.publishEvent(ctx, contracts.RouteLocationUpdated, contracts.LocationUpdatedEvent{
		DriverID:  in.DriverID,
		TravelID:  in.TravelID,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		SpeedKMH:  in.SpeedKMH,
	})

	return driverLocationView(pos), nil
}

// GetDriverLocation returns the driver's latest active position.
func (service *trackingService) GetDriverLocation(ctx context.Context, driverID string) (ports.DriverLocationView, error) {
	var pos *tracking.DriverPosition

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		pos, err = service.driverLocRepo.Current(txCtx, driverID)
		return err
	})
	if err != nil {
		return ports.DriverLocationView{}, err
	}
	if pos == nil {
		return ports.DriverLocationView{}, tracking.ErrLocationNotFound
	}

	return driverLocationView(pos), nil
}

func driverLocationView(pos *tracking.DriverPosition) ports.DriverLocationView {
	return ports.DriverLocationView{
		DriverID:       pos.DriverID,
		TravelID:       pos.TravelID,
		Latitude:       pos.Latitude,
		Longitude:      pos.Longitude,
		SpeedKMH:       pos.SpeedKMH,
		HeadingDegrees: pos.HeadingDegrees,
		AccuracyMeters: pos.AccuracyMeters,
		UpdatedAt:      pos.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
