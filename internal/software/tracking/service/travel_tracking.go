package service

import (
	"context"
	"time"

	"travel-po/internal/domain/tracking"
	"travel-po/internal/ports"
)

// UpsertTravelTracking creates or updates the trip progress record for a
// travel. Status transitions stamp their milestone timestamps exactly once:
// picking_up sets pickup_started_at, on_route sets journey_started_at and
// closes the pickup phase, completed sets journey_completed_at. A timestamp
// already present is never overwritten, so replays keep the first transition
// time.
func (service *trackingService) UpsertTravelTracking(ctx context.Context, in ports.UpsertTravelTrackingInput) (ports.TravelTrackingView, error) {
	var row *ports.TrackingRow

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		current, err := service.trackingRepo.GetByTravelID(txCtx, in.TravelID)
		if err != nil {
			return err
		}

		if current == nil {
			current = &tracking.TravelTracking{TravelID: in.TravelID}
		}

		current.DriverID = in.DriverID
		current.BookingID = in.BookingID
		current.Status = in.Status
		current.PickupETAMinutes = in.PickupETAMinutes
		current.JourneyETAMinutes = in.JourneyETAMinutes
		current.TotalDistanceKM = in.TotalDistanceKM
		current.RemainingDistanceKM = in.RemainingDistanceKM
		current.CurrentLocationName = in.CurrentLocationName
		current.Notes = in.Notes

		stampMilestones(current)

		if current.ID == "" {
			err = service.trackingRepo.Create(txCtx, current)
		} else {
			err = service.trackingRepo.Update(txCtx, current)
		}
		if err != nil {
			return err
		}

		row, err = service.trackingRepo.GetRowByTravelID(txCtx, in.TravelID)
		return err
	})
	if err != nil {
		service.logger.Error(ctx, "travel_tracking_upsert_failed", "Failed to upsert travel tracking", err,
			map[string]any{"travel_id": in.TravelID})
		return ports.TravelTrackingView{}, err
	}

	service.logger.Info(service.logger.WithTravelID(ctx, in.TravelID), "travel_tracking_updated",
		"Travel tracking updated", map[string]any{"status": in.Status.String()})

	return trackingView(row), nil
}

// GetTravelTracking returns the tracking record joined with its travel.
func (service *trackingService) GetTravelTracking(ctx context.Context, travelID string) (ports.TravelTrackingView, error) {
	var row *ports.TrackingRow

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		row, err = service.trackingRepo.GetRowByTravelID(txCtx, travelID)
		return err
	})
	if err != nil {
		return ports.TravelTrackingView{}, err
	}

	return trackingView(row), nil
}

// ListActiveTravels returns the operator's non-terminal tracked travels.
func (service *trackingService) ListActiveTravels(ctx context.Context, operatorID string) ([]ports.TravelTrackingView, error) {
	var rows []ports.TrackingRow

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = service.trackingRepo.ListActiveByOperator(txCtx, operatorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.TravelTrackingView, 0, len(rows))
	for i := range rows {
		out = append(out, trackingView(&rows[i]))
	}
	return out, nil
}

// stampMilestones derives the phase timestamps from the current status,
// writing each one only if still unset.
func stampMilestones(t *tracking.TravelTracking) {
	now := time.Now().UTC()

	switch t.Status {
	case tracking.TravelPickingUp:
		if t.PickupStartedAt == nil {
			t.PickupStartedAt = &now
		}
	case tracking.TravelOnRoute:
		if t.PickupCompletedAt == nil {
			t.PickupCompletedAt = &now
		}
		if t.JourneyStartedAt == nil {
			t.JourneyStartedAt = &now
		}
	case tracking.TravelCompleted:
		if t.JourneyCompletedAt == nil {
			t.JourneyCompletedAt = &now
		}
	}
}

func trackingView(row *ports.TrackingRow) ports.TravelTrackingView {
	return ports.TravelTrackingView{
		ID:                  row.ID,
		TravelID:            row.TravelID,
		DriverID:            row.DriverID,
		Status:              row.Status.String(),
		PickupETAMinutes:    row.PickupETAMinutes,
		JourneyETAMinutes:   row.JourneyETAMinutes,
		TotalDistanceKM:     row.TotalDistanceKM,
		RemainingDistanceKM: row.RemainingDistanceKM,
		CurrentLocationName: row.CurrentLocationName,
		Notes:               row.Notes,
		PickupStartedAt:     timePtrString(row.PickupStartedAt),
		PickupCompletedAt:   timePtrString(row.PickupCompletedAt),
		JourneyStartedAt:    timePtrString(row.JourneyStartedAt),
		JourneyCompletedAt:  timePtrString(row.JourneyCompletedAt),
		RouteName:           row.RouteName,
		Origin:              row.Origin,
		Destination:         row.Destination,
		DriverName:          row.DriverName,
		UpdatedAt:           row.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func timePtrString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
