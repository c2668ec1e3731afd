package service

import (
	"context"
	"time"

	"travel-po/internal/domain/tracking"
	"travel-po/internal/general/contracts"
	"travel-po/internal/ports"
)

// BuildPickupQueue recomputes the pickup order for a (travel, driver) pair
// from the driver's current position and atomically replaces the stored
// queue. When the driver has no stored position the call fails with
// ErrDriverLocationUnavailable and writes nothing. An empty candidate set is
// not an error: the stored queue is cleared and an empty slice returned.
//
// Concurrent rebuilds for the same pair are last-writer-wins; each commit is
// internally consistent because the delete and inserts share one transaction.
func (service *trackingService) BuildPickupQueue(ctx context.Context, travelID, driverID string) ([]ports.QueueEntryView, error) {
	ctx, cancel := context.WithTimeout(ctx, service.opTimeout)
	defer cancel()

	var stored []tracking.QueueEntry

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		pos, err := service.driverLocRepo.Current(txCtx, driverID)
		if err != nil {
			return err
		}
		if pos == nil {
			return tracking.ErrDriverLocationUnavailable
		}

		candidates, err := service.bookingRepo.ListConfirmedPickupCandidates(txCtx, travelID)
		if err != nil {
			return err
		}

		entries := tracking.BuildQueue(travelID, driverID, *pos, candidates)

		stored, err = service.queueRepo.Replace(txCtx, travelID, driverID, entries)
		return err
	})
	if err != nil {
		service.logger.Error(ctx, "pickup_queue_build_failed", "Failed to build pickup queue", err,
			map[string]any{"travel_id": travelID, "driver_id": driverID})
		return nil, err
	}

	service.logger.Info(service.logger.WithTravelID(ctx, travelID), "pickup_queue_built", "Pickup queue rebuilt",
		map[string]any{"driver_id": driverID, "entries": len(stored)})

	service.publishEvent(ctx, contracts.RouteQueueBuilt, contracts.QueueBuiltEvent{
		TravelID:   travelID,
		DriverID:   driverID,
		EntryCount: len(stored),
	})

	return queueEntryViews(stored), nil
}

// GetPickupQueue returns the stored queue for a travel in pickup order.
// An unknown travel id yields an empty queue, same as a travel whose queue
// was never built.
func (service *trackingService) GetPickupQueue(ctx context.Context, travelID string) ([]ports.QueueEntryView, error) {
	var entries []tracking.QueueEntry

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		entries, err = service.queueRepo.ListByTravel(txCtx, travelID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return queueEntryViews(entries), nil
}

// UpdatePickupStatus moves one queue entry through the pickup state machine.
// picked_up stamps the actual pickup time; no other status ever clears it.
func (service *trackingService) UpdatePickupStatus(ctx context.Context, entryID, status string) (ports.QueueEntryView, error) {
	parsed, err := tracking.ParsePickupStatus(status)
	if err != nil {
		return ports.QueueEntryView{}, err
	}

	var entry *tracking.QueueEntry

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		entry, err = service.queueRepo.UpdateEntryStatus(txCtx, entryID, parsed, time.Now().UTC())
		return err
	})
	if err != nil {
		return ports.QueueEntryView{}, err
	}

	service.publishEvent(ctx, contracts.RoutePickupStatusUpdated, contracts.PickupStatusUpdatedEvent{
		EntryID:      entry.ID,
		TravelID:     entry.TravelID,
		BookingID:    entry.BookingID,
		PickupStatus: entry.PickupStatus.String(),
	})

	return queueEntryView(entry), nil
}

func queueEntryViews(entries []tracking.QueueEntry) []ports.QueueEntryView {
	out := make([]ports.QueueEntryView, 0, len(entries))
	for i := range entries {
		out = append(out, queueEntryView(&entries[i]))
	}
	return out
}

func queueEntryView(e *tracking.QueueEntry) ports.QueueEntryView {
	view := ports.QueueEntryView{
		ID:                e.ID,
		TravelID:          e.TravelID,
		DriverID:          e.DriverID,
		BookingID:         e.BookingID,
		CustomerName:      e.CustomerName,
		CustomerAddress:   e.CustomerAddress,
		CustomerLatitude:  e.CustomerLatitude,
		CustomerLongitude: e.CustomerLongitude,
		DistanceKM:        e.DistanceKM,
		PickupOrder:       e.PickupOrder,
		PickupStatus:      e.PickupStatus.String(),
	}
	if e.ActualPickupTime != nil {
		s := e.ActualPickupTime.UTC().Format(time.RFC3339)
		view.ActualPickupTime = &s
	}
	return view
}
