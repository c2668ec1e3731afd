package tracking

import (
	"cmp"
	"slices"
	"time"

	"travel-po/internal/domain/geo"
)

// PickupCandidate is a confirmed booking with a usable pickup coordinate,
// read in booking-fetch order. Read-only input to BuildQueue.
type PickupCandidate struct {
	BookingID    string
	Latitude     float64
	Longitude    float64
	Address      string
	CustomerName string
}

// QueueEntry is one ordered stop of a pickup queue for a (travel, driver)
// pair. PickupStatus and ActualPickupTime are mutated independently of the
// ordering computation.
type QueueEntry struct {
	ID                string
	TravelID          string
	DriverID          string
	BookingID         string
	CustomerLatitude  float64
	CustomerLongitude float64
	CustomerAddress   string
	CustomerName      string
	DistanceKM        float64
	PickupOrder       int
	PickupStatus      PickupStatus
	ActualPickupTime  *time.Time
}

// BuildQueue orders candidates nearest-first from the driver's current
// position and assigns a dense 1..N pickup order. Ties keep the original
// candidate order (stable sort). Greedy nearest-first only; this is
// deliberately not a shortest-route solve.
//
// Pure: no I/O, deterministic for identical inputs. An empty candidate set
// yields an empty (still valid) queue.
func BuildQueue(travelID, driverID string, pos DriverPosition, candidates []PickupCandidate) []QueueEntry {
	entries := make([]QueueEntry, 0, len(candidates))
	for _, cand := range candidates {
		entries = append(entries, QueueEntry{
			TravelID:          travelID,
			DriverID:          driverID,
			BookingID:         cand.BookingID,
			CustomerLatitude:  cand.Latitude,
			CustomerLongitude: cand.Longitude,
			CustomerAddress:   cand.Address,
			CustomerName:      cand.CustomerName,
			DistanceKM:        geo.HaversineKM(pos.Latitude, pos.Longitude, cand.Latitude, cand.Longitude),
			PickupStatus:      PickupPending,
		})
	}

	slices.SortStableFunc(entries, func(a, b QueueEntry) int {
		return cmp.Compare(a.DistanceKM, b.DistanceKM)
	})

	for i := range entries {
		entries[i].PickupOrder = i + 1
	}

	return entries
}
