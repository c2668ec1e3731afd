package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kmToLatDeg converts a north-south distance in km to degrees of latitude,
// so test fixtures can be placed at known haversine distances.
const kmToLatDeg = 1.0 / 111.19493

func driverAt(lat, lon float64) DriverPosition {
	return DriverPosition{DriverID: "drv-1", Latitude: lat, Longitude: lon}
}

func TestBuildQueueOrdersNearestFirst(t *testing.T) {
	pos := driverAt(0, 100)
	candidates := []PickupCandidate{
		{BookingID: "far", Latitude: 5.1 * kmToLatDeg, Longitude: 100, CustomerName: "Citra"},
		{BookingID: "near", Latitude: 0.8 * kmToLatDeg, Longitude: 100, CustomerName: "Andi"},
		{BookingID: "mid", Latitude: 2.3 * kmToLatDeg, Longitude: 100, CustomerName: "Budi"},
	}

	entries := BuildQueue("trv-1", "drv-1", pos, candidates)

	require.Len(t, entries, 3)
	assert.Equal(t, "near", entries[0].BookingID)
	assert.Equal(t, "mid", entries[1].BookingID)
	assert.Equal(t, "far", entries[2].BookingID)

	assert.InDelta(t, 0.8, entries[0].DistanceKM, 0.02)
	assert.InDelta(t, 2.3, entries[1].DistanceKM, 0.02)
	assert.InDelta(t, 5.1, entries[2].DistanceKM, 0.02)
}

func TestBuildQueueAssignsDenseOrder(t *testing.T) {
	pos := driverAt(-0.9, 100.4)
	candidates := []PickupCandidate{
		{BookingID: "a", Latitude: -0.91, Longitude: 100.41},
		{BookingID: "b", Latitude: -0.95, Longitude: 100.45},
		{BookingID: "c", Latitude: -0.92, Longitude: 100.42},
		{BookingID: "d", Latitude: -0.99, Longitude: 100.49},
	}

	entries := BuildQueue("trv-1", "drv-1", pos, candidates)

	require.Len(t, entries, 4)
	for i, e := range entries {
		assert.Equal(t, i+1, e.PickupOrder)
		if i > 0 {
			assert.GreaterOrEqual(t, e.DistanceKM, entries[i-1].DistanceKM)
		}
	}
}

func TestBuildQueueTiesKeepCandidateOrder(t *testing.T) {
	pos := driverAt(0, 100)
	// East and west of the driver at the same rounded distance.
	candidates := []PickupCandidate{
		{BookingID: "first", Latitude: 0, Longitude: 100 + 1.5*kmToLatDeg},
		{BookingID: "second", Latitude: 0, Longitude: 100 - 1.5*kmToLatDeg},
	}

	entries := BuildQueue("trv-1", "drv-1", pos, candidates)

	require.Len(t, entries, 2)
	require.Equal(t, entries[0].DistanceKM, entries[1].DistanceKM)
	assert.Equal(t, "first", entries[0].BookingID)
	assert.Equal(t, "second", entries[1].BookingID)
}

func TestBuildQueueEmptyCandidates(t *testing.T) {
	entries := BuildQueue("trv-1", "drv-1", driverAt(0, 100), nil)
	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestBuildQueueStampsEntryFields(t *testing.T) {
	pos := driverAt(0, 100)
	candidates := []PickupCandidate{
		{BookingID: "bkg-1", Latitude: 0.01, Longitude: 100.01, Address: "Jl. Sudirman 1", CustomerName: "Andi"},
	}

	entries := BuildQueue("trv-9", "drv-7", pos, candidates)

	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "trv-9", e.TravelID)
	assert.Equal(t, "drv-7", e.DriverID)
	assert.Equal(t, "bkg-1", e.BookingID)
	assert.Equal(t, "Jl. Sudirman 1", e.CustomerAddress)
	assert.Equal(t, "Andi", e.CustomerName)
	assert.Equal(t, PickupPending, e.PickupStatus)
	assert.Nil(t, e.ActualPickupTime)
}

func TestParsePickupStatus(t *testing.T) {
	status, err := ParsePickupStatus("  Picked_Up ")
	require.NoError(t, err)
	assert.Equal(t, PickupPickedUp, status)

	_, err = ParsePickupStatus("delivered")
	assert.ErrorIs(t, err, ErrInvalidPickupStatus)
}

func TestParseTravelStatus(t *testing.T) {
	status, err := ParseTravelStatus("ON_ROUTE")
	require.NoError(t, err)
	assert.Equal(t, TravelOnRoute, status)

	_, err = ParseTravelStatus("paused")
	assert.ErrorIs(t, err, ErrInvalidTravelStatus)
}
