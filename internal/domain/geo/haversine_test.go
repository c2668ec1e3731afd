package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHaversineKMIdenticalPoints(t *testing.T) {
	require.Zero(t, HaversineKM(-0.9471168, 100.4174862, -0.9471168, 100.4174862))
}

func TestHaversineKMSymmetry(t *testing.T) {
	a := HaversineKM(-0.9471168, 100.4174862, -0.3055, 100.3692)
	b := HaversineKM(-0.3055, 100.3692, -0.9471168, 100.4174862)
	require.Equal(t, a, b)
}

func TestHaversineKMPadangToBukittinggi(t *testing.T) {
	// Padang city center to Bukittinggi, roughly 71.5 km great-circle.
	got := HaversineKM(-0.9471168, 100.4174862, -0.3055, 100.3692)
	require.InDelta(t, 71.55, got, 0.5)
}

func TestHaversineKMRoundsToTwoDecimals(t *testing.T) {
	got := HaversineKM(0, 0, 0.01, 0.01)
	require.Equal(t, got, RoundKM(got))
}

func TestRoundKM(t *testing.T) {
	require.Equal(t, 1.23, RoundKM(1.2349))
	require.Equal(t, 1.24, RoundKM(1.236))
	require.Equal(t, 0.0, RoundKM(0.0049))
}
