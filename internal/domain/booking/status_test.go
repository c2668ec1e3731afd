package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" Confirmed ")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseStatus("pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusCanTransitionTo(t *testing.T) {
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusCompleted))

	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusCompleted.Terminal())
}

func TestNewBookingDefaults(t *testing.T) {
	b, err := New("trv-1", "stu-1", " Jl. Sudirman 1 ", "", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, PaymentPending, b.PaymentStatus)
	assert.Equal(t, DefaultPaymentMethod, b.PaymentMethod)
	assert.Equal(t, "Jl. Sudirman 1", b.PickupAddress)
	assert.False(t, b.HasPickupCoordinate())
}

func TestNewBookingValidatesCoordinates(t *testing.T) {
	lat, lon := 91.0, 100.0
	_, err := New("trv-1", "stu-1", "addr", "cash", &lat, &lon)
	assert.ErrorIs(t, err, ErrInvalidLatitude)

	lat, lon = -0.9, -181.0
	_, err = New("trv-1", "stu-1", "addr", "cash", &lat, &lon)
	assert.ErrorIs(t, err, ErrInvalidLongitude)

	_, err = New("", "stu-1", "addr", "cash", nil, nil)
	assert.ErrorIs(t, err, ErrEmptyTravelID)

	_, err = New("trv-1", "stu-1", "  ", "cash", nil, nil)
	assert.ErrorIs(t, err, ErrEmptyPickupAddress)
}
