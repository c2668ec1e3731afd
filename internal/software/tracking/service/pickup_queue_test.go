package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-po/internal/domain/driver"
	"travel-po/internal/domain/tracking"
	"travel-po/internal/general/logger"
	"travel-po/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----- fakes -----

type fakeUOW struct{}

func (fakeUOW) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeDriverLocRepo struct {
	pos *tracking.DriverPosition
	err error
}

func (f *fakeDriverLocRepo) Upsert(ctx context.Context, pos *tracking.DriverPosition) error {
	f.pos = pos
	return nil
}

func (f *fakeDriverLocRepo) Current(ctx context.Context, driverID string) (*tracking.DriverPosition, error) {
	return f.pos, f.err
}

type fakeDriverRepo struct {
	positionUpdates int
}

func (f *fakeDriverRepo) Create(ctx context.Context, d *driver.Driver) error { return nil }
func (f *fakeDriverRepo) GetByID(ctx context.Context, operatorID, id string) (*driver.Driver, error) {
	return nil, driver.ErrNotFound
}
func (f *fakeDriverRepo) ListByOperator(ctx context.Context, operatorID string) ([]driver.Driver, error) {
	return nil, nil
}
func (f *fakeDriverRepo) Update(ctx context.Context, d *driver.Driver) error       { return nil }
func (f *fakeDriverRepo) Delete(ctx context.Context, operatorID, id string) error  { return nil }
func (f *fakeDriverRepo) UpdateCurrentPosition(ctx context.Context, driverID string, lat, lon float64, at time.Time) error {
	f.positionUpdates++
	return nil
}

type fakeBookingRepo struct {
	ports.BookingRepository

	candidates []tracking.PickupCandidate
	err        error
}

func (f *fakeBookingRepo) ListConfirmedPickupCandidates(ctx context.Context, travelID string) ([]tracking.PickupCandidate, error) {
	return f.candidates, f.err
}

type fakeQueueRepo struct {
	replaced     []tracking.QueueEntry
	replaceCalls int
	replaceErr   error

	stored []tracking.QueueEntry

	updated   *tracking.QueueEntry
	updateErr error
}

func (f *fakeQueueRepo) Replace(ctx context.Context, travelID, driverID string, entries []tracking.QueueEntry) ([]tracking.QueueEntry, error) {
	f.replaceCalls++
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}
	f.replaced = entries
	return entries, nil
}

func (f *fakeQueueRepo) ListByTravel(ctx context.Context, travelID string) ([]tracking.QueueEntry, error) {
	return f.stored, nil
}

func (f *fakeQueueRepo) UpdateEntryStatus(ctx context.Context, entryID string, status tracking.PickupStatus, pickedUpAt time.Time) (*tracking.QueueEntry, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	entry := *f.updated
	entry.PickupStatus = status
	if status == tracking.PickupPickedUp {
		entry.ActualPickupTime = &pickedUpAt
	}
	return &entry, nil
}

type fakePublisher struct {
	published []string
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	f.published = append(f.published, routingKey)
	return nil
}

func newTestService(locRepo *fakeDriverLocRepo, bookingRepo *fakeBookingRepo, queueRepo *fakeQueueRepo, pub *fakePublisher) ports.TrackingService {
	return NewTrackingService(
		logger.New("tracking-test"),
		fakeUOW{},
		locRepo,
		&fakeDriverRepo{},
		bookingRepo,
		queueRepo,
		nil,
		pub,
		5*time.Second,
	)
}

// ----- tests -----

func TestBuildPickupQueueOrdersByDistance(t *testing.T) {
	locRepo := &fakeDriverLocRepo{pos: &tracking.DriverPosition{DriverID: "drv-1", Latitude: 0, Longitude: 100}}
	bookingRepo := &fakeBookingRepo{candidates: []tracking.PickupCandidate{
		{BookingID: "far", Latitude: 0.05, Longitude: 100},
		{BookingID: "near", Latitude: 0.01, Longitude: 100},
	}}
	queueRepo := &fakeQueueRepo{}
	pub := &fakePublisher{}

	svc := newTestService(locRepo, bookingRepo, queueRepo, pub)

	views, err := svc.BuildPickupQueue(context.Background(), "trv-1", "drv-1")
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "near", views[0].BookingID)
	assert.Equal(t, 1, views[0].PickupOrder)
	assert.Equal(t, "far", views[1].BookingID)
	assert.Equal(t, 2, views[1].PickupOrder)
	assert.Equal(t, "pending", views[0].PickupStatus)

	assert.Contains(t, pub.published, "tracking.queue_built")
}

func TestBuildPickupQueueNoDriverPosition(t *testing.T) {
	locRepo := &fakeDriverLocRepo{pos: nil}
	queueRepo := &fakeQueueRepo{}

	svc := newTestService(locRepo, &fakeBookingRepo{}, queueRepo, &fakePublisher{})

	_, err := svc.BuildPickupQueue(context.Background(), "trv-1", "drv-1")
	require.ErrorIs(t, err, tracking.ErrDriverLocationUnavailable)
	assert.Zero(t, queueRepo.replaceCalls, "must not touch the stored queue")
}

func TestBuildPickupQueueEmptyCandidatesStillReplaces(t *testing.T) {
	locRepo := &fakeDriverLocRepo{pos: &tracking.DriverPosition{DriverID: "drv-1"}}
	queueRepo := &fakeQueueRepo{}

	svc := newTestService(locRepo, &fakeBookingRepo{}, queueRepo, &fakePublisher{})

	views, err := svc.BuildPickupQueue(context.Background(), "trv-1", "drv-1")
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.Equal(t, 1, queueRepo.replaceCalls, "empty rebuild still clears the stored queue")
}

func TestBuildPickupQueueReplaceErrorPropagates(t *testing.T) {
	locRepo := &fakeDriverLocRepo{pos: &tracking.DriverPosition{DriverID: "drv-1"}}
	queueRepo := &fakeQueueRepo{replaceErr: errors.New("boom")}
	pub := &fakePublisher{}

	svc := newTestService(locRepo, &fakeBookingRepo{}, queueRepo, pub)

	_, err := svc.BuildPickupQueue(context.Background(), "trv-1", "drv-1")
	require.Error(t, err)
	assert.Empty(t, pub.published, "no event for a failed rebuild")
}

func TestGetPickupQueueUnknownTravelIsEmpty(t *testing.T) {
	svc := newTestService(&fakeDriverLocRepo{}, &fakeBookingRepo{}, &fakeQueueRepo{}, &fakePublisher{})

	views, err := svc.GetPickupQueue(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestUpdatePickupStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(&fakeDriverLocRepo{}, &fakeBookingRepo{}, &fakeQueueRepo{}, &fakePublisher{})

	_, err := svc.UpdatePickupStatus(context.Background(), "entry-1", "delivered")
	require.ErrorIs(t, err, tracking.ErrInvalidPickupStatus)
}

func TestUpdatePickupStatusEntryNotFound(t *testing.T) {
	queueRepo := &fakeQueueRepo{updateErr: tracking.ErrEntryNotFound}
	svc := newTestService(&fakeDriverLocRepo{}, &fakeBookingRepo{}, queueRepo, &fakePublisher{})

	_, err := svc.UpdatePickupStatus(context.Background(), "missing", "skipped")
	require.ErrorIs(t, err, tracking.ErrEntryNotFound)
}

func TestBuildPickupQueueRebuildIsIdempotent(t *testing.T) {
	locRepo := &fakeDriverLocRepo{pos: &tracking.DriverPosition{DriverID: "drv-1", Latitude: 0, Longitude: 100}}
	bookingRepo := &fakeBookingRepo{candidates: []tracking.PickupCandidate{
		{BookingID: "far", Latitude: 0.05, Longitude: 100},
		{BookingID: "near", Latitude: 0.01, Longitude: 100},
	}}
	queueRepo := &fakeQueueRepo{}

	svc := newTestService(locRepo, bookingRepo, queueRepo, &fakePublisher{})

	first, err := svc.BuildPickupQueue(context.Background(), "trv-1", "drv-1")
	require.NoError(t, err)
	second, err := svc.BuildPickupQueue(context.Background(), "trv-1", "drv-1")
	require.NoError(t, err)

	assert.Equal(t, first, second, "rebuilding with unchanged inputs must give the same queue")
	assert.Equal(t, 2, queueRepo.replaceCalls)
}

func TestUpdatePickupStatusPickedUpStampsTime(t *testing.T) {
	queueRepo := &fakeQueueRepo{updated: &tracking.QueueEntry{
		ID: "entry-1", TravelID: "trv-1", BookingID: "bkg-1", PickupStatus: tracking.PickupInProgress,
	}}
	pub := &fakePublisher{}
	svc := newTestService(&fakeDriverLocRepo{}, &fakeBookingRepo{}, queueRepo, pub)

	view, err := svc.UpdatePickupStatus(context.Background(), "entry-1", "picked_up")
	require.NoError(t, err)

	assert.Equal(t, "picked_up", view.PickupStatus)
	require.NotNil(t, view.ActualPickupTime)
	assert.Contains(t, pub.published, "tracking.pickup_status_updated")
}

func TestUpdatePickupStatusSkippedKeepsPickupTime(t *testing.T) {
	stamped := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	queueRepo := &fakeQueueRepo{updated: &tracking.QueueEntry{
		ID: "entry-1", TravelID: "trv-1", BookingID: "bkg-1",
		PickupStatus: tracking.PickupPickedUp, ActualPickupTime: &stamped,
	}}
	svc := newTestService(&fakeDriverLocRepo{}, &fakeBookingRepo{}, queueRepo, &fakePublisher{})

	view, err := svc.UpdatePickupStatus(context.Background(), "entry-1", "skipped")
	require.NoError(t, err)

	assert.Equal(t, "skipped", view.PickupStatus)
	require.NotNil(t, view.ActualPickupTime, "skipping after a pickup must not erase the recorded time")
	assert.Equal(t, stamped.Format(time.RFC3339), *view.ActualPickupTime)
}
