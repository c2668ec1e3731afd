package service

import (
	"context"

	"travel-po/internal/domain/location"
	"travel-po/internal/general/logger"
	"travel-po/internal/ports"
)

// defaultListLimit caps unbounded autocomplete listings.
const defaultListLimit = 50

// locationService serves the public location autocomplete endpoints.
type locationService struct {
	logger       *logger.Logger
	uow          ports.UnitOfWork
	locationRepo ports.LocationRepository
}

// NewLocationService creates a new location service with the provided
// dependencies.
func NewLocationService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	locationRepo ports.LocationRepository,
) ports.LocationService {
	return &locationService{
		logger:       logger,
		uow:          uow,
		locationRepo: locationRepo,
	}
}

// List returns active location references matching the filter.
func (service *locationService) List(ctx context.Context, f ports.LocationFilter) ([]ports.LocationView, error) {
	if f.Limit <= 0 || f.Limit > defaultListLimit {
		f.Limit = defaultListLimit
	}

	var refs []location.Reference

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		refs, err = service.locationRepo.List(txCtx, f)
		return err
	})
	if err != nil {
		return nil, err
	}

	return locationViews(refs), nil
}

// Popular returns only the popular references, for the landing screen.
func (service *locationService) Popular(ctx context.Context, limit int) ([]ports.LocationView, error) {
	return service.List(ctx, ports.LocationFilter{PopularOnly: true, Limit: limit})
}

// Get returns one location reference by id.
func (service *locationService) Get(ctx context.Context, id string) (ports.LocationView, error) {
	var ref *location.Reference

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		ref, err = service.locationRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return ports.LocationView{}, err
	}

	return locationView(ref), nil
}

func locationViews(refs []location.Reference) []ports.LocationView {
	out := make([]ports.LocationView, 0, len(refs))
	for i := range refs {
		out = append(out, locationView(&refs[i]))
	}
	return out
}

func locationView(ref *location.Reference) ports.LocationView {
	return ports.LocationView{
		ID:         ref.ID,
		Name:       ref.Name,
		Type:       ref.Type.String(),
		ParentName: ref.ParentName,
		Latitude:   ref.Latitude,
		Longitude:  ref.Longitude,
		IsPopular:  ref.IsPopular,
	}
}
