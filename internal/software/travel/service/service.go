package service

import (
	"context"
	"time"

	"travel-po/internal/domain/travel"
	"travel-po/internal/general/logger"
	"travel-po/internal/ports"
)

// travelService handles operator-scoped travel scheduling.
type travelService struct {
	logger     *logger.Logger
	uow        ports.UnitOfWork
	travelRepo ports.TravelRepository
}

// NewTravelService creates a new travel service with the provided dependencies.
func NewTravelService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	travelRepo ports.TravelRepository,
) ports.TravelService {
	return &travelService{
		logger:     logger,
		uow:        uow,
		travelRepo: travelRepo,
	}
}

// CreateTravel schedules a travel with all seats available.
func (service *travelService) CreateTravel(ctx context.Context, in ports.CreateTravelInput) (ports.TravelView, error) {
	t, err := travel.New(in.OperatorID, in.VehicleID, in.DriverID, in.RouteName, in.Origin, in.Destination,
		in.DepartureTime, in.ArrivalTime, in.Price, in.TotalSeats)
	if err != nil {
		return ports.TravelView{}, err
	}

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.travelRepo.Create(txCtx, t)
	})
	if err != nil {
		service.logger.Error(ctx, "travel_create_failed", "Failed to create travel", err,
			map[string]any{"operator_id": in.OperatorID})
		return ports.TravelView{}, err
	}

	service.logger.Info(service.logger.WithTravelID(ctx, t.ID), "travel_created", "Travel scheduled",
		map[string]any{"route_name": t.RouteName})

	return bareTravelView(t), nil
}

// ListTravels returns the operator's travels joined with vehicle/driver
// summaries and booking counts.
func (service *travelService) ListTravels(ctx context.Context, operatorID string) ([]ports.TravelView, error) {
	var rows []ports.TravelRow

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = service.travelRepo.ListByOperator(txCtx, operatorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.TravelView, 0, len(rows))
	for i := range rows {
		out = append(out, travelRowView(&rows[i]))
	}
	return out, nil
}

// GetTravel returns one of the operator's travels.
func (service *travelService) GetTravel(ctx context.Context, operatorID, travelID string) (ports.TravelView, error) {
	var t *travel.Travel

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		t, err = service.travelRepo.GetByIDForOperator(txCtx, operatorID, travelID)
		return err
	})
	if err != nil {
		return ports.TravelView{}, err
	}

	return bareTravelView(t), nil
}

// UpdateTravel applies the non-nil fields of in to the travel.
func (service *travelService) UpdateTravel(ctx context.Context, in ports.UpdateTravelInput) (ports.TravelView, error) {
	var t *travel.Travel

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		t, err = service.travelRepo.GetByIDForOperator(txCtx, in.OperatorID, in.TravelID)
		if err != nil {
			return err
		}

		if in.VehicleID != nil {
			t.VehicleID = *in.VehicleID
		}
		if in.DriverID != nil {
			t.DriverID = in.DriverID
		}
		if in.RouteName != nil {
			t.RouteName = *in.RouteName
		}
		if in.Origin != nil {
			t.Origin = *in.Origin
		}
		if in.Destination != nil {
			t.Destination = *in.Destination
		}
		if in.DepartureTime != nil {
			t.DepartureTime = *in.DepartureTime
		}
		if in.ArrivalTime != nil {
			t.ArrivalTime = in.ArrivalTime
		}
		if in.Price != nil {
			t.Price = *in.Price
		}
		if in.Status != nil {
			status, err := travel.ParseStatus(*in.Status)
			if err != nil {
				return err
			}
			t.Status = status
		}

		if err := t.Validate(); err != nil {
			return err
		}
		return service.travelRepo.Update(txCtx, t)
	})
	if err != nil {
		return ports.TravelView{}, err
	}

	return bareTravelView(t), nil
}

// DeleteTravel removes one of the operator's travels.
func (service *travelService) DeleteTravel(ctx context.Context, operatorID, travelID string) error {
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.travelRepo.Delete(txCtx, operatorID, travelID)
	})
	if err != nil {
		return err
	}

	service.logger.Info(service.logger.WithTravelID(ctx, travelID), "travel_deleted", "Travel deleted",
		map[string]any{"operator_id": operatorID})
	return nil
}

func bareTravelView(t *travel.Travel) ports.TravelView {
	view := ports.TravelView{
		ID:               t.ID,
		RouteName:        t.RouteName,
		Origin:           t.Origin,
		Destination:      t.Destination,
		DepartureTime:    t.DepartureTime.UTC().Format(time.RFC3339),
		Price:            t.Price,
		TotalSeats:       t.TotalSeats,
		AvailableSeats:   t.AvailableSeats,
		Status:           t.Status.String(),
		WeatherAlert:     t.WeatherAlert,
		WeatherCondition: t.WeatherCondition,
	}
	if t.ArrivalTime != nil {
		s := t.ArrivalTime.UTC().Format(time.RFC3339)
		view.ArrivalTime = &s
	}
	return view
}

func travelRowView(row *ports.TravelRow) ports.TravelView {
	view := bareTravelView(&row.Travel)
	view.VehicleNumber = row.VehicleNumber
	view.PlateNumber = row.PlateNumber
	view.VehicleType = row.VehicleType
	view.DriverName = row.DriverName
	view.BookingCount = row.BookingCount
	return view
}
