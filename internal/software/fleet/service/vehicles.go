package service

import (
	"context"
	"time"

	"travel-po/internal/domain/vehicle"
	"travel-po/internal/ports"
)

// CreateVehicle registers a vehicle for the operator.
func (service *fleetService) CreateVehicle(ctx context.Context, in ports.CreateVehicleInput) (ports.VehicleView, error) {
	v, err := vehicle.New(in.OperatorID, in.VehicleNumber, in.PlateNumber, in.VehicleType)
	if err != nil {
		return ports.VehicleView{}, err
	}
	v.Brand = in.Brand
	v.Model = in.Model
	v.Year = in.Year
	v.Capacity = in.Capacity

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.vehicleRepo.Create(txCtx, v)
	})
	if err != nil {
		service.logger.Error(ctx, "vehicle_create_failed", "Failed to create vehicle", err,
			map[string]any{"operator_id": in.OperatorID})
		return ports.VehicleView{}, err
	}

	service.logger.Info(ctx, "vehicle_created", "Vehicle registered",
		map[string]any{"vehicle_id": v.ID, "operator_id": in.OperatorID})

	return vehicleView(v), nil
}

// ListVehicles returns the operator's active vehicles.
func (service *fleetService) ListVehicles(ctx context.Context, operatorID string) ([]ports.VehicleView, error) {
	var vehicles []vehicle.Vehicle

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		vehicles, err = service.vehicleRepo.ListByOperator(txCtx, operatorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.VehicleView, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, vehicleView(&vehicles[i]))
	}
	return out, nil
}

// GetVehicle returns one of the operator's vehicles.
func (service *fleetService) GetVehicle(ctx context.Context, operatorID, vehicleID string) (ports.VehicleView, error) {
	var v *vehicle.Vehicle

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		v, err = service.vehicleRepo.GetByID(txCtx, operatorID, vehicleID)
		return err
	})
	if err != nil {
		return ports.VehicleView{}, err
	}

	return vehicleView(v), nil
}

// UpdateVehicle applies the non-nil fields of in to the vehicle.
func (service *fleetService) UpdateVehicle(ctx context.Context, in ports.UpdateVehicleInput) (ports.VehicleView, error) {
	var v *vehicle.Vehicle

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		v, err = service.vehicleRepo.GetByID(txCtx, in.OperatorID, in.VehicleID)
		if err != nil {
			return err
		}

		if in.VehicleNumber != nil {
			v.VehicleNumber = *in.VehicleNumber
		}
		if in.PlateNumber != nil {
			v.PlateNumber = *in.PlateNumber
		}
		if in.VehicleType != nil {
			v.VehicleType = *in.VehicleType
		}
		if in.Brand != nil {
			v.Brand = in.Brand
		}
		if in.Model != nil {
			v.Model = in.Model
		}
		if in.Year != nil {
			v.Year = in.Year
		}
		if in.Capacity != nil {
			v.Capacity = in.Capacity
		}
		if in.Status != nil {
			v.Status = vehicle.ParseStatus(*in.Status)
		}

		if err := v.Validate(); err != nil {
			return err
		}
		return service.vehicleRepo.Update(txCtx, v)
	})
	if err != nil {
		return ports.VehicleView{}, err
	}

	return vehicleView(v), nil
}

// DeleteVehicle soft-deletes one of the operator's vehicles.
func (service *fleetService) DeleteVehicle(ctx context.Context, operatorID, vehicleID string) error {
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.vehicleRepo.Delete(txCtx, operatorID, vehicleID)
	})
	if err != nil {
		return err
	}

	service.logger.Info(ctx, "vehicle_deleted", "Vehicle deleted",
		map[string]any{"vehicle_id": vehicleID, "operator_id": operatorID})
	return nil
}

func vehicleView(v *vehicle.Vehicle) ports.VehicleView {
	return ports.VehicleView{
		ID:            v.ID,
		VehicleNumber: v.VehicleNumber,
		PlateNumber:   v.PlateNumber,
		VehicleType:   v.VehicleType,
		Brand:         v.Brand,
		Model:         v.Model,
		Year:          v.Year,
		Capacity:      v.Capacity,
		Status:        v.Status.String(),
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
