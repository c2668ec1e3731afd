package service

import (
	"context"
	"time"

	"travel-po/internal/domain/driver"
	"travel-po/internal/ports"
)

// CreateDriver registers a driver for the operator.
func (service *fleetService) CreateDriver(ctx context.Context, in ports.CreateDriverInput) (ports.DriverView, error) {
	d, err := driver.New(in.OperatorID, in.FullName, in.LicenseNumber, in.LicenseType, in.Phone)
	if err != nil {
		return ports.DriverView{}, err
	}
	d.Address = in.Address
	d.DateOfBirth = in.DateOfBirth

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.driverRepo.Create(txCtx, d)
	})
	if err != nil {
		service.logger.Error(ctx, "driver_create_failed", "Failed to create driver", err,
			map[string]any{"operator_id": in.OperatorID})
		return ports.DriverView{}, err
	}

	service.logger.Info(ctx, "driver_created", "Driver registered",
		map[string]any{"driver_id": d.ID, "operator_id": in.OperatorID})

	return driverView(d), nil
}

// ListDrivers returns the operator's drivers with their latest GPS fix.
func (service *fleetService) ListDrivers(ctx context.Context, operatorID string) ([]ports.DriverView, error) {
	var drivers []driver.Driver

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		drivers, err = service.driverRepo.ListByOperator(txCtx, operatorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.DriverView, 0, len(drivers))
	for i := range drivers {
		out = append(out, driverView(&drivers[i]))
	}
	return out, nil
}

// UpdateDriver applies the non-nil fields of in to the driver.
func (service *fleetService) UpdateDriver(ctx context.Context, in ports.UpdateDriverInput) (ports.DriverView, error) {
	var d *driver.Driver

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		d, err = service.driverRepo.GetByID(txCtx, in.OperatorID, in.DriverID)
		if err != nil {
			return err
		}

		if in.FullName != nil {
			d.FullName = *in.FullName
		}
		if in.LicenseNumber != nil {
			d.LicenseNumber = *in.LicenseNumber
		}
		if in.LicenseType != nil {
			d.LicenseType = *in.LicenseType
		}
		if in.Phone != nil {
			d.Phone = *in.Phone
		}
		if in.Address != nil {
			d.Address = in.Address
		}
		if in.Status != nil {
			d.Status = driver.ParseStatus(*in.Status)
		}

		if err := d.Validate(); err != nil {
			return err
		}
		return service.driverRepo.Update(txCtx, d)
	})
	if err != nil {
		return ports.DriverView{}, err
	}

	return driverView(d), nil
}

// DeleteDriver removes one of the operator's drivers.
func (service *fleetService) DeleteDriver(ctx context.Context, operatorID, driverID string) error {
	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.driverRepo.Delete(txCtx, operatorID, driverID)
	})
	if err != nil {
		return err
	}

	service.logger.Info(ctx, "driver_deleted", "Driver deleted",
		map[string]any{"driver_id": driverID, "operator_id": operatorID})
	return nil
}

func driverView(d *driver.Driver) ports.DriverView {
	view := ports.DriverView{
		ID:               d.ID,
		FullName:         d.FullName,
		LicenseNumber:    d.LicenseNumber,
		LicenseType:      d.LicenseType,
		Phone:            d.Phone,
		Address:          d.Address,
		Status:           d.Status.String(),
		CurrentLatitude:  d.CurrentLatitude,
		CurrentLongitude: d.CurrentLongitude,
		CreatedAt:        d.CreatedAt.UTC().Format(time.RFC3339),
	}
	if d.LastLocationUpdate != nil {
		s := d.LastLocationUpdate.UTC().Format(time.RFC3339)
		view.LastLocationUpdate = &s
	}
	return view
}
