package service

import (
	"travel-po/internal/general/logger"
	"travel-po/internal/ports"
)

// fleetService handles operator-scoped vehicle and driver management.
type fleetService struct {
	logger      *logger.Logger
	uow         ports.UnitOfWork
	vehicleRepo ports.VehicleRepository
	driverRepo  ports.DriverRepository
}

// NewFleetService creates a new fleet service with the provided dependencies.
func NewFleetService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	vehicleRepo ports.VehicleRepository,
	driverRepo ports.DriverRepository,
) ports.FleetService {
	return &fleetService{
		logger:      logger,
		uow:         uow,
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
	}
}
