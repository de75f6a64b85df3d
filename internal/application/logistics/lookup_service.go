package logistics

import (
	"context"
	"errors"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/logistics"
	"github.com/shopmall/backend/internal/domain/shared"
)

const (
	entityShipmentMethod = "shipment method"
	entityShipmentStatus = "shipment status"
	entityShipment       = "shipment"
	entityOrder          = "order"
)

var (
	errMethodNameExists = shared.NewConflictError("shipment method name already exists")
	errStatusNameExists = shared.NewConflictError("shipment status name already exists")
)

func nameConflict(err, conflict error) error {
	if errors.Is(err, shared.ErrAlreadyExists) {
		return conflict
	}
	return err
}

// ShipmentMethodService manages the delivery options
type ShipmentMethodService struct {
	methods logistics.ShipmentMethodRepository
	scope   uow.TransactionScope
}

// NewShipmentMethodService creates a new ShipmentMethodService
func NewShipmentMethodService(methods logistics.ShipmentMethodRepository, scope uow.TransactionScope) *ShipmentMethodService {
	return &ShipmentMethodService{methods: methods, scope: scope}
}

// GetAll returns every shipment method
func (s *ShipmentMethodService) GetAll(ctx context.Context) ([]ShipmentMethodResponse, error) {
	methods, err := s.methods.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return convert(methods, ToShipmentMethodResponse), nil
}

// GetByID retrieves a shipment method by ID
func (s *ShipmentMethodService) GetByID(ctx context.Context, id int64) (*ShipmentMethodResponse, error) {
	method, err := s.methods.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityShipmentMethod, id)
	}
	resp := ToShipmentMethodResponse(method)
	return &resp, nil
}

// Create adds a shipment method with a unique name
func (s *ShipmentMethodService) Create(ctx context.Context, req CreateShipmentMethodRequest) (*ShipmentMethodResponse, error) {
	method := &logistics.ShipmentMethod{Name: shared.NormalizeName(req.Name), Fee: req.Fee.Round(2)}
	if err := logistics.ValidateLookupName(method.Name); err != nil {
		return nil, err
	}
	if err := logistics.ValidateFee(method.Fee); err != nil {
		return nil, err
	}

	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		exists, err := repos.ShipmentMethods().ExistsByName(ctx, method.Name)
		if err != nil {
			return err
		}
		if exists {
			return errMethodNameExists
		}
		return nameConflict(repos.ShipmentMethods().Save(ctx, method), errMethodNameExists)
	})
	if err != nil {
		return nil, err
	}
	resp := ToShipmentMethodResponse(method)
	return &resp, nil
}

// Update renames a shipment method or changes its fee
func (s *ShipmentMethodService) Update(ctx context.Context, id int64, req UpdateShipmentMethodRequest) (*ShipmentMethodResponse, error) {
	var method *logistics.ShipmentMethod
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		method, err = repos.ShipmentMethods().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityShipmentMethod, id)
		}
		if name, ok := req.Name.Get(); ok {
			name = shared.NormalizeName(name)
			if err := logistics.ValidateLookupName(name); err != nil {
				return err
			}
			other, err := repos.ShipmentMethods().FindByName(ctx, name)
			if err == nil && other.ID != id {
				return errMethodNameExists
			}
			if err != nil && !shared.IsNotFound(err) {
				return err
			}
			method.Name = name
		}
		if fee, ok := req.Fee.Get(); ok {
			if err := logistics.ValidateFee(fee); err != nil {
				return err
			}
			method.Fee = fee.Round(2)
		}
		return nameConflict(repos.ShipmentMethods().Save(ctx, method), errMethodNameExists)
	})
	if err != nil {
		return nil, err
	}
	resp := ToShipmentMethodResponse(method)
	return &resp, nil
}

// Delete removes a shipment method no shipment uses
func (s *ShipmentMethodService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.ShipmentMethods().ExistsByID, entityShipmentMethod, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.Shipments().ExistsByShipmentMethodID, Message: "shipment exists"},
		); err != nil {
			return err
		}
		return repos.ShipmentMethods().Delete(ctx, id)
	})
}

// ShipmentStatusService manages the shipment status lookup table
type ShipmentStatusService struct {
	statuses logistics.ShipmentStatusRepository
	scope    uow.TransactionScope
}

// NewShipmentStatusService creates a new ShipmentStatusService
func NewShipmentStatusService(statuses logistics.ShipmentStatusRepository, scope uow.TransactionScope) *ShipmentStatusService {
	return &ShipmentStatusService{statuses: statuses, scope: scope}
}

// GetAll returns every shipment status
func (s *ShipmentStatusService) GetAll(ctx context.Context) ([]ShipmentStatusResponse, error) {
	statuses, err := s.statuses.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return convert(statuses, ToShipmentStatusResponse), nil
}

// GetByID retrieves a shipment status by ID
func (s *ShipmentStatusService) GetByID(ctx context.Context, id int64) (*ShipmentStatusResponse, error) {
	status, err := s.statuses.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityShipmentStatus, id)
	}
	resp := ToShipmentStatusResponse(status)
	return &resp, nil
}

// Create adds a shipment status
func (s *ShipmentStatusService) Create(ctx context.Context, req CreateShipmentStatusRequest) (*ShipmentStatusResponse, error) {
	status := &logistics.ShipmentStatus{Name: shared.NormalizeName(req.Name)}
	if err := logistics.ValidateLookupName(status.Name); err != nil {
		return nil, err
	}
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		exists, err := repos.ShipmentStatuses().ExistsByName(ctx, status.Name)
		if err != nil {
			return err
		}
		if exists {
			return errStatusNameExists
		}
		return nameConflict(repos.ShipmentStatuses().Save(ctx, status), errStatusNameExists)
	})
	if err != nil {
		return nil, err
	}
	resp := ToShipmentStatusResponse(status)
	return &resp, nil
}

// Update renames a shipment status
func (s *ShipmentStatusService) Update(ctx context.Context, id int64, req UpdateShipmentStatusRequest) (*ShipmentStatusResponse, error) {
	var status *logistics.ShipmentStatus
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		status, err = repos.ShipmentStatuses().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityShipmentStatus, id)
		}
		name, ok := req.Name.Get()
		if !ok {
			return nil
		}
		name = shared.NormalizeName(name)
		if err := logistics.ValidateLookupName(name); err != nil {
			return err
		}
		other, err := repos.ShipmentStatuses().FindByName(ctx, name)
		if err == nil && other.ID != id {
			return errStatusNameExists
		}
		if err != nil && !shared.IsNotFound(err) {
			return err
		}
		status.Name = name
		return nameConflict(repos.ShipmentStatuses().Save(ctx, status), errStatusNameExists)
	})
	if err != nil {
		return nil, err
	}
	resp := ToShipmentStatusResponse(status)
	return &resp, nil
}

// Delete removes a shipment status no shipment is in
func (s *ShipmentStatusService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.ShipmentStatuses().ExistsByID, entityShipmentStatus, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.Shipments().ExistsByShipmentStatusID, Message: "shipment exists"},
		); err != nil {
			return err
		}
		return repos.ShipmentStatuses().Delete(ctx, id)
	})
}
