package logistics

import (
	"context"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/logistics"
	"github.com/shopmall/backend/internal/domain/trade"
)

// ShipmentService tracks order deliveries
type ShipmentService struct {
	shipments logistics.ShipmentRepository
	orders    trade.OrderRepository
	scope     uow.TransactionScope
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(shipments logistics.ShipmentRepository, orders trade.OrderRepository, scope uow.TransactionScope) *ShipmentService {
	return &ShipmentService{shipments: shipments, orders: orders, scope: scope}
}

// GetAll returns every shipment
func (s *ShipmentService) GetAll(ctx context.Context) ([]ShipmentResponse, error) {
	shipments, err := s.shipments.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return convert(shipments, ToShipmentResponse), nil
}

// GetByID retrieves a shipment by ID
func (s *ShipmentService) GetByID(ctx context.Context, id int64) (*ShipmentResponse, error) {
	shipment, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityShipment, id)
	}
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// GetByOrder lists the shipments of an order
func (s *ShipmentService) GetByOrder(ctx context.Context, orderID int64) ([]ShipmentResponse, error) {
	if err := integrity.RequireFound(ctx, s.orders.ExistsByID, entityOrder, orderID); err != nil {
		return nil, err
	}
	shipments, err := s.shipments.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return convert(shipments, ToShipmentResponse), nil
}

// Create ships an order with an existing method and status
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	shipment := &logistics.Shipment{
		OrderID:          req.OrderID,
		ShipmentMethodID: req.ShipmentMethodID,
		ShipmentStatusID: req.ShipmentStatusID,
		TrackingNumber:   req.TrackingNumber,
	}
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireReference(ctx, repos.Orders().ExistsByID, entityOrder, req.OrderID); err != nil {
			return err
		}
		if err := integrity.RequireReference(ctx, repos.ShipmentMethods().ExistsByID, entityShipmentMethod, req.ShipmentMethodID); err != nil {
			return err
		}
		if err := integrity.RequireReference(ctx, repos.ShipmentStatuses().ExistsByID, entityShipmentStatus, req.ShipmentStatusID); err != nil {
			return err
		}
		return repos.Shipments().Save(ctx, shipment)
	})
	if err != nil {
		return nil, err
	}
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// Update moves a shipment to another status or sets its tracking number
func (s *ShipmentService) Update(ctx context.Context, id int64, req UpdateShipmentRequest) (*ShipmentResponse, error) {
	var shipment *logistics.Shipment
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		shipment, err = repos.Shipments().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityShipment, id)
		}
		if statusID, ok := req.ShipmentStatusID.Get(); ok {
			if err := integrity.RequireReference(ctx, repos.ShipmentStatuses().ExistsByID, entityShipmentStatus, statusID); err != nil {
				return err
			}
			shipment.ShipmentStatusID = statusID
		}
		req.TrackingNumber.ApplyOrClear(&shipment.TrackingNumber)
		return repos.Shipments().Save(ctx, shipment)
	})
	if err != nil {
		return nil, err
	}
	resp := ToShipmentResponse(shipment)
	return &resp, nil
}

// Delete removes a shipment
func (s *ShipmentService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.Shipments().ExistsByID, entityShipment, id); err != nil {
			return err
		}
		return repos.Shipments().Delete(ctx, id)
	})
}
