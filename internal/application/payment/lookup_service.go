package payment

import (
	"context"
	"errors"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
)

const (
	entityPaymentMethod = "payment method"
	entityPaymentStatus = "payment status"
	entityPayment       = "payment"
	entityOrder         = "order"
)

var (
	errMethodNameExists = shared.NewConflictError("payment method name already exists")
	errStatusNameExists = shared.NewConflictError("payment status name already exists")
)

func nameConflict(err, conflict error) error {
	if errors.Is(err, shared.ErrAlreadyExists) {
		return conflict
	}
	return err
}

// lookupName normalizes and validates a requested name
func lookupName(name string) (string, error) {
	name = shared.NormalizeName(name)
	return name, payment.ValidateLookupName(name)
}

// PaymentMethodService manages the accepted ways to pay
type PaymentMethodService struct {
	methods payment.PaymentMethodRepository
	scope   uow.TransactionScope
}

// NewPaymentMethodService creates a new PaymentMethodService
func NewPaymentMethodService(methods payment.PaymentMethodRepository, scope uow.TransactionScope) *PaymentMethodService {
	return &PaymentMethodService{methods: methods, scope: scope}
}

// GetAll returns every payment method
func (s *PaymentMethodService) GetAll(ctx context.Context) ([]LookupResponse, error) {
	methods, err := s.methods.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return convert(methods, ToPaymentMethodResponse), nil
}

// GetByID retrieves a payment method by ID
func (s *PaymentMethodService) GetByID(ctx context.Context, id int64) (*LookupResponse, error) {
	method, err := s.methods.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityPaymentMethod, id)
	}
	resp := ToPaymentMethodResponse(method)
	return &resp, nil
}

// Create adds a payment method with a unique name
func (s *PaymentMethodService) Create(ctx context.Context, req CreateLookupRequest) (*LookupResponse, error) {
	name, err := lookupName(req.Name)
	if err != nil {
		return nil, err
	}
	method := &payment.PaymentMethod{Name: name}

	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		exists, err := repos.PaymentMethods().ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return errMethodNameExists
		}
		return nameConflict(repos.PaymentMethods().Save(ctx, method), errMethodNameExists)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPaymentMethodResponse(method)
	return &resp, nil
}

// Update renames a payment method
func (s *PaymentMethodService) Update(ctx context.Context, id int64, req UpdateLookupRequest) (*LookupResponse, error) {
	var method *payment.PaymentMethod
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		method, err = repos.PaymentMethods().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityPaymentMethod, id)
		}
		requested, ok := req.Name.Get()
		if !ok {
			return nil
		}
		name, err := lookupName(requested)
		if err != nil {
			return err
		}
		other, err := repos.PaymentMethods().FindByName(ctx, name)
		switch {
		case err == nil && other.ID != id:
			return errMethodNameExists
		case err != nil && !shared.IsNotFound(err):
			return err
		}
		method.Name = name
		return nameConflict(repos.PaymentMethods().Save(ctx, method), errMethodNameExists)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPaymentMethodResponse(method)
	return &resp, nil
}

// Delete removes a payment method no payment uses
func (s *PaymentMethodService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.PaymentMethods().ExistsByID, entityPaymentMethod, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.Payments().ExistsByPaymentMethodID, Message: "payment exists"},
		); err != nil {
			return err
		}
		return repos.PaymentMethods().Delete(ctx, id)
	})
}

// PaymentStatusService manages the payment status lookup table
type PaymentStatusService struct {
	statuses payment.PaymentStatusRepository
	scope    uow.TransactionScope
}

// NewPaymentStatusService creates a new PaymentStatusService
func NewPaymentStatusService(statuses payment.PaymentStatusRepository, scope uow.TransactionScope) *PaymentStatusService {
	return &PaymentStatusService{statuses: statuses, scope: scope}
}

// GetAll returns every payment status
func (s *PaymentStatusService) GetAll(ctx context.Context) ([]LookupResponse, error) {
	statuses, err := s.statuses.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return convert(statuses, ToPaymentStatusResponse), nil
}

// GetByID retrieves a payment status by ID
func (s *PaymentStatusService) GetByID(ctx context.Context, id int64) (*LookupResponse, error) {
	status, err := s.statuses.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityPaymentStatus, id)
	}
	resp := ToPaymentStatusResponse(status)
	return &resp, nil
}

// Create adds a payment status
func (s *PaymentStatusService) Create(ctx context.Context, req CreateLookupRequest) (*LookupResponse, error) {
	name, err := lookupName(req.Name)
	if err != nil {
		return nil, err
	}
	status := &payment.PaymentStatus{Name: name}

	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		exists, err := repos.PaymentStatuses().ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return errStatusNameExists
		}
		return nameConflict(repos.PaymentStatuses().Save(ctx, status), errStatusNameExists)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPaymentStatusResponse(status)
	return &resp, nil
}

// Update renames a payment status
func (s *PaymentStatusService) Update(ctx context.Context, id int64, req UpdateLookupRequest) (*LookupResponse, error) {
	var status *payment.PaymentStatus
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		status, err = repos.PaymentStatuses().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityPaymentStatus, id)
		}
		requested, ok := req.Name.Get()
		if !ok {
			return nil
		}
		name, err := lookupName(requested)
		if err != nil {
			return err
		}
		other, err := repos.PaymentStatuses().FindByName(ctx, name)
		switch {
		case err == nil && other.ID != id:
			return errStatusNameExists
		case err != nil && !shared.IsNotFound(err):
			return err
		}
		status.Name = name
		return nameConflict(repos.PaymentStatuses().Save(ctx, status), errStatusNameExists)
	})
	if err != nil {
		return nil, err
	}
	resp := ToPaymentStatusResponse(status)
	return &resp, nil
}

// Delete removes a payment status no payment is in
func (s *PaymentStatusService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.PaymentStatuses().ExistsByID, entityPaymentStatus, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.Payments().ExistsByPaymentStatusID, Message: "payment exists"},
		); err != nil {
			return err
		}
		return repos.PaymentStatuses().Delete(ctx, id)
	})
}
