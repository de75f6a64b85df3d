package member

import (
	"context"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/member"
)

// UserAddressService handles the address book of users
type UserAddressService struct {
	addresses member.UserAddressRepository
	users     member.UserRepository
	scope     uow.TransactionScope
}

// NewUserAddressService creates a new UserAddressService
func NewUserAddressService(addresses member.UserAddressRepository, users member.UserRepository, scope uow.TransactionScope) *UserAddressService {
	return &UserAddressService{addresses: addresses, users: users, scope: scope}
}

// GetAll returns every address
func (s *UserAddressService) GetAll(ctx context.Context) ([]UserAddressResponse, error) {
	addresses, err := s.addresses.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserAddressResponses(addresses), nil
}

// GetByID retrieves an address by ID
func (s *UserAddressService) GetByID(ctx context.Context, id int64) (*UserAddressResponse, error) {
	address, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityAddress, id)
	}
	resp := ToUserAddressResponse(address)
	return &resp, nil
}

// GetByUser lists the addresses of a user
func (s *UserAddressService) GetByUser(ctx context.Context, userID int64) ([]UserAddressResponse, error) {
	if err := integrity.RequireFound(ctx, s.users.ExistsByID, entityUser, userID); err != nil {
		return nil, err
	}
	addresses, err := s.addresses.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserAddressResponses(addresses), nil
}

// Create adds an address. A default address replaces the user's previous default.
func (s *UserAddressService) Create(ctx context.Context, req CreateUserAddressRequest) (*UserAddressResponse, error) {
	address := &member.UserAddress{
		UserID:        req.UserID,
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		City:          req.City,
		District:      req.District,
		Street:        req.Street,
		PostalCode:    req.PostalCode,
		IsDefault:     req.IsDefault,
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}

	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireReference(ctx, repos.Users().ExistsByID, entityUser, req.UserID); err != nil {
			return err
		}
		if err := repos.UserAddresses().Save(ctx, address); err != nil {
			return err
		}
		return clearOtherDefaults(ctx, repos, address)
	})
	if err != nil {
		return nil, err
	}
	resp := ToUserAddressResponse(address)
	return &resp, nil
}

// Update changes the fields present in the request
func (s *UserAddressService) Update(ctx context.Context, id int64, req UpdateUserAddressRequest) (*UserAddressResponse, error) {
	var address *member.UserAddress
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		address, err = repos.UserAddresses().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityAddress, id)
		}
		if err := applyAddressUpdate(address, req); err != nil {
			return err
		}
		if err := repos.UserAddresses().Save(ctx, address); err != nil {
			return err
		}
		return clearOtherDefaults(ctx, repos, address)
	})
	if err != nil {
		return nil, err
	}
	resp := ToUserAddressResponse(address)
	return &resp, nil
}

// Delete removes an address no order was shipped to
func (s *UserAddressService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.UserAddresses().ExistsByID, entityAddress, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.Orders().ExistsByAddressID, Message: "order exists"},
		); err != nil {
			return err
		}
		return repos.UserAddresses().Delete(ctx, id)
	})
}

// clearOtherDefaults keeps at most one default address per user
func clearOtherDefaults(ctx context.Context, repos uow.Repositories, address *member.UserAddress) error {
	if !address.IsDefault {
		return nil
	}
	return repos.UserAddresses().ClearDefault(ctx, address.UserID, address.ID)
}
