package member

import (
	"context"
	"errors"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	entityUser    = "user"
	entityAddress = "user address"
)

var errUsernameExists = shared.NewConflictError("username already exists")

// SessionInvalidator revokes every token issued to a user so far
type SessionInvalidator interface {
	InvalidateUser(ctx context.Context, userID int64) error
}

// UserService handles user accounts
type UserService struct {
	users     member.UserRepository
	scope     uow.TransactionScope
	recaptcha *RecaptchaService
	sessions  SessionInvalidator
	logger    *zap.Logger
}

// NewUserService creates a new UserService. recaptcha and sessions may be nil.
func NewUserService(
	users member.UserRepository,
	scope uow.TransactionScope,
	recaptcha *RecaptchaService,
	sessions SessionInvalidator,
	logger *zap.Logger,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:     users,
		scope:     scope,
		recaptcha: recaptcha,
		sessions:  sessions,
		logger:    logger,
	}
}

// GetAll returns every user
func (s *UserService) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityUser, id)
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Create registers a customer account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if err := s.recaptcha.Require(ctx, req.RecaptchaToken); err != nil {
		return nil, err
	}

	user, err := member.NewUser(req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	user.DisplayName = req.DisplayName
	user.Email = req.Email
	user.Phone = req.Phone

	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		exists, err := repos.Users().ExistsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if exists {
			return errUsernameExists
		}
		return usernameConflict(repos.Users().Save(ctx, user))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update changes profile fields and optionally the password.
// A password change revokes the tokens issued before it.
func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	var user *member.User
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		user, err = repos.Users().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityUser, id)
		}
		if password, ok := req.Password.Get(); ok {
			if err := user.SetPassword(password); err != nil {
				return err
			}
		}
		req.DisplayName.ApplyOrClear(&user.DisplayName)
		req.Email.ApplyOrClear(&user.Email)
		req.Phone.ApplyOrClear(&user.Phone)
		return repos.Users().Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	if _, changed := req.Password.Get(); changed && s.sessions != nil {
		if err := s.sessions.InvalidateUser(ctx, id); err != nil {
			s.logger.Error("Failed to revoke tokens after password change", zap.Int64("user_id", id), zap.Error(err))
		}
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes a user once no address, order, shop or chat message references it
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.Users().ExistsByID, entityUser, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.UserAddresses().ExistsByUserID, Message: "user address exists"},
			integrity.Dependent{Exists: repos.Orders().ExistsByUserID, Message: "order exists"},
			integrity.Dependent{Exists: repos.Shops().ExistsByOwnerID, Message: "shop exists"},
			integrity.Dependent{Exists: repos.ChatMessages().ExistsByUserID, Message: "chat message exists"},
		); err != nil {
			return err
		}
		return repos.Users().Delete(ctx, id)
	})
}

func usernameConflict(err error) error {
	if errors.Is(err, shared.ErrAlreadyExists) {
		return errUsernameExists
	}
	return err
}
