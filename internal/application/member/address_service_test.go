package member

import (
	"context"
	"testing"

	"github.com/shopmall/backend/internal/application/mocks"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserAddressService_Create(t *testing.T) {
	ctx := context.Background()
	req := CreateUserAddressRequest{
		UserID: 2, RecipientName: "Lin", Phone: "0912345678",
		City: "Taipei", District: "Xinyi", Street: "No. 7 Songren Rd", PostalCode: "110",
	}

	t.Run("unknown user", func(t *testing.T) {
		repos := mocks.NewRepos()
		repos.Users.On("ExistsByID", ctx, int64(2)).Return(false, nil)
		svc := NewUserAddressService(repos.UserAddresses, repos.Users, repos.Scope())

		_, err := svc.Create(ctx, req)

		assert.Equal(t, shared.KindInvalidReference, shared.KindOf(err))
		repos.UserAddresses.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("default address clears the previous default", func(t *testing.T) {
		repos := mocks.NewRepos()
		repos.Users.On("ExistsByID", ctx, int64(2)).Return(true, nil)
		repos.UserAddresses.On("Save", ctx, mock.AnythingOfType("*member.UserAddress")).
			Run(func(args mock.Arguments) { args.Get(1).(*member.UserAddress).ID = 5 }).
			Return(nil)
		repos.UserAddresses.On("ClearDefault", ctx, int64(2), int64(5)).Return(nil)
		svc := NewUserAddressService(repos.UserAddresses, repos.Users, repos.Scope())

		withDefault := req
		withDefault.IsDefault = true
		resp, err := svc.Create(ctx, withDefault)

		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
		assert.Equal(t, "110 Taipei Xinyi No. 7 Songren Rd", resp.FullAddress)
		repos.UserAddresses.AssertExpectations(t)
	})

	t.Run("missing street", func(t *testing.T) {
		repos := mocks.NewRepos()
		svc := NewUserAddressService(repos.UserAddresses, repos.Users, repos.Scope())

		bad := req
		bad.Street = "  "
		_, err := svc.Create(ctx, bad)

		assert.Equal(t, shared.KindValidation, shared.KindOf(err))
	})
}

func TestUserAddressService_Delete_GuardedByOrders(t *testing.T) {
	ctx := context.Background()
	repos := mocks.NewRepos()
	repos.UserAddresses.On("ExistsByID", ctx, int64(5)).Return(true, nil)
	repos.Orders.On("ExistsByAddressID", ctx, int64(5)).Return(true, nil)
	svc := NewUserAddressService(repos.UserAddresses, repos.Users, repos.Scope())

	err := svc.Delete(ctx, 5)

	assert.EqualError(t, err, "order exists")
}

func TestUserAddressService_DefaultIsExclusive(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	user := s.SeedUser(t)
	svc := NewUserAddressService(s.Repos.UserAddressRepo, s.Repos.UserRepo, s.Scope)

	base := CreateUserAddressRequest{UserID: user.ID, RecipientName: "Lin", Phone: "0912", City: "Taipei", Street: "Main St", IsDefault: true}
	first, err := svc.Create(ctx, base)
	require.NoError(t, err)
	second, err := svc.Create(ctx, base)
	require.NoError(t, err)

	listed, err := svc.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	defaults := map[int64]bool{}
	for _, a := range listed {
		defaults[a.ID] = a.IsDefault
	}
	assert.False(t, defaults[first.ID])
	assert.True(t, defaults[second.ID])

	_, err = svc.Update(ctx, first.ID, UpdateUserAddressRequest{IsDefault: shared.Some(true)})
	require.NoError(t, err)
	again, err := svc.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, again.IsDefault)

	_, err = svc.GetByUser(ctx, 9999)
	assert.True(t, shared.IsNotFound(err))
}
