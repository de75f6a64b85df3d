package store

import (
	"context"
	"testing"

	"github.com/shopmall/backend/internal/application/mocks"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShopService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown owner", func(t *testing.T) {
		repos := mocks.NewRepos()
		repos.Users.On("ExistsByID", ctx, int64(4)).Return(false, nil)
		svc := NewShopService(repos.Shops, repos.Users, repos.Scope(), nil)

		_, err := svc.Create(ctx, CreateShopRequest{OwnerID: 4, Name: "Corner"})

		assert.Equal(t, shared.KindInvalidReference, shared.KindOf(err))
		repos.Shops.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name from unique index", func(t *testing.T) {
		repos := mocks.NewRepos()
		repos.Users.On("ExistsByID", ctx, int64(4)).Return(true, nil)
		repos.Shops.On("Save", ctx, mock.Anything).Return(shared.ErrAlreadyExists)
		svc := NewShopService(repos.Shops, repos.Users, repos.Scope(), nil)

		_, err := svc.Create(ctx, CreateShopRequest{OwnerID: 4, Name: "Corner"})

		assert.Equal(t, shared.KindConflict, shared.KindOf(err))
	})
}

func TestShopService_Update_KeepsAbsentFields(t *testing.T) {
	ctx := context.Background()
	repos := mocks.NewRepos()
	shop := &store.Shop{BaseEntity: shared.BaseEntity{ID: 1}, OwnerID: 2, Name: "Corner", Description: "old", LogoKey: "shops/1/a.png"}
	repos.Shops.On("FindByID", ctx, int64(1)).Return(shop, nil)
	repos.Shops.On("Save", ctx, shop).Return(nil)
	svc := NewShopService(repos.Shops, repos.Users, repos.Scope(), nil)

	resp, err := svc.Update(ctx, 1, UpdateShopRequest{Description: shared.Some("new")})

	require.NoError(t, err)
	assert.Equal(t, "Corner", resp.Name)
	assert.Equal(t, "new", resp.Description)
	assert.Equal(t, "shops/1/a.png", resp.LogoKey)
	assert.Equal(t, int64(2), resp.OwnerID)
}

func TestShopService_Delete_ReportsEveryBlockingDependent(t *testing.T) {
	ctx := context.Background()
	repos := mocks.NewRepos()
	repos.Shops.On("ExistsByID", ctx, int64(1)).Return(true, nil)
	repos.Products.On("ExistsByShopID", ctx, int64(1)).Return(true, nil)
	repos.Coupons.On("ExistsByShopID", ctx, int64(1)).Return(false, nil)
	repos.Orders.On("ExistsByShopID", ctx, int64(1)).Return(true, nil)
	repos.ChatMessages.On("ExistsByShopID", ctx, int64(1)).Return(false, nil)
	svc := NewShopService(repos.Shops, repos.Users, repos.Scope(), nil)

	err := svc.Delete(ctx, 1)

	assert.EqualError(t, err, "product exists, order exists")
	repos.Shops.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	repos.ChatMessages.AssertExpectations(t)
}

func TestShopService_GetByOwner_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repos := mocks.NewRepos()
	repos.Users.On("ExistsByID", ctx, int64(8)).Return(false, nil)
	svc := NewShopService(repos.Shops, repos.Users, repos.Scope(), nil)

	_, err := svc.GetByOwner(ctx, 8)

	assert.Equal(t, shared.KindNotFound, shared.KindOf(err))
}
