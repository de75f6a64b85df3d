package logistics

import (
	"context"
	"testing"

	"github.com/shopmall/backend/internal/application/mocks"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShipmentMethodService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	svc := NewShipmentMethodService(s.Repos.ShipmentMethodRepo, s.Scope)

	home, err := svc.Create(ctx, CreateShipmentMethodRequest{Name: " Home delivery ", Fee: decimal.RequireFromString("80.456")})
	require.NoError(t, err)
	assert.Equal(t, "Home delivery", home.Name)
	assert.Equal(t, "80.46", home.Fee.StringFixed(2))

	_, err = svc.Create(ctx, CreateShipmentMethodRequest{Name: "Home delivery"})
	assert.EqualError(t, err, "shipment method name already exists")

	_, err = svc.Create(ctx, CreateShipmentMethodRequest{Name: "Pickup", Fee: decimal.NewFromInt(-1)})
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))

	pickup, err := svc.Create(ctx, CreateShipmentMethodRequest{Name: "Pickup"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, pickup.ID, UpdateShipmentMethodRequest{Name: shared.Some("Home delivery")})
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))

	updated, err := svc.Update(ctx, pickup.ID, UpdateShipmentMethodRequest{Fee: shared.Some(decimal.NewFromInt(60))})
	require.NoError(t, err)
	assert.Equal(t, "Pickup", updated.Name)
	assert.True(t, decimal.NewFromInt(60).Equal(updated.Fee))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(ctx, pickup.ID))
	_, err = svc.GetByID(ctx, pickup.ID)
	assert.True(t, shared.IsNotFound(err))
}

func TestShipmentStatusService_UpdateWithoutNameKeepsIt(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	svc := NewShipmentStatusService(s.Repos.ShipmentStatusRepo, s.Scope)

	created, err := svc.Create(ctx, CreateShipmentStatusRequest{Name: "Shipped"})
	require.NoError(t, err)

	same, err := svc.Update(ctx, created.ID, UpdateShipmentStatusRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Shipped", same.Name)

	renamed, err := svc.Update(ctx, created.ID, UpdateShipmentStatusRequest{Name: shared.Some("Delivered")})
	require.NoError(t, err)
	assert.Equal(t, "Delivered", renamed.Name)

	_, err = svc.Update(ctx, 999, UpdateShipmentStatusRequest{})
	assert.EqualError(t, err, "shipment status not found: 999")
}

func TestShipmentService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	user := s.SeedUser(t)
	shop := s.SeedShop(t, user.ID)
	address := s.SeedAddress(t, user.ID)
	product := s.SeedProduct(t, shop.ID, "100", 5)
	order := s.SeedOrder(t, user.ID, shop.ID, address.ID, product.ID)
	method := s.SeedShipmentMethod(t, "Home delivery")
	preparing := s.SeedShipmentStatus(t, "Preparing")
	shipped := s.SeedShipmentStatus(t, "Shipped")

	svc := NewShipmentService(s.Repos.ShipmentRepo, s.Repos.OrderRepo, s.Scope)
	methods := NewShipmentMethodService(s.Repos.ShipmentMethodRepo, s.Scope)
	statuses := NewShipmentStatusService(s.Repos.ShipmentStatusRepo, s.Scope)

	_, err := svc.Create(ctx, CreateShipmentRequest{OrderID: order.ID, ShipmentMethodID: 999, ShipmentStatusID: preparing.ID})
	assert.EqualError(t, err, "shipment method not found: 999")
	assert.Equal(t, int64(0), s.Count(t, "shipments"))

	created, err := svc.Create(ctx, CreateShipmentRequest{OrderID: order.ID, ShipmentMethodID: method.ID, ShipmentStatusID: preparing.ID})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateShipmentRequest{
		ShipmentStatusID: shared.Some(shipped.ID),
		TrackingNumber:   shared.Some("TW123456789"),
	})
	require.NoError(t, err)
	assert.Equal(t, shipped.ID, updated.ShipmentStatusID)
	assert.Equal(t, method.ID, updated.ShipmentMethodID)

	_, err = svc.Update(ctx, created.ID, UpdateShipmentRequest{ShipmentStatusID: shared.Some(int64(999))})
	assert.Equal(t, shared.KindInvalidReference, shared.KindOf(err))

	byOrder, err := svc.GetByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, byOrder, 1)
	assert.Equal(t, "TW123456789", byOrder[0].TrackingNumber)

	assert.EqualError(t, methods.Delete(ctx, method.ID), "shipment exists")
	assert.EqualError(t, statuses.Delete(ctx, shipped.ID), "shipment exists")
	require.NoError(t, statuses.Delete(ctx, preparing.ID))

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, methods.Delete(ctx, method.ID))
}

func TestShipmentService_GetByOrder_UnknownOrder(t *testing.T) {
	ctx := context.Background()
	repos := mocks.NewRepos()
	repos.Orders.On("ExistsByID", ctx, int64(8)).Return(false, nil)
	svc := NewShipmentService(repos.Shipments, repos.Orders, repos.Scope())

	_, err := svc.GetByOrder(ctx, 8)

	assert.Equal(t, shared.KindNotFound, shared.KindOf(err))
	repos.Shipments.AssertNotCalled(t, "FindByOrderID", mock.Anything, mock.Anything)
}
