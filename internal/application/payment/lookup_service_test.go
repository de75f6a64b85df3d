package payment

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopmall/backend/internal/application/mocks"
	"github.com/shopmall/backend/internal/domain/payment"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethodService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	svc := NewPaymentMethodService(s.Repos.PaymentMethodRepo, s.Scope)

	card, err := svc.Create(ctx, CreateLookupRequest{Name: "  Credit card "})
	require.NoError(t, err)
	assert.Equal(t, "Credit card", card.Name)

	_, err = svc.Create(ctx, CreateLookupRequest{Name: "Credit card"})
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
	assert.Equal(t, "payment method name already exists", err.Error())

	atm, err := svc.Create(ctx, CreateLookupRequest{Name: "ATM"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, atm.ID, UpdateLookupRequest{Name: shared.Some("Credit card")})
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))

	renamed, err := svc.Update(ctx, atm.ID, UpdateLookupRequest{Name: shared.Some("ATM transfer")})
	require.NoError(t, err)
	assert.Equal(t, "ATM transfer", renamed.Name)

	same, err := svc.Update(ctx, card.ID, UpdateLookupRequest{Name: shared.Some("Credit card")})
	require.NoError(t, err)
	assert.Equal(t, card.ID, same.ID)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(ctx, atm.ID))
	_, err = svc.GetByID(ctx, atm.ID)
	assert.True(t, shared.IsNotFound(err))
	assert.Equal(t, "payment method not found: "+strconv.FormatInt(atm.ID, 10), err.Error())
}

func TestPaymentMethodService_DeleteGuardedByPayments(t *testing.T) {
	repos := mocks.NewRepos()
	svc := NewPaymentMethodService(repos.PaymentMethods, repos.Scope())

	repos.PaymentMethods.On("ExistsByID", mock.Anything, int64(3)).Return(true, nil)
	repos.Payments.On("ExistsByPaymentMethodID", mock.Anything, int64(3)).Return(true, nil)

	err := svc.Delete(context.Background(), 3)

	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
	assert.Equal(t, "payment exists", err.Error())
	repos.PaymentMethods.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPaymentStatusService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	svc := NewPaymentStatusService(s.Repos.PaymentStatusRepo, s.Scope)

	_, err := svc.Create(ctx, CreateLookupRequest{Name: "   "})
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))

	paid, err := svc.Create(ctx, CreateLookupRequest{Name: "Paid"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateLookupRequest{Name: "Paid"})
	assert.Equal(t, "payment status name already exists", err.Error())

	untouched, err := svc.Update(ctx, paid.ID, UpdateLookupRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Paid", untouched.Name)

	_, err = svc.Update(ctx, 999, UpdateLookupRequest{Name: shared.Some("Refunded")})
	assert.True(t, shared.IsNotFound(err))

	err = svc.Delete(ctx, 999)
	assert.True(t, shared.IsNotFound(err))
}

func TestPaymentStatusService_DeleteGuardedByPayments(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t)
	svc := NewPaymentStatusService(s.Repos.PaymentStatusRepo, s.Scope)

	user := s.SeedUser(t)
	shop := s.SeedShop(t, user.ID)
	order := s.SeedOrder(t, user.ID, shop.ID, s.SeedAddress(t, user.ID).ID, s.SeedProduct(t, shop.ID, "100", 1).ID)
	status := s.SeedPaymentStatus(t, "Pending")
	require.NoError(t, s.Repos.Payments().Save(ctx, &payment.Payment{
		OrderID:         order.ID,
		PaymentMethodID: s.SeedPaymentMethod(t, "Cash").ID,
		PaymentStatusID: status.ID,
		Amount:          order.Total,
		MerchantTradeNo: payment.NewMerchantTradeNo(),
	}))

	err := svc.Delete(ctx, status.ID)
	assert.Equal(t, "payment exists", err.Error())
	assert.Equal(t, int64(1), s.Count(t, "payment_statuses"))
}
