package store

import (
	"context"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/store"
)

// CouponService handles coupon operations
type CouponService struct {
	coupons store.CouponRepository
	shops   store.ShopRepository
	scope   uow.TransactionScope
}

// NewCouponService creates a new CouponService
func NewCouponService(coupons store.CouponRepository, shops store.ShopRepository, scope uow.TransactionScope) *CouponService {
	return &CouponService{coupons: coupons, shops: shops, scope: scope}
}

// GetAll returns every coupon
func (s *CouponService) GetAll(ctx context.Context) ([]CouponResponse, error) {
	coupons, err := s.coupons.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToCouponResponses(coupons), nil
}

// GetByID retrieves a coupon by ID
func (s *CouponService) GetByID(ctx context.Context, id int64) (*CouponResponse, error) {
	coupon, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityCoupon, id)
	}
	resp := ToCouponResponse(coupon)
	return &resp, nil
}

// GetByShop lists the coupons issued by a shop
func (s *CouponService) GetByShop(ctx context.Context, shopID int64) ([]CouponResponse, error) {
	if err := integrity.RequireFound(ctx, s.shops.ExistsByID, entityShop, shopID); err != nil {
		return nil, err
	}
	coupons, err := s.coupons.FindByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return ToCouponResponses(coupons), nil
}

// Create issues a coupon for an existing shop. A duplicate code surfaces as a Conflict
// from the unique index.
func (s *CouponService) Create(ctx context.Context, req CreateCouponRequest) (*CouponResponse, error) {
	coupon, err := store.NewCoupon(req.ShopID, req.Code, req.Discount, req.MinSpend, req.Quantity, req.ValidFrom, req.ValidUntil)
	if err != nil {
		return nil, err
	}
	coupon.Description = req.Description

	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireReference(ctx, repos.Shops().ExistsByID, entityShop, req.ShopID); err != nil {
			return err
		}
		return repos.Coupons().Save(ctx, coupon)
	})
	if err != nil {
		return nil, err
	}
	resp := ToCouponResponse(coupon)
	return &resp, nil
}

// Update changes the terms of a coupon
func (s *CouponService) Update(ctx context.Context, id int64, req UpdateCouponRequest) (*CouponResponse, error) {
	var coupon *store.Coupon
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		coupon, err = repos.Coupons().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityCoupon, id)
		}
		if err := applyCouponUpdate(coupon, req); err != nil {
			return err
		}
		return repos.Coupons().Save(ctx, coupon)
	})
	if err != nil {
		return nil, err
	}
	resp := ToCouponResponse(coupon)
	return &resp, nil
}

// Delete removes a coupon that no order used
func (s *CouponService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.Coupons().ExistsByID, entityCoupon, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.Orders().ExistsByCouponID, Message: "order exists"},
		); err != nil {
			return err
		}
		return repos.Coupons().Delete(ctx, id)
	})
}
