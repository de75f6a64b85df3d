package store

import (
	"context"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/media"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopmall/backend/internal/domain/store"
)

const (
	entityShop   = "shop"
	entityUser   = "user"
	entityCoupon = "coupon"
)

// ShopService handles shop operations
type ShopService struct {
	shops store.ShopRepository
	users member.UserRepository
	scope uow.TransactionScope
	media *media.Service
}

// NewShopService creates a new ShopService. media may be nil.
func NewShopService(shops store.ShopRepository, users member.UserRepository, scope uow.TransactionScope, mediaService *media.Service) *ShopService {
	return &ShopService{shops: shops, users: users, scope: scope, media: mediaService}
}

// GetAll returns every shop
func (s *ShopService) GetAll(ctx context.Context) ([]ShopResponse, error) {
	shops, err := s.shops.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, shops), nil
}

// GetByID retrieves a shop by ID
func (s *ShopService) GetByID(ctx context.Context, id int64) (*ShopResponse, error) {
	shop, err := s.shops.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityShop, id)
	}
	return s.toResponse(ctx, shop), nil
}

// GetByOwner lists the shops owned by a user
func (s *ShopService) GetByOwner(ctx context.Context, ownerID int64) ([]ShopResponse, error) {
	if err := integrity.RequireFound(ctx, s.users.ExistsByID, entityUser, ownerID); err != nil {
		return nil, err
	}
	shops, err := s.shops.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, shops), nil
}

// Create opens a shop for an existing user
func (s *ShopService) Create(ctx context.Context, req CreateShopRequest) (*ShopResponse, error) {
	shop, err := store.NewShop(req.OwnerID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	shop.LogoKey = req.LogoKey

	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireReference(ctx, repos.Users().ExistsByID, entityUser, req.OwnerID); err != nil {
			return err
		}
		return repos.Shops().Save(ctx, shop)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, shop), nil
}

// Update changes the name, description or logo of a shop
func (s *ShopService) Update(ctx context.Context, id int64, req UpdateShopRequest) (*ShopResponse, error) {
	var shop *store.Shop
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		shop, err = repos.Shops().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityShop, id)
		}
		if err := applyShopUpdate(shop, req); err != nil {
			return err
		}
		return repos.Shops().Save(ctx, shop)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, shop), nil
}

// Delete removes a shop once nothing references it
func (s *ShopService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.Shops().ExistsByID, entityShop, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.Products().ExistsByShopID, Message: "product exists"},
			integrity.Dependent{Exists: repos.Coupons().ExistsByShopID, Message: "coupon exists"},
			integrity.Dependent{Exists: repos.Orders().ExistsByShopID, Message: "order exists"},
			integrity.Dependent{Exists: repos.ChatMessages().ExistsByShopID, Message: "chat message exists"},
		); err != nil {
			return err
		}
		return repos.Shops().Delete(ctx, id)
	})
}

// LogoUploadURL returns a presigned URL to upload the shop logo.
// The returned key is stored on the shop with a later Update.
func (s *ShopService) LogoUploadURL(ctx context.Context, id int64, req media.UploadURLRequest) (*media.UploadURLResponse, error) {
	if err := integrity.RequireFound(ctx, s.shops.ExistsByID, entityShop, id); err != nil {
		return nil, err
	}
	if s.media == nil {
		return nil, shared.NewValidationError("image storage is not configured")
	}
	return s.media.UploadURL(ctx, "shops", id, req)
}

func (s *ShopService) toResponse(ctx context.Context, shop *store.Shop) *ShopResponse {
	resp := ToShopResponse(shop)
	resp.LogoURL = s.media.DownloadURL(ctx, shop.LogoKey)
	return &resp
}

func (s *ShopService) toResponses(ctx context.Context, shops []store.Shop) []ShopResponse {
	responses := make([]ShopResponse, len(shops))
	for i := range shops {
		responses[i] = *s.toResponse(ctx, &shops[i])
	}
	return responses
}
