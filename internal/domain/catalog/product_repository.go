package catalog

import (
	"context"

	"github.com/shopmall/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence.
// Loaded entities carry their ChildCategoryIDs.
type ProductRepository interface {
	shared.Repository[Product]

	FindByShopID(ctx context.Context, shopID int64) ([]Product, error)
	FindByChildCategoryID(ctx context.Context, childCategoryID int64) ([]Product, error)
	// FindAllByIDForUpdate loads the products and locks their rows until the transaction ends
	FindAllByIDForUpdate(ctx context.Context, ids []int64) ([]Product, error)

	ExistsByShopID(ctx context.Context, shopID int64) (bool, error)
	ExistsByChildCategoryID(ctx context.Context, childCategoryID int64) (bool, error)
}
