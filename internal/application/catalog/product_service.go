package catalog

import (
	"context"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/media"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopmall/backend/internal/domain/store"
)

const (
	entityProduct = "product"
	entityShop    = "shop"
)

// ProductService handles product operations
type ProductService struct {
	products   catalog.ProductRepository
	shops      store.ShopRepository
	categories catalog.ChildCategoryRepository
	scope      uow.TransactionScope
	media      *media.Service
}

// NewProductService creates a new ProductService. media may be nil, in which case
// responses carry no image URL and upload URLs are unavailable.
func NewProductService(
	products catalog.ProductRepository,
	shops store.ShopRepository,
	categories catalog.ChildCategoryRepository,
	scope uow.TransactionScope,
	mediaService *media.Service,
) *ProductService {
	return &ProductService{
		products:   products,
		shops:      shops,
		categories: categories,
		scope:      scope,
		media:      mediaService,
	}
}

// GetAll returns every product
func (s *ProductService) GetAll(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, products), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityProduct, id)
	}
	return s.toResponse(ctx, product), nil
}

// GetByShop lists the products of a shop
func (s *ProductService) GetByShop(ctx context.Context, shopID int64) ([]ProductResponse, error) {
	if err := integrity.RequireFound(ctx, s.shops.ExistsByID, entityShop, shopID); err != nil {
		return nil, err
	}
	products, err := s.products.FindByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, products), nil
}

// GetByCategory2 lists the products linked to a second-level category
func (s *ProductService) GetByCategory2(ctx context.Context, categoryID int64) ([]ProductResponse, error) {
	if err := integrity.RequireFound(ctx, s.categories.ExistsByID, entityChildCategory, categoryID); err != nil {
		return nil, err
	}
	products, err := s.products.FindByChildCategoryID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, products), nil
}

// Create creates a product for an existing shop
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.ShopID, req.Name, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.ImageKey = req.ImageKey

	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireReference(ctx, repos.Shops().ExistsByID, entityShop, req.ShopID); err != nil {
			return err
		}

		categoryIDs := distinct(req.Category2IDs)
		if len(categoryIDs) > 0 {
			categories, err := repos.ChildCategories().FindAllByID(ctx, categoryIDs)
			if err != nil {
				return err
			}
			if err := integrity.ResolveAll(entityChildCategory, categoryIDs, integrity.IDs(categories)); err != nil {
				return err
			}
		}
		product.ChildCategoryIDs = categoryIDs

		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, product), nil
}

// Update changes the scalar fields of a product
func (s *ProductService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*ProductResponse, error) {
	var product *catalog.Product
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		product, err = repos.Products().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityProduct, id)
		}
		if err := applyProductUpdate(product, req); err != nil {
			return err
		}
		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, product), nil
}

// Delete removes a product that no order line references
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.Products().ExistsByID, entityProduct, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.Orders().ExistsByProductID, Message: "order item exists"},
		); err != nil {
			return err
		}
		return repos.Products().Delete(ctx, id)
	})
}

// ImageUploadURL returns a presigned URL to upload the product image.
// The returned key is stored on the product with a later Update.
func (s *ProductService) ImageUploadURL(ctx context.Context, id int64, req media.UploadURLRequest) (*media.UploadURLResponse, error) {
	if err := integrity.RequireFound(ctx, s.products.ExistsByID, entityProduct, id); err != nil {
		return nil, err
	}
	if s.media == nil {
		return nil, errStorageDisabled
	}
	return s.media.UploadURL(ctx, "products", id, req)
}

func (s *ProductService) toResponse(ctx context.Context, p *catalog.Product) *ProductResponse {
	resp := ToProductResponse(p)
	resp.ImageURL = s.media.DownloadURL(ctx, p.ImageKey)
	return &resp
}

func (s *ProductService) toResponses(ctx context.Context, products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *s.toResponse(ctx, &products[i])
	}
	return responses
}
