package persistence

import (
	"context"

	"github.com/shopmall/backend/internal/domain/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM.
// Child category links live in product_child_categories.
type GormProductRepository struct {
	gormRepository[catalog.Product]
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{gormRepository: newGormRepository[catalog.Product](db)}
}

// FindByID finds a product and its category links
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	product, err := r.gormRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadCategories(ctx, []*catalog.Product{product}); err != nil {
		return nil, err
	}
	return product, nil
}

// FindAll returns every product
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	products, err := r.gormRepository.FindAll(ctx)
	return r.withCategories(ctx, products, err)
}

// FindAllByID returns the products with the given IDs
func (r *GormProductRepository) FindAllByID(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	products, err := r.gormRepository.FindAllByID(ctx, ids)
	return r.withCategories(ctx, products, err)
}

// FindAllByIDForUpdate selects the rows with FOR UPDATE in ID order, so concurrent
// orders touching the same products queue instead of overselling. SQLite ignores the clause.
func (r *GormProductRepository) FindAllByIDForUpdate(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	products := make([]catalog.Product, 0, len(ids))
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&products).Error
	return r.withCategories(ctx, products, err)
}

// FindByShopID lists the products of a shop
func (r *GormProductRepository) FindByShopID(ctx context.Context, shopID int64) ([]catalog.Product, error) {
	products, err := r.findBy(ctx, "shop_id", shopID)
	return r.withCategories(ctx, products, err)
}

// FindByChildCategoryID lists the products linked to a child category
func (r *GormProductRepository) FindByChildCategoryID(ctx context.Context, childCategoryID int64) ([]catalog.Product, error) {
	var products []catalog.Product
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&catalog.ProductChildCategory{}).Select("product_id").Where("child_category_id = ?", childCategoryID)).
		Order("id ASC").
		Find(&products).Error
	return r.withCategories(ctx, products, err)
}

// ExistsByShopID checks if the shop has any product
func (r *GormProductRepository) ExistsByShopID(ctx context.Context, shopID int64) (bool, error) {
	return r.existsBy(ctx, "shop_id", shopID)
}

// ExistsByChildCategoryID checks if any product is linked to the child category
func (r *GormProductRepository) ExistsByChildCategoryID(ctx context.Context, childCategoryID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.ProductChildCategory{}).
		Where("child_category_id = ?", childCategoryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save stores the product row and replaces its category links
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := r.gormRepository.Save(ctx, product); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	if err := db.Where("product_id = ?", product.ID).Delete(&catalog.ProductChildCategory{}).Error; err != nil {
		return translateError(err)
	}
	if len(product.ChildCategoryIDs) == 0 {
		return nil
	}
	links := make([]catalog.ProductChildCategory, 0, len(product.ChildCategoryIDs))
	for _, categoryID := range product.ChildCategoryIDs {
		links = append(links, catalog.ProductChildCategory{ProductID: product.ID, ChildCategoryID: categoryID})
	}
	return translateError(db.Create(&links).Error)
}

// Delete removes the category links and then the product row
func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&catalog.ProductChildCategory{}).Error; err != nil {
		return translateError(err)
	}
	return r.gormRepository.Delete(ctx, id)
}

func (r *GormProductRepository) withCategories(ctx context.Context, products []catalog.Product, err error) ([]catalog.Product, error) {
	if err != nil {
		return nil, err
	}
	ptrs := make([]*catalog.Product, len(products))
	for i := range products {
		ptrs[i] = &products[i]
	}
	if err := r.loadCategories(ctx, ptrs); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) loadCategories(ctx context.Context, products []*catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, len(products))
	byID := make(map[int64]*catalog.Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		p.ChildCategoryIDs = []int64{}
		byID[p.ID] = p
	}
	var links []catalog.ProductChildCategory
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", ids).
		Order("child_category_id ASC").
		Find(&links).Error
	if err != nil {
		return err
	}
	for _, link := range links {
		if p, ok := byID[link.ProductID]; ok {
			p.ChildCategoryIDs = append(p.ChildCategoryIDs, link.ChildCategoryID)
		}
	}
	return nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
