package persistence

import (
	"context"

	"github.com/shopmall/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormParentCategoryRepository implements ParentCategoryRepository using GORM
type GormParentCategoryRepository struct {
	gormRepository[catalog.ParentCategory]
}

// NewGormParentCategoryRepository creates a new GormParentCategoryRepository
func NewGormParentCategoryRepository(db *gorm.DB) *GormParentCategoryRepository {
	return &GormParentCategoryRepository{gormRepository: newGormRepository[catalog.ParentCategory](db)}
}

// FindByName finds a category by its exact name
func (r *GormParentCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.ParentCategory, error) {
	return r.findOneBy(ctx, "name", name)
}

// ExistsByName checks if a category with the given name exists
func (r *GormParentCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.existsBy(ctx, "name", name)
}

// GormChildCategoryRepository implements ChildCategoryRepository using GORM.
// Parent links live in child_category_parents and are loaded into ParentIDs.
type GormChildCategoryRepository struct {
	gormRepository[catalog.ChildCategory]
}

// NewGormChildCategoryRepository creates a new GormChildCategoryRepository
func NewGormChildCategoryRepository(db *gorm.DB) *GormChildCategoryRepository {
	return &GormChildCategoryRepository{gormRepository: newGormRepository[catalog.ChildCategory](db)}
}

// FindByID finds a child category and its parent links
func (r *GormChildCategoryRepository) FindByID(ctx context.Context, id int64) (*catalog.ChildCategory, error) {
	category, err := r.gormRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadParents(ctx, []*catalog.ChildCategory{category}); err != nil {
		return nil, err
	}
	return category, nil
}

// FindAll returns every child category with its parent links
func (r *GormChildCategoryRepository) FindAll(ctx context.Context) ([]catalog.ChildCategory, error) {
	categories, err := r.gormRepository.FindAll(ctx)
	return r.withParents(ctx, categories, err)
}

// FindAllByID returns the child categories with the given IDs
func (r *GormChildCategoryRepository) FindAllByID(ctx context.Context, ids []int64) ([]catalog.ChildCategory, error) {
	categories, err := r.gormRepository.FindAllByID(ctx, ids)
	return r.withParents(ctx, categories, err)
}

// FindByName finds a child category by its exact name
func (r *GormChildCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.ChildCategory, error) {
	category, err := r.findOneBy(ctx, "name", name)
	if err != nil {
		return nil, err
	}
	if err := r.loadParents(ctx, []*catalog.ChildCategory{category}); err != nil {
		return nil, err
	}
	return category, nil
}

// ExistsByName checks if a child category with the given name exists
func (r *GormChildCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.existsBy(ctx, "name", name)
}

// FindByParentID lists the child categories linked to a parent category
func (r *GormChildCategoryRepository) FindByParentID(ctx context.Context, parentID int64) ([]catalog.ChildCategory, error) {
	var categories []catalog.ChildCategory
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&catalog.ChildCategoryParent{}).Select("child_category_id").Where("parent_category_id = ?", parentID)).
		Order("id ASC").
		Find(&categories).Error
	return r.withParents(ctx, categories, err)
}

// ExistsByParentID checks if any child category is linked to the parent
func (r *GormChildCategoryRepository) ExistsByParentID(ctx context.Context, parentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.ChildCategoryParent{}).
		Where("parent_category_id = ?", parentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save stores the category row and replaces its parent links
func (r *GormChildCategoryRepository) Save(ctx context.Context, category *catalog.ChildCategory) error {
	if err := r.gormRepository.Save(ctx, category); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	if err := db.Where("child_category_id = ?", category.ID).Delete(&catalog.ChildCategoryParent{}).Error; err != nil {
		return translateError(err)
	}
	if len(category.ParentIDs) == 0 {
		return nil
	}
	links := make([]catalog.ChildCategoryParent, 0, len(category.ParentIDs))
	for _, parentID := range category.ParentIDs {
		links = append(links, catalog.ChildCategoryParent{ChildCategoryID: category.ID, ParentCategoryID: parentID})
	}
	return translateError(db.Create(&links).Error)
}

// Delete removes the parent links and then the category row
func (r *GormChildCategoryRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("child_category_id = ?", id).Delete(&catalog.ChildCategoryParent{}).Error; err != nil {
		return translateError(err)
	}
	return r.gormRepository.Delete(ctx, id)
}

func (r *GormChildCategoryRepository) withParents(ctx context.Context, categories []catalog.ChildCategory, err error) ([]catalog.ChildCategory, error) {
	if err != nil {
		return nil, err
	}
	ptrs := make([]*catalog.ChildCategory, len(categories))
	for i := range categories {
		ptrs[i] = &categories[i]
	}
	if err := r.loadParents(ctx, ptrs); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormChildCategoryRepository) loadParents(ctx context.Context, categories []*catalog.ChildCategory) error {
	if len(categories) == 0 {
		return nil
	}
	ids := make([]int64, len(categories))
	byID := make(map[int64]*catalog.ChildCategory, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
		c.ParentIDs = []int64{}
		byID[c.ID] = c
	}
	var links []catalog.ChildCategoryParent
	err := r.db.WithContext(ctx).
		Where("child_category_id IN ?", ids).
		Order("parent_category_id ASC").
		Find(&links).Error
	if err != nil {
		return err
	}
	for _, link := range links {
		if c, ok := byID[link.ChildCategoryID]; ok {
			c.ParentIDs = append(c.ParentIDs, link.ParentCategoryID)
		}
	}
	return nil
}

var (
	_ catalog.ParentCategoryRepository = (*GormParentCategoryRepository)(nil)
	_ catalog.ChildCategoryRepository  = (*GormChildCategoryRepository)(nil)
)
