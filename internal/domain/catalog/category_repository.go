package catalog

import (
	"context"

	"github.com/shopmall/backend/internal/domain/shared"
)

// ParentCategoryRepository defines the interface for first-level category persistence
type ParentCategoryRepository interface {
	shared.Repository[ParentCategory]

	// FindByName finds a category by its exact name
	FindByName(ctx context.Context, name string) (*ParentCategory, error)

	// ExistsByName checks if a category with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// ChildCategoryRepository defines the interface for second-level category persistence.
// Loaded entities carry their ParentIDs.
type ChildCategoryRepository interface {
	shared.Repository[ChildCategory]

	FindByName(ctx context.Context, name string) (*ChildCategory, error)
	ExistsByName(ctx context.Context, name string) (bool, error)

	// FindByParentID lists the child categories linked to a parent category
	FindByParentID(ctx context.Context, parentID int64) ([]ChildCategory, error)

	// ExistsByParentID checks if any child category is linked to the parent
	ExistsByParentID(ctx context.Context, parentID int64) (bool, error)
}
