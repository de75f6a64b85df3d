package catalog

import (
	"context"
	"errors"

	"github.com/shopmall/backend/internal/application/integrity"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopmall/backend/internal/domain/shared"
)

const (
	entityParentCategory = "parent category"
	entityChildCategory  = "child category"
)

var errCategoryNameExists = shared.NewConflictError("category name already exists")

// ParentCategoryService handles first-level category operations
type ParentCategoryService struct {
	categories catalog.ParentCategoryRepository
	scope      uow.TransactionScope
}

// NewParentCategoryService creates a new ParentCategoryService
func NewParentCategoryService(categories catalog.ParentCategoryRepository, scope uow.TransactionScope) *ParentCategoryService {
	return &ParentCategoryService{categories: categories, scope: scope}
}

// GetAll returns every first-level category
func (s *ParentCategoryService) GetAll(ctx context.Context) ([]ParentCategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToParentCategoryResponses(categories), nil
}

// GetByID retrieves a first-level category by ID
func (s *ParentCategoryService) GetByID(ctx context.Context, id int64) (*ParentCategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityParentCategory, id)
	}
	resp := ToParentCategoryResponse(category)
	return &resp, nil
}

// Create creates a first-level category with a unique name
func (s *ParentCategoryService) Create(ctx context.Context, req CreateParentCategoryRequest) (*ParentCategoryResponse, error) {
	category, err := catalog.NewParentCategory(req.Name)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		exists, err := repos.ParentCategories().ExistsByName(ctx, category.Name)
		if err != nil {
			return err
		}
		if exists {
			return errCategoryNameExists
		}
		return repos.ParentCategories().Save(ctx, category)
	})
	if err != nil {
		return nil, categoryConflict(err)
	}

	resp := ToParentCategoryResponse(category)
	return &resp, nil
}

// Update renames a first-level category
func (s *ParentCategoryService) Update(ctx context.Context, id int64, req UpdateParentCategoryRequest) (*ParentCategoryResponse, error) {
	var category *catalog.ParentCategory
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		category, err = repos.ParentCategories().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityParentCategory, id)
		}

		if name, ok := req.Name.Get(); ok {
			if err := category.Rename(name); err != nil {
				return err
			}
			other, err := repos.ParentCategories().FindByName(ctx, category.Name)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if other != nil && other.ID != id {
				return errCategoryNameExists
			}
		}
		return repos.ParentCategories().Save(ctx, category)
	})
	if err != nil {
		return nil, categoryConflict(err)
	}

	resp := ToParentCategoryResponse(category)
	return &resp, nil
}

// Delete removes a first-level category that no child category is linked to
func (s *ParentCategoryService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.ParentCategories().ExistsByID, entityParentCategory, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.ChildCategories().ExistsByParentID, Message: "child category exists"},
		); err != nil {
			return err
		}
		return repos.ParentCategories().Delete(ctx, id)
	})
}

// ChildCategoryService handles second-level category operations
type ChildCategoryService struct {
	categories catalog.ChildCategoryRepository
	parents    catalog.ParentCategoryRepository
	scope      uow.TransactionScope
}

// NewChildCategoryService creates a new ChildCategoryService
func NewChildCategoryService(
	categories catalog.ChildCategoryRepository,
	parents catalog.ParentCategoryRepository,
	scope uow.TransactionScope,
) *ChildCategoryService {
	return &ChildCategoryService{categories: categories, parents: parents, scope: scope}
}

// GetAll returns every second-level category
func (s *ChildCategoryService) GetAll(ctx context.Context) ([]ChildCategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToChildCategoryResponses(categories), nil
}

// GetByID retrieves a second-level category by ID
func (s *ChildCategoryService) GetByID(ctx context.Context, id int64) (*ChildCategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, integrity.NotFound(err, entityChildCategory, id)
	}
	resp := ToChildCategoryResponse(category)
	return &resp, nil
}

// GetByParent lists the second-level categories linked to a first-level category
func (s *ChildCategoryService) GetByParent(ctx context.Context, parentID int64) ([]ChildCategoryResponse, error) {
	if err := integrity.RequireFound(ctx, s.parents.ExistsByID, entityParentCategory, parentID); err != nil {
		return nil, err
	}
	categories, err := s.categories.FindByParentID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return ToChildCategoryResponses(categories), nil
}

// Create creates a second-level category linked to existing first-level categories
func (s *ChildCategoryService) Create(ctx context.Context, req CreateChildCategoryRequest) (*ChildCategoryResponse, error) {
	category, err := catalog.NewChildCategory(req.Name, req.Category1IDs)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos uow.Repositories) error {
		parents, err := repos.ParentCategories().FindAllByID(ctx, category.ParentIDs)
		if err != nil {
			return err
		}
		if err := integrity.ResolveAll(entityParentCategory, category.ParentIDs, integrity.IDs(parents)); err != nil {
			return err
		}

		exists, err := repos.ChildCategories().ExistsByName(ctx, category.Name)
		if err != nil {
			return err
		}
		if exists {
			return errCategoryNameExists
		}
		return repos.ChildCategories().Save(ctx, category)
	})
	if err != nil {
		return nil, categoryConflict(err)
	}

	resp := ToChildCategoryResponse(category)
	return &resp, nil
}

// Update renames a second-level category
func (s *ChildCategoryService) Update(ctx context.Context, id int64, req UpdateChildCategoryRequest) (*ChildCategoryResponse, error) {
	var category *catalog.ChildCategory
	err := s.scope.Execute(ctx, func(repos uow.Repositories) error {
		var err error
		category, err = repos.ChildCategories().FindByID(ctx, id)
		if err != nil {
			return integrity.NotFound(err, entityChildCategory, id)
		}

		if name, ok := req.Name.Get(); ok {
			if err := category.Rename(name); err != nil {
				return err
			}
			other, err := repos.ChildCategories().FindByName(ctx, category.Name)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if other != nil && other.ID != id {
				return errCategoryNameExists
			}
		}
		return repos.ChildCategories().Save(ctx, category)
	})
	if err != nil {
		return nil, categoryConflict(err)
	}

	resp := ToChildCategoryResponse(category)
	return &resp, nil
}

// Delete removes a second-level category that no product is linked to
func (s *ChildCategoryService) Delete(ctx context.Context, id int64) error {
	return s.scope.Execute(ctx, func(repos uow.Repositories) error {
		if err := integrity.RequireFound(ctx, repos.ChildCategories().ExistsByID, entityChildCategory, id); err != nil {
			return err
		}
		if err := integrity.Guard(ctx, id,
			integrity.Dependent{Exists: repos.Products().ExistsByChildCategoryID, Message: "product exists"},
		); err != nil {
			return err
		}
		return repos.ChildCategories().Delete(ctx, id)
	})
}

// categoryConflict reports a unique index hit from a concurrent insert with the same message
// as the application-level name check
func categoryConflict(err error) error {
	if errors.Is(err, shared.ErrAlreadyExists) {
		return errCategoryNameExists
	}
	return err
}
