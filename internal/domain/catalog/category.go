package catalog

import (
	"unicode/utf8"

	"github.com/shopmall/backend/internal/domain/shared"
)

// MaxCategoryNameLength is the maximum length of a category name
const MaxCategoryNameLength = 50

// ParentCategory is a first-level category
type ParentCategory struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_parent_category_name"`
}

// TableName returns the table name for GORM
func (ParentCategory) TableName() string {
	return "parent_categories"
}

// NewParentCategory creates a new first-level category
func NewParentCategory(name string) (*ParentCategory, error) {
	name = shared.NormalizeName(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return &ParentCategory{Name: name}, nil
}

// Rename changes the category name
func (c *ParentCategory) Rename(name string) error {
	name = shared.NormalizeName(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	return nil
}

// ChildCategory is a second-level category linked to one or more parent categories.
// The parent links are fixed at creation.
type ChildCategory struct {
	shared.BaseEntity
	Name      string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_child_category_name"`
	ParentIDs []int64 `gorm:"-"`
}

// TableName returns the table name for GORM
func (ChildCategory) TableName() string {
	return "child_categories"
}

// ChildCategoryParent is a row of the child/parent join table
type ChildCategoryParent struct {
	ChildCategoryID  int64 `gorm:"primaryKey"`
	ParentCategoryID int64 `gorm:"primaryKey;index"`
}

// TableName returns the table name for GORM
func (ChildCategoryParent) TableName() string {
	return "child_category_parents"
}

// NewChildCategory creates a second-level category under the given parents
func NewChildCategory(name string, parentIDs []int64) (*ChildCategory, error) {
	name = shared.NormalizeName(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	parentIDs = shared.DistinctIDs(parentIDs)
	if len(parentIDs) == 0 {
		return nil, shared.NewValidationError("at least one parent category is required")
	}
	return &ChildCategory{Name: name, ParentIDs: parentIDs}, nil
}

// Rename changes the category name
func (c *ChildCategory) Rename(name string) error {
	name = shared.NormalizeName(name)
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewValidationError("category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return shared.NewValidationError("category name cannot exceed 50 characters")
	}
	return nil
}
