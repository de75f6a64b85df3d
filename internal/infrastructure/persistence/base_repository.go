package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopmall/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormRepository implements the id-based operations shared by every family.
// Family repositories embed it and add their foreign-key queries.
type gormRepository[T any] struct {
	db *gorm.DB
}

func newGormRepository[T any](db *gorm.DB) gormRepository[T] {
	return gormRepository[T]{db: db}
}

// FindByID finds an entity by its ID
func (r gormRepository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

// ExistsByID checks if an entity with the given ID exists
func (r gormRepository[T]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.existsBy(ctx, "id", id)
}

// FindAll returns every row ordered by ID
func (r gormRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// FindAllByID returns the rows whose IDs are in ids. Unknown IDs are silently skipped;
// callers compare the result length to detect them.
func (r gormRepository[T]) FindAllByID(ctx context.Context, ids []int64) ([]T, error) {
	entities := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return entities, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Save creates or updates an entity
func (r gormRepository[T]) Save(ctx context.Context, entity *T) error {
	return translateError(r.db.WithContext(ctx).Save(entity).Error)
}

// Delete deletes an entity by ID
func (r gormRepository[T]) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// findOneBy finds the first row whose column equals value
func (r gormRepository[T]) findOneBy(ctx context.Context, column string, value any) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where(column+" = ?", value).First(&entity).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

// findOneForUpdate is findOneBy with a FOR UPDATE row lock held until the transaction ends.
// SQLite ignores the clause.
func (r gormRepository[T]) findOneForUpdate(ctx context.Context, column string, value any) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(column+" = ?", value).
		First(&entity).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

// findBy lists the rows whose column equals value, ordered by ID
func (r gormRepository[T]) findBy(ctx context.Context, column string, value any) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Where(column+" = ?", value).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// existsBy checks if any row has column equal to value
func (r gormRepository[T]) existsBy(ctx context.Context, column string, value any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where(column+" = ?", value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateError maps GORM errors onto domain errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewConflictError("operation violates a reference between records")
	default:
		return fmt.Errorf("database error: %w", err)
	}
}
