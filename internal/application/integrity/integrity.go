// Package integrity holds the reference and delete-guard checks shared by the application services.
package integrity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopmall/backend/internal/domain/shared"
)

// ExistsFunc reports whether a row with the given id exists
type ExistsFunc func(ctx context.Context, id int64) (bool, error)

// NotFound converts a repository miss into a NotFound error for entity/id.
// Any other error is returned unchanged.
func NotFound(err error, entity string, id int64) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(entity, id)
	}
	return err
}

// MissingReference converts a repository miss on a referenced row into an
// InvalidReference error. Any other error is returned unchanged.
func MissingReference(err error, entity string, id int64) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewInvalidReferenceError(fmt.Sprintf("%s not found: %d", entity, id))
	}
	return err
}

// RequireFound fails with NotFound when exists reports false.
// It is used for parent lookups on listing endpoints.
func RequireFound(ctx context.Context, exists ExistsFunc, entity string, id int64) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewNotFoundError(entity, id)
	}
	return nil
}

// RequireReference fails with InvalidReference when exists reports false
func RequireReference(ctx context.Context, exists ExistsFunc, entity string, id int64) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewInvalidReferenceError(fmt.Sprintf("%s not found: %d", entity, id))
	}
	return nil
}

// ResolveAll fails with InvalidReference unless every requested id is in found.
// A partial match is a total failure.
func ResolveAll(entity string, requested, found []int64) error {
	seen := make(map[int64]struct{}, len(found))
	for _, id := range found {
		seen[id] = struct{}{}
	}
	var missing []int64
	for _, id := range shared.DistinctIDs(requested) {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return shared.NewInvalidReferenceError(fmt.Sprintf("%s not found: %v", entity, missing))
}

// Dependent is one delete guard: a dependent family that may still reference the row
type Dependent struct {
	Exists  ExistsFunc
	Message string
}

// Guard evaluates every dependent and fails with Conflict when any still references id.
// The messages of all blocking dependents are joined.
func Guard(ctx context.Context, id int64, dependents ...Dependent) error {
	var blocking []string
	for _, d := range dependents {
		exists, err := d.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			blocking = append(blocking, d.Message)
		}
	}
	if len(blocking) > 0 {
		return shared.NewConflictError(strings.Join(blocking, ", "))
	}
	return nil
}

// IDs returns the ids of loaded entities, for comparison with ResolveAll
func IDs[T any, P interface {
	*T
	GetID() int64
}](items []T) []int64 {
	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = P(&items[i]).GetID()
	}
	return ids
}
