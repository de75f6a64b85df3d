package catalog

import "github.com/shopmall/backend/internal/domain/shared"

var errStorageDisabled = shared.NewValidationError("image storage is not configured")

func distinct(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	return shared.DistinctIDs(ids)
}
