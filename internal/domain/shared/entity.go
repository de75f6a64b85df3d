package shared

import "time"

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() int64
}

// BaseEntity provides common fields for all entities.
// ID is assigned by the database on first insert and never changes afterwards.
type BaseEntity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() int64 {
	return e.ID
}

// IsNew reports whether the entity has not been persisted yet
func (e *BaseEntity) IsNew() bool {
	return e.ID == 0
}
