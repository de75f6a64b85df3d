// Package testutil provides common test utilities for the shop backend.
// It opens sqlmock and in-memory SQLite databases, drives gin engines in test mode and builds fixtures.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/shopmall/backend/internal/application/uow"
	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/shopmall/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockDB wraps a GORM database with sqlmock for testing.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a new mock database for testing.
// The connection is closed when the test finishes.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err, "Failed to open GORM connection")
	t.Cleanup(func() { _ = mockDB.Close() })

	return &MockDB{
		DB:    gormDB,
		Mock:  mock,
		SqlDB: mockDB,
	}
}

// ExpectationsWereMet verifies that all expectations were met.
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	err := m.Mock.ExpectationsWereMet()
	require.NoError(t, err, "Unmet database expectations")
}

// Store is an in-memory SQLite database with the full schema and the GORM repositories on top
type Store struct {
	DB    *gorm.DB
	Repos *uow.RepositorySet
	Scope uow.TransactionScope
}

// NewStore opens a fresh in-memory SQLite store.
// Every call gets its own database, closed when the test finishes.
func NewStore(t *testing.T) *Store {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err, "Failed to open sqlite")
	require.NoError(t, persistence.AutoMigrate(db.DB), "Failed to migrate sqlite")
	t.Cleanup(func() { _ = db.Close() })

	return &Store{
		DB:    db.DB,
		Repos: persistence.NewRepositorySet(db.DB),
		Scope: persistence.NewGormTransactionScope(db.DB),
	}
}

// Count returns the number of rows in table
func (s *Store) Count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB.Table(table).Count(&n).Error)
	return n
}
