package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_UpDownUp(t *testing.T) {
	tdb := NewTestDB(t)

	m := newMigrator(t, tdb.DSN)
	t.Cleanup(func() { _ = m.Close() })

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	var statuses []string
	require.NoError(t, tdb.DB.Raw("SELECT name FROM payment_statuses ORDER BY id").Scan(&statuses).Error)
	assert.Equal(t, []string{"pending", "paid", "failed"}, statuses)

	require.NoError(t, m.Down())
	var tables int64
	require.NoError(t, tdb.DB.Raw(
		"SELECT COUNT(*) FROM pg_tables WHERE schemaname = 'public' AND tablename <> 'schema_migrations'",
	).Scan(&tables).Error)
	assert.Zero(t, tables)

	require.NoError(t, m.Up())
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
}

func TestMigrations_SeededStatusesAcceptNewRows(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	s := tdb.Store()

	// the sequence was advanced past the seeded ids
	st := s.SeedPaymentStatus(t, "refunded-"+t.Name())
	assert.Greater(t, st.ID, int64(3))
}
