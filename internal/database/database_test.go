package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourpricing/internal/domain"
)

func TestWithPragmas(t *testing.T) {
	assert.Equal(t, "app.db?"+sqlitePragmas, withPragmas("app.db"))
	assert.Equal(t, "file:app.db?cache=shared&"+sqlitePragmas, withPragmas("file:app.db?cache=shared"))
	assert.Equal(t, "app.db?_pragma=journal_mode(WAL)", withPragmas("app.db?_pragma=journal_mode(WAL)"))
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	db, err := Connect(filepath.Join(t.TempDir(), "pricing.db"), nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, model := range domain.Models() {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}
	assert.True(t, db.Migrator().HasIndex(&domain.RatePeriod{}, "idx_rate_periods_key_start"))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}
