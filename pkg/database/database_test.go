package database

import (
	"testing"

	"go-inventory-pos/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDialectorSelection(t *testing.T) {
	cases := map[string]string{
		"":         "postgres",
		"postgres": "postgres",
		"pgx":      "postgres",
		"mysql":    "mysql",
		"sqlite":   "sqlite",
	}
	for driver, want := range cases {
		d, err := Dialector(config.DatabaseConfig{Driver: driver, Name: "test"})
		require.NoError(t, err, driver)
		assert.Equal(t, want, d.Name(), driver)
	}
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	db, err := Connect(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file:connect_test?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	for _, table := range []string{"users", "customers", "products", "sales", "sale_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
