// Package testdb provides an isolated in-memory SQLite database for tests.
package testdb

import (
	"fmt"
	"testing"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens a fresh migrated database that is closed when the test ends.
// A single connection keeps every statement of a transaction on the same handle.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func SeedUser(t testing.TB, db *gorm.DB, id string) *model.User {
	t.Helper()
	user := &model.User{ID: id, Email: id + "@shop.test", Name: id}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedProduct(t testing.TB, db *gorm.DB, ownerID, name, price string, stock, reorderLevel int) *model.Product {
	t.Helper()
	product := &model.Product{
		UserID:        ownerID,
		Name:          name,
		Description:   name + " description",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		ReorderLevel:  reorderLevel,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// Reload reads a product back, including soft-deleted rows
func Reload(t testing.TB, db *gorm.DB, id uuid.UUID) *model.Product {
	t.Helper()
	var product model.Product
	require.NoError(t, db.Unscoped().First(&product, "id = ?", id).Error)
	return &product
}
