package repository

import (
	"context"

	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByOwner(ctx context.Context, ownerID string) ([]model.Product, error)
	FindOwned(ctx context.Context, ownerID string, id uuid.UUID) (*model.Product, error)
	FindByName(ctx context.Context, ownerID, name, description string) ([]model.Product, error)
	AddStock(ctx context.Context, id uuid.UUID, quantity int) error
	Updates(ctx context.Context, product *model.Product, fields map[string]interface{}) error
	SoftDelete(ctx context.Context, product *model.Product, deletedBy string) error

	// Transaction-bound helpers for the sale flow
	FindOwnedForUpdate(tx *gorm.DB, ownerID string, ids []uuid.UUID) ([]model.Product, error)
	DecrementStock(tx *gorm.DB, ownerID string, id uuid.UUID, quantity int) (bool, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.Product, error) {
	products := []model.Product{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindOwned(ctx context.Context, ownerID string, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByName returns merge candidates; price equality is decided by the caller
// so decimal comparison does not depend on the SQL dialect
func (r *productRepo) FindByName(ctx context.Context, ownerID, name, description string) ([]model.Product, error) {
	products := []model.Product{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND description = ?", ownerID, name, description).
		Order("created_at ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) AddStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).Error
}

func (r *productRepo) Updates(ctx context.Context, product *model.Product, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(product).Updates(fields).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, product *model.Product, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(product).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(product).Error
	})
}

// FindOwnedForUpdate locks the rows on dialects that support SELECT ... FOR UPDATE
func (r *productRepo) FindOwnedForUpdate(tx *gorm.DB, ownerID string, ids []uuid.UUID) ([]model.Product, error) {
	products := []model.Product{}
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Find(&products).Error
	return products, err
}

// DecrementStock only succeeds while enough stock remains, so concurrent sales
// can never drive stock_quantity below zero. false means nothing was updated.
func (r *productRepo) DecrementStock(tx *gorm.DB, ownerID string, id uuid.UUID, quantity int) (bool, error) {
	result := tx.Model(&model.Product{}).
		Where("id = ? AND user_id = ? AND stock_quantity >= ?", id, ownerID, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
