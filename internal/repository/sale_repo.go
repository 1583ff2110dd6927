package repository

import (
	"context"

	"go-inventory-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindOwned(ctx context.Context, ownerID string, id uuid.UUID) (*model.Sale, error)
	FindByOwner(ctx context.Context, ownerID string) ([]model.Sale, error)
	UpdatePayment(ctx context.Context, ownerID string, id uuid.UUID, amountPaid decimal.Decimal, status model.PaymentStatus) (bool, error)
	SoftDelete(ctx context.Context, sale *model.Sale, deletedBy string) error
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create inserts the sale and its items; pass the surrounding transaction
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Omit("Customer").Create(sale).Error
}

// hydrate preloads customer and line items. Products are loaded even when
// soft-deleted so historical sales stay readable.
func hydrate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sale_items.created_at ASC") }).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

func (r *saleRepo) FindOwned(ctx context.Context, ownerID string, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := hydrate(r.db.WithContext(ctx)).First(&sale, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindByOwner returns sales in insertion order
func (r *saleRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.Sale, error) {
	sales := []model.Sale{}
	err := hydrate(r.db.WithContext(ctx)).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) UpdatePayment(ctx context.Context, ownerID string, id uuid.UUID, amountPaid decimal.Decimal, status model.PaymentStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"amount_paid":    amountPaid,
			"payment_status": status,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *saleRepo) SoftDelete(ctx context.Context, sale *model.Sale, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Sale{}).Where("id = ?", sale.ID).Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Sale{}, "id = ?", sale.ID).Error
	})
}
