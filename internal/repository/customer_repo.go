package repository

import (
	"errors"

	"go-inventory-pos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository interface {
	FindOrCreate(tx *gorm.DB, ownerID, name, phone string) (*model.Customer, bool, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

// FindOrCreate looks the customer up by phone within the owner's customers.
// The name is only used when a new customer is created. When a concurrent
// request inserts the same phone first, its row is returned.
func (r *customerRepo) FindOrCreate(tx *gorm.DB, ownerID, name, phone string) (*model.Customer, bool, error) {
	if tx == nil {
		tx = r.db
	}

	customer, err := r.find(tx, ownerID, phone)
	if err == nil {
		return customer, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	created := &model.Customer{UserID: ownerID, Name: name, Phone: phone}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "phone"}},
		DoNothing: true,
	}).Create(created)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return created, true, nil
	}

	customer, err = r.find(tx, ownerID, phone)
	if err != nil {
		return nil, false, err
	}
	return customer, false, nil
}

func (r *customerRepo) find(tx *gorm.DB, ownerID, phone string) (*model.Customer, error) {
	var customer model.Customer
	if err := tx.Where("user_id = ? AND phone = ?", ownerID, phone).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
