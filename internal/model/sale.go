package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentOnline PaymentMethod = "ONLINE"
)

type PaymentStatus string

const (
	StatusPending PaymentStatus = "PENDING"
	StatusPaid    PaymentStatus = "PAID"
)

// StatusFor derives the payment status for an amount paid against a total
func StatusFor(amountPaid, total decimal.Decimal) PaymentStatus {
	if amountPaid.GreaterThanOrEqual(total) {
		return StatusPaid
	}
	return StatusPending
}

type Sale struct {
	BaseModel
	UserID        string          `gorm:"type:varchar(255);not null;index" json:"userId"`
	CustomerID    uuid.UUID       `gorm:"type:char(36);not null;index" json:"customerId"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amountPaid"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(10);not null" json:"paymentStatus"`
	SalesDate     time.Time       `gorm:"not null;index" json:"salesDate"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem is an immutable line of a sale. Price is the unit price captured
// when the sale was recorded, independent of later product price changes.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:char(36);not null;index" json:"saleId"`
	ProductID uuid.UUID       `gorm:"type:char(36);not null;index" json:"productId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (item *SaleItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return
}

// Subtotal is unit price times quantity
func (item SaleItem) Subtotal() decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// AllModels lists every table for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{&User{}, &Customer{}, &Product{}, &Sale{}, &SaleItem{}}
}
