package model

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	BaseModel
	UserID        string          `gorm:"type:varchar(255);not null;index:idx_product_identity,priority:1" json:"userId"`
	Name          string          `gorm:"type:varchar(255);not null;index:idx_product_identity,priority:2" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stockQuantity"`
	ReorderLevel  int             `gorm:"not null;default:0" json:"reorderLevel"`
}

// IsLowStock reports whether the product is at or below its reorder level
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.ReorderLevel
}

// SameIdentity reports whether another product with these attributes should be
// merged into p instead of stored as a new row
func (p *Product) SameIdentity(name, description string, price decimal.Decimal) bool {
	return p.Name == name && p.Description == description && p.Price.Equal(price)
}
