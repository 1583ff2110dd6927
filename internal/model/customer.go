package model

// Customer is created lazily the first time an owner records a sale for a phone number.
// Phone is unique per owner, never across owners.
type Customer struct {
	BaseModel
	UserID string `gorm:"type:varchar(255);not null;uniqueIndex:idx_customer_owner_phone,priority:1" json:"userId"`
	Name   string `gorm:"type:varchar(255);not null" json:"name"`
	Phone  string `gorm:"type:varchar(32);not null;uniqueIndex:idx_customer_owner_phone,priority:2" json:"phone"`
}
