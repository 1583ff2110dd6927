package model

import "time"

// User mirrors an account of the external identity provider.
// ID is the provider's user id, so it is a string rather than a UUID.
type User struct {
	ID        string    `gorm:"type:varchar(255);primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
