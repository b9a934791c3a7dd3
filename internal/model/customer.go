package model

import "time"

// Customer represents a billing contact owned by a single user
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email,omitempty" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Company   string    `json:"company,omitempty" gorm:"type:varchar(255)"`
	Address   string    `json:"address,omitempty" gorm:"type:text"`
	TaxNumber string    `json:"tax_number,omitempty" gorm:"type:varchar(50)"`
	TaxOffice string    `json:"tax_office,omitempty" gorm:"type:varchar(100)"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
