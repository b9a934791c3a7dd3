package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry owned by a single user.
// Quotations copy product data into line-item snapshots, so editing a
// product never changes existing quotations.
type Product struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"index;not null"`
	Name           string          `json:"name" gorm:"type:varchar(255);not null"`
	Description    string          `json:"description,omitempty" gorm:"type:text"`
	Category       string          `json:"category,omitempty" gorm:"type:varchar(100)"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock          int             `json:"stock" gorm:"default:0"`
	Unit           string          `json:"unit" gorm:"type:varchar(20);default:'pcs'"`
	SKU            string          `json:"sku,omitempty" gorm:"type:varchar(100)"`
	Specifications string          `json:"specifications,omitempty" gorm:"type:text"`
	ImageBase64    string          `json:"image_base64,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
