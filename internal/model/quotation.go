package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values for a quotation
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Quotation is the priced offer sent to a customer. The monetary fields
// are always recomputed server-side from the item snapshots; client
// supplied amounts are never trusted.
type Quotation struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	UserID          uint             `json:"user_id" gorm:"index;not null"`
	CustomerID      uint             `json:"customer_id" gorm:"index;not null"`
	QuotationNumber string           `json:"quotation_number" gorm:"type:varchar(50);index"`
	Subtotal        decimal.Decimal  `json:"subtotal" gorm:"type:decimal(12,2)"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount" gorm:"type:decimal(12,2)"`
	TaxRate         int              `json:"tax_rate" gorm:"default:20"`
	TaxAmount       decimal.Decimal  `json:"tax_amount" gorm:"type:decimal(12,2)"`
	Total           decimal.Decimal  `json:"total" gorm:"type:decimal(12,2)"`
	Notes           string           `json:"notes,omitempty" gorm:"type:text"`
	Status          string           `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PaymentStatus   string           `json:"payment_status" gorm:"type:varchar(20);default:'unpaid'"`
	PaymentDate     *time.Time       `json:"payment_date,omitempty"`
	PaymentAmount   *decimal.Decimal `json:"payment_amount,omitempty" gorm:"type:decimal(12,2)"`
	PaymentNotes    string           `json:"payment_notes,omitempty" gorm:"type:text"`
	Items           []QuotationItem  `json:"items" gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
	Customer        *Customer        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// QuotationItem is a snapshot of one quoted line. It copies the product
// data at quotation time and has no live product reference.
type QuotationItem struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	QuotationID    uint            `json:"quotation_id" gorm:"index;not null"`
	ProductName    string          `json:"product_name" gorm:"type:varchar(255);not null"`
	Specifications string          `json:"specifications,omitempty" gorm:"type:text"`
	Quantity       int             `json:"quantity" gorm:"not null"`
	Unit           string          `json:"unit" gorm:"type:varchar(20);default:'pcs'"`
	UnitPrice      decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
}
