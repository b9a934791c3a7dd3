package model

import (
	"encoding/json"
	"time"
)

// User represents an account that owns customers, products and quotations.
// It also carries the issuer profile printed on quotation PDFs.
type User struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	Email               string          `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash        string          `json:"-" gorm:"type:varchar(255);not null"`
	FullName            string          `json:"full_name" gorm:"type:varchar(255);not null"`
	Company             string          `json:"company,omitempty" gorm:"type:varchar(255)"`
	Phone               string          `json:"phone,omitempty" gorm:"type:varchar(50)"`
	SubscriptionPlan    string          `json:"subscription_plan" gorm:"type:varchar(20);default:'free'"`
	SubscriptionStatus  string          `json:"subscription_status" gorm:"type:varchar(20);default:'active'"`
	SubscriptionEndDate *time.Time      `json:"subscription_end_date,omitempty"`
	CompanyLogo         string          `json:"company_logo,omitempty" gorm:"type:text"`
	CompanyAddress      string          `json:"company_address,omitempty" gorm:"type:text"`
	CompanyTaxNumber    string          `json:"company_tax_number,omitempty" gorm:"type:varchar(50)"`
	CompanyTaxOffice    string          `json:"company_tax_office,omitempty" gorm:"type:varchar(100)"`
	DefaultTaxRate      int             `json:"default_tax_rate" gorm:"default:20"`
	DesignSettings      json.RawMessage `json:"design_settings,omitempty" gorm:"type:text"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
