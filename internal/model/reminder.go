package model

import "time"

// Reminder is a scheduled follow-up note tied to a quotation. Its
// lifecycle is independent from the quotation it references.
type Reminder struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	QuotationID  uint       `json:"quotation_id" gorm:"index;not null"`
	ReminderDate time.Time  `json:"reminder_date" gorm:"not null"`
	Message      string     `json:"message" gorm:"type:text;not null"`
	Sent         bool       `json:"sent" gorm:"default:false"`
	Quotation    *Quotation `json:"quotation,omitempty" gorm:"foreignKey:QuotationID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
