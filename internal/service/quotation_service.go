package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Furkanefeabus/teklif-backend/internal/finance"
	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a quotation does not resolve within
	// the caller's ownership scope
	ErrNotFound = errors.New("quotation not found")
	// ErrEmptyItems is returned when a create/update carries no items
	ErrEmptyItems = errors.New("quotation requires at least one item")
	// ErrEmptyUpdate is returned when a partial update carries no fields
	ErrEmptyUpdate = errors.New("no data to update")
)

// QuotationService owns the quotation lifecycle: numbering, server-side
// recomputation of totals, transactional header+item writes and the
// ownership-scoped reads the handlers expose.
type QuotationService struct {
	db *gorm.DB
}

// NewQuotationService creates a quotation service on the given database handle
func NewQuotationService(db *gorm.DB) *QuotationService {
	return &QuotationService{db: db}
}

// ItemInput is one line of a quotation create/update request
type ItemInput struct {
	ProductName    string          `json:"product_name" validate:"required"`
	Specifications string          `json:"specifications"`
	Quantity       int             `json:"quantity" validate:"required,gt=0"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Total          decimal.Decimal `json:"total"`
}

// QuotationInput is the payload for creating or fully updating a quotation
type QuotationInput struct {
	CustomerID     uint            `json:"customer_id" validate:"required"`
	Items          []ItemInput     `json:"items" validate:"required,min=1"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxRate        int             `json:"tax_rate"`
	Notes          string          `json:"notes"`
}

// PaymentInput is the field-mask payload for payment updates; only
// non-nil fields are applied
type PaymentInput struct {
	PaymentStatus *string          `json:"payment_status"`
	PaymentDate   *time.Time       `json:"payment_date"`
	PaymentAmount *decimal.Decimal `json:"payment_amount"`
	PaymentNotes  *string          `json:"payment_notes"`
}

// GenerateQuotationNumber builds a human-readable quotation number.
// Uniqueness is not enforced; the timestamp plus a 4-digit random
// suffix is sufficient at the expected load.
func GenerateQuotationNumber() string {
	return fmt.Sprintf("Q-%s-%d", time.Now().Format("20060102150405"), rand.Intn(9000)+1000)
}

func snapshotItems(in []ItemInput) []model.QuotationItem {
	items := make([]model.QuotationItem, 0, len(in))
	for _, item := range in {
		unit := item.Unit
		if unit == "" {
			unit = "pcs"
		}
		items = append(items, model.QuotationItem{
			ProductName:    item.ProductName,
			Specifications: item.Specifications,
			Quantity:       item.Quantity,
			Unit:           unit,
			UnitPrice:      item.UnitPrice,
			Total:          item.Total,
		})
	}
	return items
}

func (s *QuotationService) scoped(userID uint) *gorm.DB {
	return s.db.Where("user_id = ?", userID)
}

func withView(db *gorm.DB) *gorm.DB {
	return db.Preload("Customer").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("quotation_items.id ASC")
	})
}

// List returns the user's quotations, newest first, each with its
// customer and ordered item snapshots embedded
func (s *QuotationService) List(userID uint) ([]model.Quotation, error) {
	var quotations []model.Quotation
	err := withView(s.scoped(userID).Model(&model.Quotation{})).
		Order("created_at DESC, id DESC").
		Find(&quotations).Error
	return quotations, err
}

// Get returns one quotation in the user's scope with its full view
func (s *QuotationService) Get(userID, id uint) (*model.Quotation, error) {
	var quotation model.Quotation
	err := withView(s.scoped(userID)).First(&quotation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

// Create persists a new quotation. The derived amounts are recomputed
// from the item list, and the header and item snapshots are written in
// a single transaction.
func (s *QuotationService) Create(userID uint, in QuotationInput) (*model.Quotation, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}

	items := snapshotItems(in.Items)
	totals := finance.ComputeTotals(items, in.DiscountAmount, in.TaxRate)

	quotation := model.Quotation{
		UserID:          userID,
		CustomerID:      in.CustomerID,
		QuotationNumber: GenerateQuotationNumber(),
		Subtotal:        totals.Subtotal,
		DiscountAmount:  in.DiscountAmount,
		TaxRate:         in.TaxRate,
		TaxAmount:       totals.TaxAmount,
		Total:           totals.Total,
		Notes:           in.Notes,
		Status:          "pending",
		PaymentStatus:   model.PaymentStatusUnpaid,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quotation).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].QuotationID = quotation.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(userID, quotation.ID)
}

// Update replaces a quotation wholesale: the header amounts are
// recomputed and the prior item rows are dropped and reinserted. No
// partial diffing.
func (s *QuotationService) Update(userID, id uint, in QuotationInput) (*model.Quotation, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}

	var existing model.Quotation
	err := s.scoped(userID).First(&existing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items := snapshotItems(in.Items)
	totals := finance.ComputeTotals(items, in.DiscountAmount, in.TaxRate)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"customer_id":     in.CustomerID,
			"subtotal":        totals.Subtotal,
			"discount_amount": in.DiscountAmount,
			"tax_rate":        in.TaxRate,
			"tax_amount":      totals.TaxAmount,
			"total":           totals.Total,
			"notes":           in.Notes,
		}
		if err := tx.Model(&model.Quotation{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("quotation_id = ?", id).Delete(&model.QuotationItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].QuotationID = id
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(userID, id)
}

// Delete removes a quotation together with its item snapshots and any
// reminders referencing it
func (s *QuotationService) Delete(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Quotation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("quotation_id = ?", id).Delete(&model.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.Where("quotation_id = ?", id).Delete(&model.Reminder{}).Error
	})
}

// UpdatePayment applies a partial update restricted to the payment
// fields. Only the fields present in the input are touched; an input
// with no fields at all is rejected.
func (s *QuotationService) UpdatePayment(userID, id uint, in PaymentInput) (*model.Quotation, error) {
	updates := map[string]interface{}{}
	if in.PaymentStatus != nil {
		updates["payment_status"] = *in.PaymentStatus
	}
	if in.PaymentDate != nil {
		updates["payment_date"] = *in.PaymentDate
	}
	if in.PaymentAmount != nil {
		updates["payment_amount"] = *in.PaymentAmount
	}
	if in.PaymentNotes != nil {
		updates["payment_notes"] = *in.PaymentNotes
	}
	if len(updates) == 0 {
		return nil, ErrEmptyUpdate
	}

	result := s.db.Model(&model.Quotation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.Get(userID, id)
}

// ListByPaymentStatus returns the user's quotations in the given
// payment state, each with its customer embedded
func (s *QuotationService) ListByPaymentStatus(userID uint, status string) ([]model.Quotation, error) {
	var quotations []model.Quotation
	err := s.scoped(userID).
		Where("payment_status = ?", status).
		Preload("Customer").
		Order("created_at DESC, id DESC").
		Find(&quotations).Error
	return quotations, err
}
