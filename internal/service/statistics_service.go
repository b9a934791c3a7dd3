package service

import (
	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardStats summarizes a user's account activity
type DashboardStats struct {
	TotalCustomers  int64           `json:"total_customers"`
	TotalProducts   int64           `json:"total_products"`
	TotalQuotations int64           `json:"total_quotations"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	PendingPayments decimal.Decimal `json:"pending_payments"`
}

// PaymentStats summarizes the payment state across a user's quotations
type PaymentStats struct {
	TotalExpected decimal.Decimal `json:"total_expected"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalPending  decimal.Decimal `json:"total_pending"`
	OverdueCount  int64           `json:"overdue_count"`
}

// StatisticsService aggregates per-user reporting figures
type StatisticsService struct {
	db *gorm.DB
}

// NewStatisticsService creates a statistics service on the given database handle
func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{db: db}
}

// Dashboard returns resource counts plus revenue figures derived from
// the payment status of the user's quotations
func (s *StatisticsService) Dashboard(userID uint) (*DashboardStats, error) {
	stats := &DashboardStats{
		TotalRevenue:    decimal.Zero,
		PendingPayments: decimal.Zero,
	}

	if err := s.db.Model(&model.Customer{}).Where("user_id = ?", userID).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Product{}).Where("user_id = ?", userID).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	var quotations []model.Quotation
	if err := s.db.Where("user_id = ?", userID).Find(&quotations).Error; err != nil {
		return nil, err
	}

	stats.TotalQuotations = int64(len(quotations))
	for _, q := range quotations {
		switch q.PaymentStatus {
		case model.PaymentStatusPaid:
			stats.TotalRevenue = stats.TotalRevenue.Add(q.Total)
		case model.PaymentStatusUnpaid:
			stats.PendingPayments = stats.PendingPayments.Add(q.Total)
		}
	}

	return stats, nil
}

// Payments returns expected/received/pending totals. Received falls
// back to the quotation total when a paid quotation has no explicit
// payment amount recorded.
func (s *StatisticsService) Payments(userID uint) (*PaymentStats, error) {
	var quotations []model.Quotation
	if err := s.db.Where("user_id = ?", userID).Find(&quotations).Error; err != nil {
		return nil, err
	}

	stats := &PaymentStats{
		TotalExpected: decimal.Zero,
		TotalReceived: decimal.Zero,
		TotalPending:  decimal.Zero,
	}

	for _, q := range quotations {
		stats.TotalExpected = stats.TotalExpected.Add(q.Total)
		switch q.PaymentStatus {
		case model.PaymentStatusPaid:
			received := q.Total
			if q.PaymentAmount != nil && !q.PaymentAmount.IsZero() {
				received = *q.PaymentAmount
			}
			stats.TotalReceived = stats.TotalReceived.Add(received)
		case model.PaymentStatusUnpaid:
			stats.TotalPending = stats.TotalPending.Add(q.Total)
			stats.OverdueCount++
		}
	}

	return stats, nil
}
