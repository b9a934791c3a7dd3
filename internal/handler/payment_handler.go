package handler

import (
	"net/http"

	"github.com/Furkanefeabus/teklif-backend/internal/middleware"
	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/internal/service"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/Furkanefeabus/teklif-backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListPendingPayments returns the user's unpaid quotations with their
// customers embedded
func ListPendingPayments(c echo.Context) error {
	return listByPaymentStatus(c, model.PaymentStatusUnpaid)
}

// ListPaidPayments returns the user's paid quotations with their
// customers embedded
func ListPaidPayments(c echo.Context) error {
	return listByPaymentStatus(c, model.PaymentStatusPaid)
}

func listByPaymentStatus(c echo.Context, status string) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	quotations, err := quotationService().ListByPaymentStatus(userID, status)
	if err != nil {
		log.Error("Failed to list quotations by payment status",
			zap.String("payment_status", status), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve quotations"})
	}

	return c.JSON(http.StatusOK, quotations)
}

// PaymentStatistics returns expected/received/pending totals across
// the user's quotations
func PaymentStatistics(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	stats, err := service.NewStatisticsService(database.GetDB()).Payments(userID)
	if err != nil {
		log.Error("Failed to compute payment statistics", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute statistics"})
	}

	return c.JSON(http.StatusOK, stats)
}
