package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Furkanefeabus/teklif-backend/internal/middleware"
	"github.com/Furkanefeabus/teklif-backend/internal/pdf"
	"github.com/Furkanefeabus/teklif-backend/internal/service"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/Furkanefeabus/teklif-backend/pkg/logger"
	"github.com/Furkanefeabus/teklif-backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func quotationService() *service.QuotationService {
	return service.NewQuotationService(database.GetDB())
}

func paramID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// ListQuotations returns the user's quotations with embedded customer
// and item snapshots, newest first
func ListQuotations(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	quotations, err := quotationService().List(userID)
	if err != nil {
		log.Error("Failed to list quotations", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve quotations"})
	}

	prometheus.RecordQuotationOperation("list")
	return c.JSON(http.StatusOK, quotations)
}

// GetQuotation returns one quotation within the owner's scope
func GetQuotation(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quotation not found"})
	}

	quotation, err := quotationService().Get(userID, id)
	if errors.Is(err, service.ErrNotFound) {
		log.Warn("Quotation not found", zap.Uint("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quotation not found"})
	}
	if err != nil {
		log.Error("Failed to get quotation", zap.Uint("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve quotation"})
	}

	return c.JSON(http.StatusOK, quotation)
}

// CreateQuotation creates a quotation; the server recomputes all
// derived amounts from the submitted items
func CreateQuotation(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var req service.QuotationInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Quotation validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id and at least one item are required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	quotation, err := quotationService().Create(userID, req)
	if errors.Is(err, service.ErrEmptyItems) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one item is required"})
	}
	if err != nil {
		log.Error("Failed to create quotation", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create quotation"})
	}

	prometheus.RecordQuotationOperation("create")
	log.Info("Quotation created",
		zap.Uint("quotation_id", quotation.ID),
		zap.String("quotation_number", quotation.QuotationNumber),
		zap.String("total", quotation.Total.String()))
	return c.JSON(http.StatusOK, quotation)
}

// UpdateQuotation fully replaces a quotation's items and recomputes
// its amounts
func UpdateQuotation(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quotation not found"})
	}

	var req service.QuotationInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id and at least one item are required"})
	}

	quotation, err := quotationService().Update(userID, id, req)
	if errors.Is(err, service.ErrNotFound) {
		log.Warn("Quotation not found for update", zap.Uint("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quotation not found"})
	}
	if errors.Is(err, service.ErrEmptyItems) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one item is required"})
	}
	if err != nil {
		log.Error("Failed to update quotation", zap.Uint("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update quotation"})
	}

	prometheus.RecordQuotationOperation("update")
	return c.JSON(http.StatusOK, quotation)
}

// DeleteQuotation removes a quotation with its items and reminders
func DeleteQuotation(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quotation not found"})
	}

	err := quotationService().Delete(userID, id)
	if errors.Is(err, service.ErrNotFound) {
		log.Warn("Quotation not found for deletion", zap.Uint("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quotation not found"})
	}
	if err != nil {
		log.Error("Failed to delete quotation", zap.Uint("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete quotation"})
	}

	prometheus.RecordQuotationOperation("delete")
	log.Info("Quotation deleted", zap.Uint("quotation_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "quotation deleted successfully"})
}

// UpdateQuotationPayment applies a partial update to the payment fields
func UpdateQuotationPayment(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quotation not found"})
	}

	var req service.PaymentInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	quotation, err := quotationService().UpdatePayment(userID, id, req)
	if errors.Is(err, service.ErrEmptyUpdate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no data to update"})
	}
	if errors.Is(err, service.ErrNotFound) {
		log.Warn("Quotation not found for payment update", zap.Uint("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quotation not found"})
	}
	if err != nil {
		log.Error("Failed to update payment", zap.Uint("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment"})
	}

	prometheus.RecordQuotationOperation("payment_update")
	log.Info("Payment updated",
		zap.Uint("quotation_id", id),
		zap.String("payment_status", quotation.PaymentStatus))
	return c.JSON(http.StatusOK, quotation)
}

// DownloadQuotationPDF renders the quotation as a PDF attachment
func DownloadQuotationPDF(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	issuer, _ := middleware.UserFromContext(c)

	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quotation not found"})
	}

	quotation, err := quotationService().Get(userID, id)
	if errors.Is(err, service.ErrNotFound) {
		log.Warn("Quotation not found for PDF", zap.Uint("quotation_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "quotation not found"})
	}
	if err != nil {
		log.Error("Failed to load quotation for PDF", zap.Uint("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve quotation"})
	}

	start := time.Now()
	data, err := pdf.RenderQuotation(quotation, issuer)
	if err != nil {
		log.Error("Failed to render PDF", zap.Uint("quotation_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render pdf"})
	}
	prometheus.PdfRenderCounter.Inc()
	prometheus.PdfRenderDuration.Observe(time.Since(start).Seconds())

	log.Info("Quotation PDF rendered",
		zap.Uint("quotation_id", id),
		zap.String("quotation_number", quotation.QuotationNumber),
		zap.Int("bytes", len(data)))

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=quotation_%s.pdf", quotation.QuotationNumber))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
