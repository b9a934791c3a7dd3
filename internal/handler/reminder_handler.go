package handler

import (
	"net/http"
	"time"

	"github.com/Furkanefeabus/teklif-backend/internal/middleware"
	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/Furkanefeabus/teklif-backend/pkg/logger"
	"github.com/Furkanefeabus/teklif-backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReminderRequest defines the structure for reminder creation requests
type ReminderRequest struct {
	QuotationID  uint      `json:"quotation_id" validate:"required"`
	ReminderDate time.Time `json:"reminder_date" validate:"required"`
	Message      string    `json:"message" validate:"required"`
}

// ListReminders returns the user's reminders, earliest first, with the
// referenced quotation and its customer embedded
func ListReminders(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var reminders []model.Reminder
	err := database.GetDB().
		Where("user_id = ?", userID).
		Preload("Quotation").
		Preload("Quotation.Customer").
		Order("reminder_date ASC").
		Find(&reminders).Error
	if err != nil {
		log.Error("Failed to list reminders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve reminders"})
	}

	prometheus.RecordReminderOperation("list")
	return c.JSON(http.StatusOK, reminders)
}

// CreateReminder schedules a follow-up note for a quotation
func CreateReminder(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var req ReminderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Reminder validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quotation_id, reminder_date and message are required"})
	}

	reminder := model.Reminder{
		UserID:       userID,
		QuotationID:  req.QuotationID,
		ReminderDate: req.ReminderDate,
		Message:      req.Message,
	}
	if err := database.GetDB().Create(&reminder).Error; err != nil {
		log.Error("Failed to create reminder", zap.Uint("quotation_id", req.QuotationID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reminder"})
	}

	prometheus.RecordReminderOperation("create")
	log.Info("Reminder created",
		zap.Uint("reminder_id", reminder.ID),
		zap.Uint("quotation_id", reminder.QuotationID))
	return c.JSON(http.StatusCreated, reminder)
}

// SendReminder marks a reminder as sent
func SendReminder(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	result := database.GetDB().Model(&model.Reminder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("sent", true)
	if result.Error != nil {
		log.Error("Failed to mark reminder as sent", zap.String("reminder_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reminder"})
	}
	if result.RowsAffected == 0 {
		log.Warn("Reminder not found", zap.String("reminder_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reminder not found"})
	}

	prometheus.RecordReminderOperation("send")
	return c.JSON(http.StatusOK, echo.Map{"message": "reminder sent successfully"})
}

// DeleteReminder removes a reminder
func DeleteReminder(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	result := database.GetDB().Where("id = ? AND user_id = ?", id, userID).Delete(&model.Reminder{})
	if result.Error != nil {
		log.Error("Failed to delete reminder", zap.String("reminder_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reminder"})
	}
	if result.RowsAffected == 0 {
		log.Warn("Reminder not found for deletion", zap.String("reminder_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reminder not found"})
	}

	prometheus.RecordReminderOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "reminder deleted successfully"})
}
