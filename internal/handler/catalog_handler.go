package handler

import (
	"net/http"

	"github.com/Furkanefeabus/teklif-backend/internal/middleware"
	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/Furkanefeabus/teklif-backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListCategories returns the distinct non-empty categories across the
// user's products, sorted alphabetically
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var categories []string
	err := database.GetDB().Model(&model.Product{}).
		Where("user_id = ? AND category <> ''", userID).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve categories"})
	}

	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}
