package handler

import (
	"net/http"

	"github.com/Furkanefeabus/teklif-backend/internal/middleware"
	"github.com/Furkanefeabus/teklif-backend/internal/service"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/Furkanefeabus/teklif-backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Statistics returns the account dashboard figures: resource counts,
// collected revenue and outstanding payment volume
func Statistics(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	stats, err := service.NewStatisticsService(database.GetDB()).Dashboard(userID)
	if err != nil {
		log.Error("Failed to compute statistics", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute statistics"})
	}

	return c.JSON(http.StatusOK, stats)
}
