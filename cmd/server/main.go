package main

import (
	"github.com/Furkanefeabus/teklif-backend/internal/handler"
	mid "github.com/Furkanefeabus/teklif-backend/internal/middleware"
	"github.com/Furkanefeabus/teklif-backend/pkg/config"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/Furkanefeabus/teklif-backend/pkg/jwtutil"
	"github.com/Furkanefeabus/teklif-backend/pkg/logger"
	"github.com/Furkanefeabus/teklif-backend/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("quotation-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting quotation-service", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database and run migrations
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	auth := e.Group("/api/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.GET("/me", handler.Me, mid.AuthMiddleware)
	auth.PUT("/settings", handler.UpdateSettings, mid.AuthMiddleware)

	// Customer API routes
	customerAPI := e.Group("/api/customers", mid.AuthMiddleware)
	customerAPI.GET("", handler.ListCustomers)
	customerAPI.GET("/:id", handler.GetCustomer)
	customerAPI.POST("", handler.CreateCustomer)
	customerAPI.PUT("/:id", handler.UpdateCustomer)
	customerAPI.DELETE("/:id", handler.DeleteCustomer)

	// Product API routes
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.POST("", handler.CreateProduct)
	productAPI.PUT("/:id", handler.UpdateProduct)
	productAPI.DELETE("/:id", handler.DeleteProduct)

	// Quotation API routes
	quotationAPI := e.Group("/api/quotations", mid.AuthMiddleware)
	quotationAPI.GET("", handler.ListQuotations)
	quotationAPI.GET("/:id", handler.GetQuotation)
	quotationAPI.POST("", handler.CreateQuotation)
	quotationAPI.PUT("/:id", handler.UpdateQuotation)
	quotationAPI.DELETE("/:id", handler.DeleteQuotation)
	quotationAPI.PUT("/:id/payment", handler.UpdateQuotationPayment)
	quotationAPI.GET("/:id/pdf", handler.DownloadQuotationPDF)

	// Reminder API routes
	reminderAPI := e.Group("/api/reminders", mid.AuthMiddleware)
	reminderAPI.GET("", handler.ListReminders)
	reminderAPI.POST("", handler.CreateReminder)
	reminderAPI.POST("/:id/send", handler.SendReminder)
	reminderAPI.DELETE("/:id", handler.DeleteReminder)

	// Reporting routes
	reportAPI := e.Group("/api", mid.AuthMiddleware)
	reportAPI.GET("/statistics", handler.Statistics)
	reportAPI.GET("/payments/pending", handler.ListPendingPayments)
	reportAPI.GET("/payments/paid", handler.ListPaidPayments)
	reportAPI.GET("/payments/statistics", handler.PaymentStatistics)
	reportAPI.GET("/catalog/categories", handler.ListCategories)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
