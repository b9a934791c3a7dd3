package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	mid "github.com/Furkanefeabus/teklif-backend/internal/middleware"
	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/pkg/config"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/Furkanefeabus/teklif-backend/pkg/jwtutil"
	"github.com/Furkanefeabus/teklif-backend/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// promauto panics on duplicate registration, so metrics are
// initialized once for the whole package
var metricsOnce sync.Once

// newTestServer wires an echo instance with the full route table onto
// a fresh in-memory database
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	metricsOnce.Do(func() {
		prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "test"}})
	})
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Product{},
		&model.Quotation{},
		&model.QuotationItem{},
		&model.Reminder{},
	))
	database.SetDB(db)

	e := echo.New()
	e.Validator = NewValidator()

	e.GET("/health", HealthCheck)

	auth := e.Group("/api/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)
	auth.GET("/me", Me, mid.AuthMiddleware)
	auth.PUT("/settings", UpdateSettings, mid.AuthMiddleware)

	customerAPI := e.Group("/api/customers", mid.AuthMiddleware)
	customerAPI.GET("", ListCustomers)
	customerAPI.GET("/:id", GetCustomer)
	customerAPI.POST("", CreateCustomer)
	customerAPI.PUT("/:id", UpdateCustomer)
	customerAPI.DELETE("/:id", DeleteCustomer)

	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", ListProducts)
	productAPI.GET("/:id", GetProduct)
	productAPI.POST("", CreateProduct)
	productAPI.PUT("/:id", UpdateProduct)
	productAPI.DELETE("/:id", DeleteProduct)

	quotationAPI := e.Group("/api/quotations", mid.AuthMiddleware)
	quotationAPI.GET("", ListQuotations)
	quotationAPI.GET("/:id", GetQuotation)
	quotationAPI.POST("", CreateQuotation)
	quotationAPI.PUT("/:id", UpdateQuotation)
	quotationAPI.DELETE("/:id", DeleteQuotation)
	quotationAPI.PUT("/:id/payment", UpdateQuotationPayment)
	quotationAPI.GET("/:id/pdf", DownloadQuotationPDF)

	reminderAPI := e.Group("/api/reminders", mid.AuthMiddleware)
	reminderAPI.GET("", ListReminders)
	reminderAPI.POST("", CreateReminder)
	reminderAPI.POST("/:id/send", SendReminder)
	reminderAPI.DELETE("/:id", DeleteReminder)

	reportAPI := e.Group("/api", mid.AuthMiddleware)
	reportAPI.GET("/statistics", Statistics)
	reportAPI.GET("/payments/pending", ListPendingPayments)
	reportAPI.GET("/payments/paid", ListPaidPayments)
	reportAPI.GET("/payments/statistics", PaymentStatistics)
	reportAPI.GET("/catalog/categories", ListCategories)

	return e
}

// newTestUser creates an account directly and returns it with a valid token
func newTestUser(t *testing.T, email string) (*model.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test User",
	}
	require.NoError(t, database.GetDB().Create(user).Error)

	token, err := jwtutil.GenerateToken(user.Email, user.ID)
	require.NoError(t, err)

	return user, token
}

func doRequest(e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = strings.NewReader(string(data))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
