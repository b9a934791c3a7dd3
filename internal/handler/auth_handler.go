package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Furkanefeabus/teklif-backend/internal/middleware"
	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/Furkanefeabus/teklif-backend/pkg/jwtutil"
	"github.com/Furkanefeabus/teklif-backend/pkg/logger"
	"github.com/Furkanefeabus/teklif-backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

// LoginRequest is the payload for obtaining a token
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SettingsRequest carries the optional profile fields of a settings
// update; only non-nil fields are applied
type SettingsRequest struct {
	FullName         *string         `json:"full_name"`
	Company          *string         `json:"company"`
	Phone            *string         `json:"phone"`
	CompanyLogo      *string         `json:"company_logo"`
	CompanyAddress   *string         `json:"company_address"`
	CompanyTaxNumber *string         `json:"company_tax_number"`
	CompanyTaxOffice *string         `json:"company_tax_office"`
	DefaultTaxRate   *int            `json:"default_tax_rate"`
	DesignSettings   json.RawMessage `json:"design_settings"`
}

func authResponse(token string, user *model.User) echo.Map {
	return echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user": echo.Map{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
		},
	}
}

// Register handles account creation. Registering with an email that is
// already in use is a conflict and creates nothing.
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Invalid registration data", zap.Error(err))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and full_name are required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	var count int64
	database.GetDB().Model(&model.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		log.Warn("Email already registered", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_taken")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	user := model.User{
		Email:              req.Email,
		PasswordHash:       string(hash),
		FullName:           req.FullName,
		SubscriptionPlan:   "free",
		SubscriptionStatus: "active",
		DefaultTaxRate:     20,
	}
	if err := database.GetDB().Create(&user).Error; err != nil {
		log.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User registered", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, authResponse(token, &user))
}

// Login verifies credentials and issues a token
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	if err := database.GetDB().Where("email = ?", req.Email).First(&user).Error; err != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, authResponse(token, &user))
}

// Me returns the authenticated user's profile
func Me(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateSettings applies a partial update to the user's profile and
// issuer settings. A payload with no recognized fields is rejected.
func UpdateSettings(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse settings request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.CompanyLogo != nil {
		updates["company_logo"] = *req.CompanyLogo
	}
	if req.CompanyAddress != nil {
		updates["company_address"] = *req.CompanyAddress
	}
	if req.CompanyTaxNumber != nil {
		updates["company_tax_number"] = *req.CompanyTaxNumber
	}
	if req.CompanyTaxOffice != nil {
		updates["company_tax_office"] = *req.CompanyTaxOffice
	}
	if req.DefaultTaxRate != nil {
		updates["default_tax_rate"] = *req.DefaultTaxRate
	}
	if req.DesignSettings != nil {
		updates["design_settings"] = string(req.DesignSettings)
	}

	if len(updates) == 0 {
		log.Warn("Empty settings update")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no data to update"})
	}

	if err := database.GetDB().Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		log.Error("Failed to update settings", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update settings"})
	}

	var user model.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		log.Error("Failed to reload user", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update settings"})
	}

	log.Info("Settings updated", zap.Uint("user_id", userID), zap.Int("fields", len(updates)))
	return c.JSON(http.StatusOK, &user)
}
