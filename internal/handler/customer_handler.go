package handler

import (
	"net/http"

	"github.com/Furkanefeabus/teklif-backend/internal/middleware"
	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/Furkanefeabus/teklif-backend/pkg/logger"
	"github.com/Furkanefeabus/teklif-backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CustomerRequest defines the structure for customer creation/update requests
type CustomerRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Address   string `json:"address"`
	TaxNumber string `json:"tax_number"`
	TaxOffice string `json:"tax_office"`
	Notes     string `json:"notes"`
}

// ListCustomers returns all customers owned by the authenticated user
func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var customers []model.Customer
	if err := database.GetDB().Where("user_id = ?", userID).Find(&customers).Error; err != nil {
		log.Error("Failed to list customers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve customers"})
	}

	prometheus.RecordCustomerOperation("list")
	return c.JSON(http.StatusOK, customers)
}

// GetCustomer returns a single customer within the owner's scope
func GetCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	var customer model.Customer
	if err := database.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&customer).Error; err != nil {
		log.Warn("Customer not found", zap.String("customer_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	return c.JSON(http.StatusOK, customer)
}

// CreateCustomer creates a customer owned by the authenticated user
func CreateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Customer validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	customer := model.Customer{
		UserID:    userID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Address:   req.Address,
		TaxNumber: req.TaxNumber,
		TaxOffice: req.TaxOffice,
		Notes:     req.Notes,
	}
	if err := database.GetDB().Create(&customer).Error; err != nil {
		log.Error("Failed to create customer", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create customer"})
	}

	prometheus.RecordCustomerOperation("create")
	log.Info("Customer created", zap.Uint("customer_id", customer.ID), zap.String("name", customer.Name))
	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer replaces the customer's profile fields
func UpdateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	var customer model.Customer
	if err := database.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&customer).Error; err != nil {
		log.Warn("Customer not found for update", zap.String("customer_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Company = req.Company
	customer.Address = req.Address
	customer.TaxNumber = req.TaxNumber
	customer.TaxOffice = req.TaxOffice
	customer.Notes = req.Notes

	if err := database.GetDB().Save(&customer).Error; err != nil {
		log.Error("Failed to update customer", zap.String("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update customer"})
	}

	prometheus.RecordCustomerOperation("update")
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer. Quotations referencing it keep
// their snapshots and customer_id; their embedded customer view simply
// comes back empty afterwards.
func DeleteCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	result := database.GetDB().Where("id = ? AND user_id = ?", id, userID).Delete(&model.Customer{})
	if result.Error != nil {
		log.Error("Failed to delete customer", zap.String("customer_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete customer"})
	}
	if result.RowsAffected == 0 {
		log.Warn("Customer not found for deletion", zap.String("customer_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	}

	prometheus.RecordCustomerOperation("delete")
	log.Info("Customer deleted", zap.String("customer_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "customer deleted successfully"})
}
