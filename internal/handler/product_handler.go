package handler

import (
	"net/http"

	"github.com/Furkanefeabus/teklif-backend/internal/middleware"
	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/Furkanefeabus/teklif-backend/pkg/database"
	"github.com/Furkanefeabus/teklif-backend/pkg/logger"
	"github.com/Furkanefeabus/teklif-backend/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name           string          `json:"name" validate:"required"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	Unit           string          `json:"unit"`
	SKU            string          `json:"sku"`
	Specifications string          `json:"specifications"`
	ImageBase64    string          `json:"image_base64"`
}

// ListProducts returns all products owned by the authenticated user
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	query := database.GetDB().Where("user_id = ?", userID)
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	prometheus.RecordProductOperation("list")
	return c.JSON(http.StatusOK, products)
}

// GetProduct returns a single product within the owner's scope
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	var product model.Product
	if err := database.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&product).Error; err != nil {
		log.Warn("Product not found", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct creates a catalog entry owned by the authenticated user
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Product validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	product := model.Product{
		UserID:         userID,
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Price:          req.Price,
		Stock:          req.Stock,
		Unit:           unit,
		SKU:            req.SKU,
		Specifications: req.Specifications,
		ImageBase64:    req.ImageBase64,
	}
	if err := database.GetDB().Create(&product).Error; err != nil {
		log.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	prometheus.RecordProductOperation("create")
	log.Info("Product created", zap.Uint("product_id", product.ID), zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces the product's catalog fields. Existing
// quotation items are snapshots and are never touched by this.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	var product model.Product
	if err := database.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&product).Error; err != nil {
		log.Warn("Product not found for update", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	product.Stock = req.Stock
	if req.Unit != "" {
		product.Unit = req.Unit
	}
	product.SKU = req.SKU
	product.Specifications = req.Specifications
	product.ImageBase64 = req.ImageBase64

	if err := database.GetDB().Save(&product).Error; err != nil {
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}

	prometheus.RecordProductOperation("update")
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a catalog entry
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	result := database.GetDB().Where("id = ? AND user_id = ?", id, userID).Delete(&model.Product{})
	if result.Error != nil {
		log.Error("Failed to delete product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}
	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}
