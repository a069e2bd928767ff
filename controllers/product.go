package controllers

import (
	"net/http"
	"time"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/models"
	"nonprofit-backoffice-api/utils"

	"github.com/gin-gonic/gin"
)

// GetProducts returns store products. Public callers see in-stock products
// only; admin views pass all=true.
func GetProducts(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if c.Query("all") != "true" {
		query = query.Where("in_stock = ?", true)
	}

	var products []models.Product
	if err := query.Order("product_name ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// GetProduct returns a single product by ID
func GetProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := config.DB.Where("product_id = ? AND delete_at IS NULL", id).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

type productRequest struct {
	ProductName string  `json:"product_name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    *string `json:"image_url"`
	InStock     *bool   `json:"in_stock"`
}

// CreateProduct creates a store product (admin only)
func CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	now := time.Now()
	product := models.Product{
		ProductName: utils.SanitizeInput(req.ProductName),
		Description: utils.SanitizeInput(req.Description),
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		InStock:     inStock,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct updates a store product (admin only)
func UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := config.DB.Where("product_id = ? AND delete_at IS NULL", id).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	now := time.Now()
	product.ProductName = utils.SanitizeInput(req.ProductName)
	product.Description = utils.SanitizeInput(req.Description)
	product.Price = req.Price
	product.ImageURL = req.ImageURL
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	product.UpdateAt = &now

	if err := config.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct soft-deletes a product (admin only)
func DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := config.DB.Where("product_id = ? AND delete_at IS NULL", id).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&product).
		Updates(map[string]interface{}{"delete_at": &now, "update_at": &now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
