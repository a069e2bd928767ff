package controllers

import (
	"fmt"
	"net/http"
	"time"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/models"
	"nonprofit-backoffice-api/utils"

	"github.com/gin-gonic/gin"
)

type orderItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}

type createOrderRequest struct {
	FirstName  string             `json:"first_name" binding:"required"`
	LastName   string             `json:"last_name" binding:"required"`
	Email      string             `json:"email" binding:"required"`
	Address    string             `json:"address" binding:"required"`
	PaymentRef *string            `json:"payment_ref"`
	Items      []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder records a store purchase. Line totals are computed from the
// stored product prices, never from the client payload.
func CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := utils.NormalizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	now := time.Now()
	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		var product models.Product
		if err := config.DB.Where("product_id = ? AND delete_at IS NULL", item.ProductID).
			First(&product).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown product %d", item.ProductID)})
			return
		}
		if !product.InStock {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Product %q is out of stock", product.ProductName)})
			return
		}

		total += product.Price * float64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID: product.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			CreateAt:  &now,
			UpdateAt:  &now,
		})
	}

	order := models.Order{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      email,
		Address:    utils.SanitizeInput(req.Address),
		Total:      total,
		Status:     models.OrderStatusPending,
		PaymentRef: req.PaymentRef,
		CreateAt:   &now,
		UpdateAt:   &now,
		Items:      items,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// GetOrders lists orders for the admin dashboard, newest first.
func GetOrders(c *gin.Context) {
	query := config.DB.Preload("Items").Preload("Items.Product").
		Where("orders.delete_at IS NULL")

	if status := c.Query("status"); status != "" {
		if !models.IsValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("create_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// GetOrder returns a single order by ID (admin only)
func GetOrder(c *gin.Context) {
	id := c.Param("id")

	var order models.Order
	if err := config.DB.Preload("Items").Preload("Items.Product").
		Where("order_id = ? AND orders.delete_at IS NULL", id).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus moves an order between pending/paid/shipped/cancelled.
func UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	type updateOrderRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.IsValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid status %q", req.Status)})
		return
	}

	var order models.Order
	if err := config.DB.Where("order_id = ? AND delete_at IS NULL", id).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&order).
		Updates(map[string]interface{}{"status": req.Status, "update_at": &now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	order.Status = req.Status
	order.UpdateAt = &now

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"order":   order,
	})
}
