package controllers

import (
	"net/http"
	"time"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/models"
	"nonprofit-backoffice-api/utils"

	"github.com/gin-gonic/gin"
)

type contactRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Subject   string `json:"subject" binding:"required,max=255"`
	Body      string `json:"body" binding:"required,min=10,max=5000"`
}

// CreateContactMessage handles the public contact form.
func CreateContactMessage(c *gin.Context) {
	var req contactRequest
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
	message := models.ContactMessage{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Subject:   utils.SanitizeInput(req.Subject),
		Body:      utils.SanitizeInput(req.Body),
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully"})
}

// GetContactMessages lists contact messages for the admin inbox.
func GetContactMessages(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var messages []models.ContactMessage
	if err := query.Order("create_at DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}

// MarkContactMessageRead marks one contact message as read.
func MarkContactMessageRead(c *gin.Context) {
	id := c.Param("id")

	var message models.ContactMessage
	if err := config.DB.Where("message_id = ? AND delete_at IS NULL", id).
		First(&message).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&message).
		Updates(map[string]interface{}{"is_read": true, "update_at": &now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}
