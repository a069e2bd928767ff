package controllers

import (
	"log"
	"net/http"
	"time"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/models"

	"github.com/gin-gonic/gin"
)

// createNotification records an admin-facing notice. Best-effort.
func createNotification(title, message, notifType string, applicationID *int) {
	notification := models.Notification{
		Title:                title,
		Message:              message,
		Type:                 notifType,
		RelatedApplicationID: applicationID,
		IsRead:               false,
		CreateAt:             time.Now(),
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to create notification: %v", err)
	}
}

// GetNotifications lists notifications, unread first, newest first.
func GetNotifications(c *gin.Context) {
	query := config.DB.Model(&models.Notification{})

	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("is_read ASC, create_at DESC").Limit(100).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	var unread int64
	config.DB.Model(&models.Notification{}).Where("is_read = ?", false).Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")

	var notification models.Notification
	if err := config.DB.Where("notification_id = ?", id).First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&notification).
		Updates(map[string]interface{}{"is_read": true, "update_at": &now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks every unread notification as read.
func MarkAllNotificationsRead(c *gin.Context) {
	now := time.Now()
	if err := config.DB.Model(&models.Notification{}).Where("is_read = ?", false).
		Updates(map[string]interface{}{"is_read": true, "update_at": &now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
