package controllers

import (
	"net/http"
	"time"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/models"
	"nonprofit-backoffice-api/utils"

	"github.com/gin-gonic/gin"
)

// GetEvents returns events. Public callers see published events only; admin
// views pass all=true.
func GetEvents(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if c.Query("all") != "true" {
		query = query.Where("published = ?", true)
	}
	if c.Query("upcoming") == "true" {
		query = query.Where("starts_at >= ?", time.Now())
	}

	var events []models.Event
	if err := query.Order("starts_at ASC").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}

// GetEvent returns a single event by ID
func GetEvent(c *gin.Context) {
	id := c.Param("id")

	var event models.Event
	if err := config.DB.Where("event_id = ? AND delete_at IS NULL", id).
		First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

type eventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    *time.Time `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at"`
	Published   *bool      `json:"published"`
}

// CreateEvent creates an event (admin only)
func CreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.EndsAt != nil && req.StartsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_at cannot be before starts_at"})
		return
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	now := time.Now()
	event := models.Event{
		Title:       utils.SanitizeInput(req.Title),
		Description: utils.SanitizeInput(req.Description),
		Location:    utils.SanitizeInput(req.Location),
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Published:   published,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := config.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"event":   event,
	})
}

// UpdateEvent updates an event (admin only)
func UpdateEvent(c *gin.Context) {
	id := c.Param("id")

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.Event
	if err := config.DB.Where("event_id = ? AND delete_at IS NULL", id).
		First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if req.EndsAt != nil && req.StartsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_at cannot be before starts_at"})
		return
	}

	now := time.Now()
	event.Title = utils.SanitizeInput(req.Title)
	event.Description = utils.SanitizeInput(req.Description)
	event.Location = utils.SanitizeInput(req.Location)
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	if req.Published != nil {
		event.Published = *req.Published
	}
	event.UpdateAt = &now

	if err := config.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully",
		"event":   event,
	})
}

// DeleteEvent soft-deletes an event (admin only)
func DeleteEvent(c *gin.Context) {
	id := c.Param("id")

	var event models.Event
	if err := config.DB.Where("event_id = ? AND delete_at IS NULL", id).
		First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&event).
		Updates(map[string]interface{}{"delete_at": &now, "update_at": &now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
