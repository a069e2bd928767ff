package controllers

import (
	"net/http"
	"time"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/models"
	"nonprofit-backoffice-api/utils"

	"github.com/gin-gonic/gin"
)

// GetListings returns scholarship listings. Public callers see open listings
// only; pass all=true (admin views) to include closed ones.
func GetListings(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if c.Query("all") != "true" {
		query = query.Where("is_open = ?", true)
	}

	var listings []models.Listing
	if err := query.Order("deadline ASC").Find(&listings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
		"total":    len(listings),
	})
}

// GetListing returns a single listing by ID
func GetListing(c *gin.Context) {
	id := c.Param("id")

	var listing models.Listing
	if err := config.DB.Where("listing_id = ? AND delete_at IS NULL", id).
		First(&listing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

type listingRequest struct {
	ListingName string     `json:"listing_name" binding:"required"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Deadline    *time.Time `json:"deadline"`
	IsOpen      *bool      `json:"is_open"`
}

// CreateListing creates a scholarship listing (admin only)
func CreateListing(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isOpen := true
	if req.IsOpen != nil {
		isOpen = *req.IsOpen
	}

	now := time.Now()
	listing := models.Listing{
		ListingName: utils.SanitizeInput(req.ListingName),
		Description: utils.SanitizeInput(req.Description),
		Amount:      req.Amount,
		Deadline:    req.Deadline,
		IsOpen:      isOpen,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := config.DB.Create(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Listing created successfully",
		"listing": listing,
	})
}

// UpdateListing updates a scholarship listing (admin only)
func UpdateListing(c *gin.Context) {
	id := c.Param("id")

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var listing models.Listing
	if err := config.DB.Where("listing_id = ? AND delete_at IS NULL", id).
		First(&listing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	now := time.Now()
	listing.ListingName = utils.SanitizeInput(req.ListingName)
	listing.Description = utils.SanitizeInput(req.Description)
	listing.Amount = req.Amount
	listing.Deadline = req.Deadline
	if req.IsOpen != nil {
		listing.IsOpen = *req.IsOpen
	}
	listing.UpdateAt = &now

	if err := config.DB.Save(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Listing updated successfully",
		"listing": listing,
	})
}

// DeleteListing soft-deletes a listing (admin only). Applications that
// reference it keep their reference.
func DeleteListing(c *gin.Context) {
	id := c.Param("id")

	var listing models.Listing
	if err := config.DB.Where("listing_id = ? AND delete_at IS NULL", id).
		First(&listing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&listing).
		Updates(map[string]interface{}{"delete_at": &now, "update_at": &now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
}
