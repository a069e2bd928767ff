package controllers

import (
	"net/http"
	"time"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/models"
	"nonprofit-backoffice-api/utils"

	"github.com/gin-gonic/gin"
)

type createDonationRequest struct {
	FirstName  string  `json:"first_name" binding:"required"`
	LastName   string  `json:"last_name" binding:"required"`
	Email      string  `json:"email" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Message    *string `json:"message"`
	PaymentRef *string `json:"payment_ref"`
}

// CreateDonation records a donation after the payment collaborator redirects
// back. The receipt email is best-effort.
func CreateDonation(c *gin.Context) {
	var req createDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := utils.NormalizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	var message *string
	if req.Message != nil {
		if m := utils.SanitizeInput(*req.Message); m != "" {
			message = &m
		}
	}

	now := time.Now()
	donation := models.Donation{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      email,
		Amount:     req.Amount,
		Message:    message,
		PaymentRef: req.PaymentRef,
		DonatedAt:  &now,
		CreateAt:   &now,
		UpdateAt:   &now,
	}

	if err := config.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record donation"})
		return
	}

	go sendDonationReceipt(donation)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Thank you for your donation",
		"donation": donation,
	})
}

// GetDonations lists donations for the admin dashboard, newest first, with
// optional date-range filters on donated_at.
func GetDonations(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")

	if startDate := c.Query("start_date"); startDate != "" {
		start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		query = query.Where("donated_at >= ?", start)
	}

	if endDate := c.Query("end_date"); endDate != "" {
		end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		query = query.Where("donated_at < ?", end.AddDate(0, 0, 1))
	}

	var donations []models.Donation
	if err := query.Order("donated_at DESC").Find(&donations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donations"})
		return
	}

	var total float64
	for _, d := range donations {
		total += d.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"donations":    donations,
		"total":        len(donations),
		"total_amount": total,
	})
}
