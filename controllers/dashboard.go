package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/models"

	"github.com/gin-gonic/gin"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 60 * time.Second
)

// GetDashboardStats returns admin dashboard statistics. Results are cached
// in redis for a minute when a client is configured.
func GetDashboardStats(c *gin.Context) {
	if config.RDB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if cached, err := config.RDB.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var stats map[string]interface{}
			if err := json.Unmarshal(cached, &stats); err == nil {
				c.JSON(http.StatusOK, gin.H{"stats": stats, "cached": true})
				return
			}
		}
	}

	stats := collectDashboardStats()

	if config.RDB != nil {
		if payload, err := json.Marshal(stats); err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			config.RDB.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
		}
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func collectDashboardStats() map[string]interface{} {
	stats := make(map[string]interface{})

	// Applications by status and type
	applicationStats := make(map[string]int64)
	for _, status := range []string{
		models.StatusPending, models.StatusUnderReview,
		models.StatusApproved, models.StatusRejected,
	} {
		var count int64
		config.DB.Model(&models.Application{}).
			Where("status = ? AND delete_at IS NULL", status).Count(&count)
		applicationStats[status] = count
	}
	stats["applications_by_status"] = applicationStats

	typeStats := make(map[string]int64)
	for _, appType := range []string{models.ApplicationTypeMember, models.ApplicationTypeScholarship} {
		var count int64
		config.DB.Model(&models.Application{}).
			Where("application_type = ? AND delete_at IS NULL", appType).Count(&count)
		typeStats[appType] = count
	}
	stats["applications_by_type"] = typeStats

	// Donations this calendar month
	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	var donationTotal struct {
		Count int64   `json:"count"`
		Sum   float64 `json:"sum"`
	}
	config.DB.Model(&models.Donation{}).
		Where("donated_at >= ? AND delete_at IS NULL", monthStart).
		Count(&donationTotal.Count)
	config.DB.Model(&models.Donation{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("donated_at >= ? AND delete_at IS NULL", monthStart).
		Scan(&donationTotal.Sum)
	stats["donations_this_month"] = donationTotal

	// Open orders
	var pendingOrders int64
	config.DB.Model(&models.Order{}).
		Where("status = ? AND delete_at IS NULL", models.OrderStatusPending).
		Count(&pendingOrders)
	stats["pending_orders"] = pendingOrders

	// Unread contact messages
	var unreadMessages int64
	config.DB.Model(&models.ContactMessage{}).
		Where("is_read = ? AND delete_at IS NULL", false).
		Count(&unreadMessages)
	stats["unread_messages"] = unreadMessages

	stats["current_date"] = time.Now().Format("2006-01-02")
	return stats
}
