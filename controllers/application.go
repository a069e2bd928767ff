package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/models"
	"nonprofit-backoffice-api/services"
	"nonprofit-backoffice-api/storage"
	"nonprofit-backoffice-api/utils"

	"github.com/gin-gonic/gin"
)

// objectStore holds the shared attachment store. Tests swap it for a store
// rooted in a temp directory.
var objectStore storage.ObjectStore

func getObjectStore() storage.ObjectStore {
	if objectStore == nil {
		objectStore = storage.NewLocalStoreFromEnv()
	}
	return objectStore
}

const minScholarshipReasonLen = 20

// SubmitApplication handles the public membership/scholarship form,
// including up to 3 attached documents. Nothing is persisted unless every
// field and every file passes validation.
func SubmitApplication(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	getField := func(name string) string {
		values := form.Value[name]
		if len(values) == 0 {
			return ""
		}
		return strings.TrimSpace(values[0])
	}

	applicationType := getField("application_type")
	if applicationType == "" {
		applicationType = models.ApplicationTypeMember
	}
	if !models.IsValidApplicationType(applicationType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "application_type must be member or scholarship"})
		return
	}

	firstName := getField("first_name")
	lastName := getField("last_name")
	if firstName == "" || lastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first_name and last_name are required"})
		return
	}

	email := utils.NormalizeEmail(getField("email"))
	if email == "" || !utils.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	var phone *string
	if p := getField("phone"); p != "" {
		phone = &p
	}

	var reason *string
	if r := utils.SanitizeInput(getField("reason")); r != "" {
		reason = &r
	}
	if applicationType == models.ApplicationTypeScholarship {
		if reason == nil || len(*reason) < minScholarshipReasonLen {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("reason must be at least %d characters for scholarship applications", minScholarshipReasonLen),
			})
			return
		}
	}

	var listingID *int
	if raw := getField("listing_id"); raw != "" {
		var listing models.Listing
		if err := config.DB.Where("listing_id = ? AND delete_at IS NULL", raw).
			First(&listing).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing"})
			return
		}
		if !listing.AcceptsApplications(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Listing is closed for applications"})
			return
		}
		listingID = &listing.ListingID
	}

	// Validate the whole file batch before storing anything.
	files := form.File["files"]
	policy := services.DefaultAttachmentPolicy()
	if err := policy.ValidateFiles(files); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attachments, err := services.StoreAttachments(getObjectStore(), files)
	if err != nil {
		log.Printf("attachment store failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachments"})
		return
	}

	now := time.Now()
	application := models.Application{
		ApplicationType: applicationType,
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		Phone:           phone,
		Reason:          reason,
		ListingID:       listingID,
		Status:          models.StatusPending,
		SubmittedAt:     &now,
		CreateAt:        &now,
		UpdateAt:        &now,
		Attachments:     attachments,
	}

	// Record and attachment rows go in together; a failed insert leaves no
	// stored objects behind.
	if err := config.DB.Create(&application).Error; err != nil {
		for _, a := range attachments {
			if rerr := getObjectStore().Remove(a.StoredFilename); rerr != nil {
				log.Printf("failed to remove orphaned attachment %s: %v", a.StoredFilename, rerr)
			}
		}
		log.Printf("application insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	// Best-effort side effects; failures are logged and never surfaced.
	go sendApplicationConfirmation(application)
	createNotification(
		"New application received",
		fmt.Sprintf("%s %s submitted a %s application", firstName, lastName, applicationType),
		"info",
		&application.ApplicationID,
	)

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Application submitted successfully",
		"application":    application,
		"document_count": len(application.Attachments),
	})
}

// GetApplications returns applications filtered by type, status and
// submission date range, newest first.
func GetApplications(c *gin.Context) {
	query := config.DB.Preload("Attachments").Preload("Listing").
		Where("applications.delete_at IS NULL")

	if appType := c.Query("type"); appType != "" {
		if !models.IsValidApplicationType(appType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application type filter"})
			return
		}
		query = query.Where("application_type = ?", appType)
	}

	if status := c.Query("status"); status != "" {
		if !models.IsValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	if startDate := c.Query("start_date"); startDate != "" {
		start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		query = query.Where("submitted_at >= ?", start)
	}

	if endDate := c.Query("end_date"); endDate != "" {
		end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		// Inclusive of the whole end day.
		query = query.Where("submitted_at < ?", end.AddDate(0, 0, 1))
	}

	var applications []models.Application
	if err := query.Order("submitted_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// GetApplication returns single application by ID
func GetApplication(c *gin.Context) {
	id := c.Param("id")

	var application models.Application
	if err := config.DB.Preload("Attachments").Preload("Listing").
		Where("application_id = ? AND applications.delete_at IS NULL", id).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": application,
	})
}

// UpdateApplication lets a reviewer set the status and/or notes. Transitions
// are deliberately unrestricted: any status may move to any other, matching
// the review workflow the admin dashboard expects.
func UpdateApplication(c *gin.Context) {
	id := c.Param("id")

	type UpdateApplicationRequest struct {
		Status *string `json:"status"`
		Notes  *string `json:"notes"`
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status == nil && req.Notes == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if req.Status != nil && !models.IsValidStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid status %q", *req.Status),
		})
		return
	}

	var application models.Application
	if err := config.DB.Where("application_id = ? AND delete_at IS NULL", id).
		First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	previousStatus := application.Status
	now := time.Now()
	updates := map[string]interface{}{"update_at": &now}
	if req.Status != nil {
		updates["status"] = *req.Status
		application.Status = *req.Status
	}
	if req.Notes != nil {
		notes := utils.SanitizeInput(*req.Notes)
		updates["notes"] = &notes
		application.Notes = &notes
	}

	if err := config.DB.Model(&models.Application{}).
		Where("application_id = ?", application.ApplicationID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}
	application.UpdateAt = &now

	// Approving a membership application triggers the welcome email;
	// scholarship decisions are communicated offline.
	if application.ApplicationType == models.ApplicationTypeMember &&
		application.Status == models.StatusApproved && previousStatus != models.StatusApproved {
		go sendMembershipApproved(application)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application updated successfully",
		"application": application,
	})
}
