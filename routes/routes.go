package routes

import (
	"nonprofit-backoffice-api/controllers"
	"nonprofit-backoffice-api/middleware"
	"nonprofit-backoffice-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Nonprofit Back-Office API is running",
				})
			})

			// Public site content
			public.GET("/listings", controllers.GetListings)
			public.GET("/listings/:id", controllers.GetListing)
			public.GET("/events", controllers.GetEvents)
			public.GET("/events/:id", controllers.GetEvent)
			public.GET("/products", controllers.GetProducts)
			public.GET("/products/:id", controllers.GetProduct)

			// Public forms
			public.POST("/applications", controllers.SubmitApplication)
			public.POST("/orders", controllers.CreateOrder)
			public.POST("/donations", controllers.CreateDonation)
			public.POST("/contact", controllers.CreateContactMessage)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/refresh", controllers.RefreshToken)
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Application review (staff and admin)
			applications := protected.Group("/applications")
			{
				applications.GET("", controllers.GetApplications)
				applications.GET("/:id", controllers.GetApplication)
				applications.PUT("/:id",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.UpdateApplication)
			}

			// Content management (admin only)
			admin := protected.Group("")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/listings", controllers.CreateListing)
				admin.PUT("/listings/:id", controllers.UpdateListing)
				admin.DELETE("/listings/:id", controllers.DeleteListing)

				admin.POST("/events", controllers.CreateEvent)
				admin.PUT("/events/:id", controllers.UpdateEvent)
				admin.DELETE("/events/:id", controllers.DeleteEvent)

				admin.POST("/products", controllers.CreateProduct)
				admin.PUT("/products/:id", controllers.UpdateProduct)
				admin.DELETE("/products/:id", controllers.DeleteProduct)

				admin.GET("/orders", controllers.GetOrders)
				admin.GET("/orders/:id", controllers.GetOrder)
				admin.PUT("/orders/:id", controllers.UpdateOrderStatus)

				admin.GET("/donations", controllers.GetDonations)

				admin.GET("/contact-messages", controllers.GetContactMessages)
				admin.PUT("/contact-messages/:id/read", controllers.MarkContactMessageRead)
			}

			// Notifications (staff and admin)
			notifications := protected.Group("/notifications")
			notifications.Use(middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			dashboard.Use(middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
			}
		}
	}
}
