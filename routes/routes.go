package routes

import (
	"time"

	"hairbook/handlers"
	"hairbook/middleware"
	"hairbook/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-up, login and the token-bound account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/auth")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/sign-up", hb.SignUpHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("", hb.Authenticate)
		protected.POST("/sign-out", hb.SignOutHandler)
		protected.GET("/get-details", hb.GetDetailsHandler)
	}
}

// RegisterBookingRoutes registers the customer booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/booking", hb.Authenticate, middleware.Authorize(models.RoleCustomer))
	{
		api.POST("/book-haircut", hb.BookHaircutHandler)
		api.PUT("/update-booking", hb.UpdateBookingHandler)
		api.DELETE("/delete-booking", hb.DeleteBookingHandler)
		api.GET("/user-bookings", hb.UserBookingsHandler)
		api.GET("/closest-booking", hb.ClosestBookingHandler)
		api.GET("/get-available-booking-by-day", hb.AvailabilityHandler)
	}
}

// RegisterReviewRoutes registers the customer review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/review", hb.Authenticate, middleware.Authorize(models.RoleCustomer))
	{
		api.POST("/post-review", hb.PostReviewHandler)
		api.PUT("/update-review", hb.UpdateReviewHandler)
		api.DELETE("/delete-review", hb.DeleteReviewHandler)
		api.GET("/get-my-reviews", hb.MyReviewsHandler)
	}
}

// RegisterOwnerRoutes registers shop and service management for owners.
func RegisterOwnerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/owner", hb.Authenticate, middleware.Authorize(models.RoleOwner))
	{
		api.POST("/create-shop", hb.CreateShopHandler)
		api.GET("/get-my-shops", hb.GetMyShopsHandler)
		api.GET("/get-shop", hb.GetMyShopHandler)
		api.PUT("/update-shop", hb.UpdateShopHandler)
		api.DELETE("/delete-shop", hb.DeleteShopHandler)
		api.GET("/get-reviews", hb.OwnerReviewsHandler)
		api.GET("/my-bookings", hb.OwnerBookingsHandler)
		api.GET("/get-closest-booking", hb.OwnerClosestBookingHandler)
		api.DELETE("/delete-booking", hb.OwnerDeleteBookingHandler)
		api.POST("/create-service", hb.CreateServiceHandler)
		api.PUT("/update-service", hb.UpdateServiceHandler)
		api.DELETE("/delete-service", hb.DeleteServiceHandler)
		api.GET("/get-services", hb.OwnerServicesHandler)
	}
}

// RegisterSharedRoutes registers read-only lookups available to both roles.
func RegisterSharedRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/shared", hb.Authenticate, middleware.Authorize(models.RoleOwner, models.RoleCustomer))
	{
		api.GET("/get-all-shops", hb.GetAllShopsHandler)
		api.GET("/get-shop-by-id", hb.GetShopByIDHandler)
		api.GET("/get-service-by-id", hb.GetServiceByIDHandler)
		api.GET("/get-services", hb.GetServicesHandler)
		api.GET("/get-reviews", hb.GetReviewsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterOwnerRoutes(r, hb)
	RegisterSharedRoutes(r, hb)
	RegisterHealthRoute(r)
}
