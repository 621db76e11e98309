package routes

import (
	"net/http"
	"time"

	"ceremo/handlers"
	"ceremo/middleware"
	"ceremo/models"
	"ceremo/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the route tree is built from.
type HandlerBundle struct {
	Booking      *handlers.BookingHandler
	Payment      *handlers.PaymentHandler
	Availability *handlers.AvailabilityHandler
	Inquiry      *handlers.InquiryHandler
	Provider     *handlers.ProviderHandler
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(""))
		api.POST("", hb.Booking.CreateBooking)
		api.GET("", hb.Booking.ListBookings)
		api.GET("/:id", hb.Booking.GetBooking)

		api.PUT("/:id/accept", hb.Booking.AcceptBooking)
		api.PUT("/:id/reject", hb.Booking.RejectBooking)
		api.PUT("/:id/cancel", hb.Booking.CancelBooking)

		api.PUT("/:id/complete", hb.Booking.MarkComplete)
		api.PUT("/:id/verify", hb.Booking.VerifyComplete)
		api.PUT("/:id/dispute", hb.Booking.DisputeCompletion)
		api.GET("/:id/completion", hb.Booking.GetCompletionDetails)

		api.POST("/:id/payments", hb.Payment.RequestPayment)
		api.GET("/:id/payments", hb.Payment.ListPayments)
	}
}

// RegisterPaymentRoutes sets up the gateway return-path endpoint.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware(models.RoleCustomer))
		api.POST("/:id/verify", hb.Payment.VerifyPayment)
	}
}

// RegisterProviderRoutes sets up provider lookup, presence and availability
// management endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public: anyone can inspect a provider and their blocked dates.
		api.GET("/:id", hb.Provider.GetProvider)
		api.GET("/:id/availability", hb.Availability.ListBlocks)
		api.GET("/:id/availability/check", hb.Availability.CheckDate)

		// Mutations require a provider session; handlers enforce self-only.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(models.RoleProvider))
		protected.PUT("/:id/presence", hb.Provider.SetAvailabilityStatus)
		protected.POST("/:id/availability", hb.Availability.AddBlock)
		protected.DELETE("/:id/availability/:recordId", hb.Availability.RemoveBlock)
	}
}

// RegisterInquiryRoutes sets up the inquiry conversation endpoints.
func RegisterInquiryRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/inquiries")
	{
		api.Use(middleware.JWTAuthMiddleware(""))
		api.POST("", hb.Inquiry.OpenInquiry)
		api.GET("/:id", hb.Inquiry.GetInquiry)
		api.POST("/:id/convert", hb.Inquiry.ConvertInquiry)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterInquiryRoutes(r, hb)
	RegisterHealthRoute(r)
}
