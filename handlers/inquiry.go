package handlers

import (
	"net/http"

	"ceremo/middleware"
	"ceremo/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InquiryHandler exposes pre-booking inquiry conversations and their
// promotion into bookings.
type InquiryHandler struct {
	Service booking.BookingService
	logger  *zap.Logger
}

func NewInquiryHandler(svc booking.BookingService, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{Service: svc, logger: logger}
}

// OpenInquiry handles POST /api/inquiries.
func (h *InquiryHandler) OpenInquiry(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	var input struct {
		ProviderID string `json:"providerId" binding:"required"`
		Subject    string `json:"subject,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	conversation, err := h.Service.OpenInquiry(c.Request.Context(), actor, input.ProviderID, input.Subject)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conversation)
}

// GetInquiry handles GET /api/inquiries/:id.
func (h *InquiryHandler) GetInquiry(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	conversation, err := h.Service.GetInquiry(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversation)
}

// ConvertInquiry handles POST /api/inquiries/:id/convert.
func (h *InquiryHandler) ConvertInquiry(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Service.ConvertInquiryToBooking(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
