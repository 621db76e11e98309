package handlers

import (
	"net/http"

	"ceremo/middleware"
	"ceremo/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes payment linkage over HTTP.
type PaymentHandler struct {
	Service payment.PaymentService
	logger  *zap.Logger
}

func NewPaymentHandler(svc payment.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: svc, logger: logger}
}

// RequestPayment handles POST /api/bookings/:id/payments.
func (h *PaymentHandler) RequestPayment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	var input payment.RequestPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	pay, err := h.Service.RequestPayment(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pay)
}

// VerifyPayment handles POST /api/payments/:id/verify. Called on the
// gateway's return path with the payment-intent reference as proof.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	var input struct {
		GatewayRef string `json:"gatewayRef" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	pay, err := h.Service.VerifyPayment(c.Request.Context(), actor, c.Param("id"), input.GatewayRef)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pay)
}

// ListPayments handles GET /api/bookings/:id/payments.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	payments, err := h.Service.ListForBooking(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
