package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ceremo/middleware"
	"ceremo/models"
	"ceremo/services/availability"
	"ceremo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes availability rules and block management.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
	logger  *zap.Logger
}

func NewAvailabilityHandler(svc availability.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, logger: logger}
}

// ListBlocks handles GET /api/providers/:id/availability.
func (h *AvailabilityHandler) ListBlocks(c *gin.Context) {
	records, err := h.Service.ListBlocks(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// AddBlock handles POST /api/providers/:id/availability. Only the provider
// may manage their own blocks.
func (h *AvailabilityHandler) AddBlock(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	providerID := c.Param("id")
	if actor.Role != models.RoleProvider || actor.ID != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the provider may manage availability"})
		return
	}

	var input struct {
		SpecificDate *string `json:"specificDate,omitempty"`
		DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
		Reason       string  `json:"reason,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	record := &models.AvailabilityRecord{
		ProviderID:   providerID,
		SpecificDate: input.SpecificDate,
		DayOfWeek:    input.DayOfWeek,
		Reason:       input.Reason,
	}
	if err := h.Service.AddBlock(c.Request.Context(), record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid availability block", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, record)
}

// RemoveBlock handles DELETE /api/providers/:id/availability/:recordId.
func (h *AvailabilityHandler) RemoveBlock(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	providerID := c.Param("id")
	if actor.Role != models.RoleProvider || actor.ID != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the provider may manage availability"})
		return
	}

	if err := h.Service.RemoveBlock(c.Request.Context(), c.Param("recordId"), providerID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "availability record not found", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CheckDate handles GET /api/providers/:id/availability/check.
// Accepts either ?date=YYYY-MM-DD or ?start=...&end=... for ranges.
func (h *AvailabilityHandler) CheckDate(c *gin.Context) {
	providerID := c.Param("id")

	if date := c.Query("date"); date != "" {
		bookable, err := h.Service.IsDateBookable(c.Request.Context(), providerID, date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"date": date, "bookable": bookable})
		return
	}

	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide ?date= or ?start=&end="})
		return
	}
	dates, err := expandRange(start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range", "details": err.Error()})
		return
	}

	blocked, err := h.Service.UnbookableDates(c.Request.Context(), providerID, dates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookable":     len(blocked) == 0,
		"blockedDates": blocked,
	})
}

func expandRange(start, end string) ([]string, error) {
	s, err := time.Parse(utils.DateLayout, strings.TrimSpace(start))
	if err != nil {
		return nil, err
	}
	e, err := time.Parse(utils.DateLayout, strings.TrimSpace(end))
	if err != nil {
		return nil, err
	}
	if e.Before(s) {
		return nil, errors.New("end precedes start")
	}
	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(utils.DateLayout))
	}
	return dates, nil
}
