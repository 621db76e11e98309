package handlers

import (
	"net/http"

	providerRepo "ceremo/database/repository/provider"
	"ceremo/middleware"
	"ceremo/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes provider records and presence state.
type ProviderHandler struct {
	Repo   providerRepo.ProviderRepository
	logger *zap.Logger
}

func NewProviderHandler(repo providerRepo.ProviderRepository, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{Repo: repo, logger: logger}
}

// GetProvider handles GET /api/providers/:id.
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	provider, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// SetAvailabilityStatus handles PUT /api/providers/:id/presence.
func (h *ProviderHandler) SetAvailabilityStatus(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}
	providerID := c.Param("id")
	if actor.Role != models.RoleProvider || actor.ID != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the provider may update presence"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	switch input.Status {
	case models.AvailabilityOnline, models.AvailabilityBusy, models.AvailabilityOffline:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown availability status"})
		return
	}

	if err := h.Repo.SetAvailabilityStatus(c.Request.Context(), providerID, input.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": input.Status})
}
