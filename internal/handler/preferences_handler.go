package handler

import (
	"net/http"

	"github.com/agriswayam/go-notification-service/internal/domain"
	"github.com/agriswayam/go-notification-service/internal/shared/errors"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
	"github.com/agriswayam/go-notification-service/internal/store"
	"github.com/gin-gonic/gin"
)

// PreferencesHandler handles notification preference requests.
type PreferencesHandler struct {
	store *store.Store
	log   *logger.Logger
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(store *store.Store, log *logger.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		store: store,
		log:   log,
	}
}

// GetPreferences returns the current preference set.
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Preferences())
}

// UpdatePreferences applies a partial preference update. Map fields merge key
// by key, so toggling one category leaves the others alone.
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var patch domain.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("Invalid request", err))
		return
	}

	prefs := h.store.UpdatePreferences(patch)

	c.JSON(http.StatusOK, gin.H{
		"message": "Preferences updated successfully",
		"data":    prefs,
	})
}
