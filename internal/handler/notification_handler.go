package handler

import (
	"net/http"

	"github.com/agriswayam/go-notification-service/internal/domain"
	"github.com/agriswayam/go-notification-service/internal/shared/errors"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
	"github.com/agriswayam/go-notification-service/internal/store"
	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the store's operation set to UI collaborators
// (the notification center and settings panel).
type NotificationHandler struct {
	store *store.Store
	log   *logger.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(store *store.Store, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		store: store,
		log:   log,
	}
}

// List returns notifications, optionally filtered by category, type or
// unread-only.
func (h *NotificationHandler) List(c *gin.Context) {
	var notifications []*domain.Notification

	switch {
	case c.Query("category") != "":
		notifications = h.store.ByCategory(domain.Category(c.Query("category")))
	case c.Query("type") != "":
		notifications = h.store.ByType(domain.NotificationType(c.Query("type")))
	case c.Query("unread") == "true":
		notifications = h.store.Unread()
	default:
		notifications = h.store.Notifications()
	}

	if notifications == nil {
		notifications = []*domain.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  h.store.UnreadCount(),
	})
}

// GetState returns the full store snapshot.
func (h *NotificationHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State())
}

// triggerRequest is the body of an externally-triggered notification.
type triggerRequest struct {
	Type     domain.NotificationType `json:"type" binding:"required"`
	Title    string                  `json:"title"`
	Message  string                  `json:"message"`
	Priority domain.Priority         `json:"priority"`
	Category domain.Category         `json:"category"`
	Metadata map[string]any          `json:"metadata"`
}

// Trigger adds a notification from an external collaborator. Whether the
// notification survived the preference filter is deliberately not reported.
func (h *NotificationHandler) Trigger(c *gin.Context) {
	var req triggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("Invalid request", err))
		return
	}

	if _, ok := domain.TemplateFor(req.Type); !ok {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("Unknown notification type", nil))
		return
	}
	// A typo here would otherwise fall through to a false map lookup in the
	// filter and vanish without a trace.
	if req.Priority != "" && !req.Priority.Valid() {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("Unknown priority", nil))
		return
	}
	if req.Category != "" && !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("Unknown category", nil))
		return
	}

	h.store.Add(domain.NotificationRequest{
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		Options: &domain.NotificationOptions{
			Priority: req.Priority,
			Category: req.Category,
			Metadata: req.Metadata,
		},
	})

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Notification accepted",
	})
}

// MarkAsRead marks a single notification read.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("id is required", nil))
		return
	}

	// Unknown ids are a silent no-op, matching the store's semantics.
	h.store.MarkAsRead(id)
	c.JSON(http.StatusOK, gin.H{
		"unread_count": h.store.UnreadCount(),
	})
}

// MarkAllAsRead marks every notification read.
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	h.store.MarkAllAsRead()
	c.JSON(http.StatusOK, gin.H{
		"unread_count": 0,
	})
}

// Delete removes a single notification.
func (h *NotificationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, errors.NewValidationError("id is required", nil))
		return
	}

	h.store.Delete(id)
	c.JSON(http.StatusOK, gin.H{
		"unread_count": h.store.UnreadCount(),
	})
}

// ClearAll empties the notification list.
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	h.store.ClearAll()
	c.JSON(http.StatusOK, gin.H{
		"message": "All notifications cleared",
	})
}

// RequestPermission runs the browser permission prompt.
func (h *NotificationHandler) RequestPermission(c *gin.Context) {
	granted, err := h.store.RequestPermission(c.Request.Context())
	if err != nil {
		h.log.Error("Permission request failed", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"granted": granted,
	})
}
