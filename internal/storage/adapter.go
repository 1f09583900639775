package storage

import (
	"context"
	"encoding/json"

	"github.com/agriswayam/go-notification-service/internal/domain"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
)

const (
	notificationsKey = "agriswayam:notifications"
	preferencesKey   = "agriswayam:preferences"
)

// Adapter serializes the notification list and preferences to the underlying
// KV store. Writes are best-effort: failures are logged and swallowed so a
// full or unavailable store never crashes the service. Reads never fail
// either; anything unreadable degrades to an empty list or the defaults.
type Adapter struct {
	kv  KV
	log *logger.Logger
}

// NewAdapter creates an adapter over the given KV store.
func NewAdapter(kv KV, log *logger.Logger) *Adapter {
	return &Adapter{kv: kv, log: log}
}

// SaveNotifications persists the full notification list.
func (a *Adapter) SaveNotifications(ctx context.Context, notifications []*domain.Notification) {
	data, err := json.Marshal(notifications)
	if err != nil {
		a.log.Error("Failed to encode notifications", "error", err)
		return
	}
	if err := a.kv.Set(ctx, notificationsKey, string(data)); err != nil {
		a.log.Error("Failed to save notifications", "error", err)
	}
}

// LoadNotifications returns the persisted list, or an empty list when nothing
// was saved or the saved payload cannot be decoded. Timestamps revive from
// their RFC 3339 form during decoding.
func (a *Adapter) LoadNotifications(ctx context.Context) []*domain.Notification {
	raw, ok, err := a.kv.Get(ctx, notificationsKey)
	if err != nil {
		a.log.Error("Failed to load notifications", "error", err)
		return []*domain.Notification{}
	}
	if !ok {
		return []*domain.Notification{}
	}

	var notifications []*domain.Notification
	if err := json.Unmarshal([]byte(raw), &notifications); err != nil {
		a.log.Warn("Discarding unreadable notification data", "error", err)
		return []*domain.Notification{}
	}
	if notifications == nil {
		return []*domain.Notification{}
	}
	return notifications
}

// SavePreferences persists the preference set.
func (a *Adapter) SavePreferences(ctx context.Context, prefs domain.NotificationPreferences) {
	data, err := json.Marshal(prefs)
	if err != nil {
		a.log.Error("Failed to encode preferences", "error", err)
		return
	}
	if err := a.kv.Set(ctx, preferencesKey, string(data)); err != nil {
		a.log.Error("Failed to save preferences", "error", err)
	}
}

// LoadPreferences returns the persisted preferences deep-merged over the
// defaults, so enum keys introduced after the user's last save still exist.
// Unreadable or missing data yields the defaults outright.
func (a *Adapter) LoadPreferences(ctx context.Context) domain.NotificationPreferences {
	prefs := domain.DefaultPreferences()

	raw, ok, err := a.kv.Get(ctx, preferencesKey)
	if err != nil {
		a.log.Error("Failed to load preferences", "error", err)
		return prefs
	}
	if !ok {
		return prefs
	}

	// Unmarshaling over the populated default value merges saved keys into the
	// default maps instead of replacing them, which is exactly the
	// default-first deep merge we need for partial legacy saves.
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		a.log.Warn("Discarding unreadable preference data", "error", err)
		return domain.DefaultPreferences()
	}

	prefs.EnsurePopulated()
	return prefs
}
