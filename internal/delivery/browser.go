// Package delivery dispatches notifications to the user's browser through a
// platform notification primitive. Delivery is fire-and-forget: the store
// never waits on it and never observes its failures.
package delivery

import (
	"context"
	"time"

	"github.com/agriswayam/go-notification-service/internal/domain"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
)

// PermissionState mirrors the platform notification permission states.
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionPrompt  PermissionState = "prompt"
)

// ShowOptions describes a native notification popup.
type ShowOptions struct {
	Title              string
	Body               string
	Icon               string
	Tag                string
	RequireInteraction bool
	Silent             bool
}

// Handle is a live native notification. OnClick registers the click callback;
// the channel wires it to focus the application window and close the popup.
type Handle interface {
	Close()
	OnClick(func())
}

// Notifier is the platform notification primitive the channel drives.
type Notifier interface {
	Show(opts ShowOptions) (Handle, error)
	PermissionState() PermissionState
	RequestPermission(ctx context.Context) (bool, error)
	// FocusWindow brings the application window to the foreground.
	FocusWindow()
}

// autoCloseAfter is how long non-urgent popups stay up before closing.
const autoCloseAfter = 5 * time.Second

// Channel gates and dispatches browser notifications.
type Channel struct {
	notifier Notifier
	log      *logger.Logger
}

// NewChannel creates a browser delivery channel over the given notifier.
func NewChannel(notifier Notifier, log *logger.Logger) *Channel {
	return &Channel{notifier: notifier, log: log}
}

// RequestPermission runs the platform permission prompt and reports whether
// permission ended up granted.
func (c *Channel) RequestPermission(ctx context.Context) (bool, error) {
	switch c.notifier.PermissionState() {
	case PermissionGranted:
		return true, nil
	case PermissionDenied:
		c.log.Warn("Browser notification permission denied")
		return false, nil
	}
	return c.notifier.RequestPermission(ctx)
}

// Dispatch shows the notification as a native popup. No-op when the browser
// channel is disabled in preferences or permission is not granted. Urgent
// notifications stay up until dismissed; low-priority ones are silent;
// everything below urgent auto-closes after a short interval. Clicking the
// popup focuses the application window and closes it.
func (c *Channel) Dispatch(n *domain.Notification, prefs domain.NotificationPreferences) {
	if !prefs.Channels.Browser {
		return
	}
	if c.notifier.PermissionState() != PermissionGranted {
		return
	}

	handle, err := c.notifier.Show(ShowOptions{
		Title:              n.Title,
		Body:               n.Message,
		Tag:                n.ID,
		RequireInteraction: n.Priority == domain.PriorityUrgent,
		Silent:             n.Priority == domain.PriorityLow,
	})
	if err != nil {
		c.log.Error("Failed to show browser notification", "error", err, "id", n.ID)
		return
	}

	if n.Priority != domain.PriorityUrgent {
		time.AfterFunc(autoCloseAfter, handle.Close)
	}

	handle.OnClick(func() {
		c.notifier.FocusWindow()
		handle.Close()
	})
}
