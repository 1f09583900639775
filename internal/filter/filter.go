// Package filter decides whether a notification is visible under a given
// preference set. Decisions are pure functions of the notification, the
// preferences and the evaluation time.
package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/agriswayam/go-notification-service/internal/domain"
)

// Reason labels why a notification was suppressed.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonDisabled   Reason = "disabled"
	ReasonCategory   Reason = "category"
	ReasonType       Reason = "type"
	ReasonPriority   Reason = "priority"
	ReasonQuietHours Reason = "quiet_hours"
	ReasonExpired    Reason = "expired"
)

// ShouldShow reports whether the notification passes every preference gate at
// the given time.
func ShouldShow(n *domain.Notification, prefs domain.NotificationPreferences, now time.Time) bool {
	ok, _ := Evaluate(n, prefs, now)
	return ok
}

// Evaluate runs the preference gates in order and short-circuits on the first
// failure, returning the suppression reason. Gate order: global switch,
// category, type, priority, quiet hours, expiry.
func Evaluate(n *domain.Notification, prefs domain.NotificationPreferences, now time.Time) (bool, Reason) {
	if !prefs.Enabled {
		return false, ReasonDisabled
	}
	if !prefs.Categories[n.Category] {
		return false, ReasonCategory
	}
	if !prefs.Types[n.Type] {
		return false, ReasonType
	}
	if !prefs.Priority[n.Priority] {
		return false, ReasonPriority
	}
	if inQuietHours(prefs.QuietHours, now) && n.Priority != domain.PriorityUrgent {
		return false, ReasonQuietHours
	}
	if n.Expired(now) {
		return false, ReasonExpired
	}
	return true, ReasonNone
}

// inQuietHours reports whether now falls inside the configured window.
// A window with start > end wraps past midnight (22:00-06:00 covers the late
// evening and early morning). Malformed HH:MM values fail open: the window is
// treated as inactive so notifications are not silently lost to a bad setting.
func inQuietHours(qh domain.QuietHours, now time.Time) bool {
	if !qh.Enabled || qh.Start == "" || qh.End == "" {
		return false
	}

	start, err := parseMinuteOfDay(qh.Start)
	if err != nil {
		return false
	}
	end, err := parseMinuteOfDay(qh.End)
	if err != nil {
		return false
	}

	current := now.Hour()*60 + now.Minute()

	if start <= end {
		return current >= start && current <= end
	}
	// Overnight window.
	return current >= start || current <= end
}

// parseMinuteOfDay converts an "HH:MM" string to minutes since midnight.
func parseMinuteOfDay(s string) (int, error) {
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, strconv.ErrSyntax
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, strconv.ErrRange
	}
	return h*60 + m, nil
}
