// Package store holds the notification state machine: the ordered
// notification list, the preference set, the unread counter and the browser
// permission flag. All mutations go through Store methods, which keep the
// unread counter exact and persist after every change.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/agriswayam/go-notification-service/internal/domain"
	"github.com/agriswayam/go-notification-service/internal/filter"
	"github.com/agriswayam/go-notification-service/internal/metrics"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
	"github.com/agriswayam/go-notification-service/internal/storage"
)

// Channel is the delivery sink the store pushes accepted notifications to.
type Channel interface {
	Dispatch(n *domain.Notification, prefs domain.NotificationPreferences)
	RequestPermission(ctx context.Context) (bool, error)
}

// State is a read-only snapshot of the store, exposed to UI collaborators.
type State struct {
	Notifications     []*domain.Notification          `json:"notifications"`
	Preferences       domain.NotificationPreferences  `json:"preferences"`
	UnreadCount       int                             `json:"unread_count"`
	PermissionGranted bool                            `json:"permission_granted"`
}

// persistTimeout bounds every background write to the KV store.
const persistTimeout = 5 * time.Second

// Store is the central notification state machine. Safe for concurrent use;
// every operation completes synchronously. Persistence and delivery are
// best-effort side effects that run in the background, so a slow or hung
// KV store or browser gateway never stalls a Store operation.
type Store struct {
	mu sync.RWMutex

	notifications     []*domain.Notification // newest first
	prefs             domain.NotificationPreferences
	unreadCount       int
	permissionGranted bool

	adapter *storage.Adapter
	channel Channel
	log     *logger.Logger
	now     func() time.Time

	persistWG sync.WaitGroup
	persistMu sync.Mutex // serializes background writes, guards the written markers
	// Snapshot sequence numbers, assigned under mu; the written markers record
	// the newest snapshot persisted so a stale write can never land last.
	notifSeq     uint64
	notifWritten uint64
	prefsSeq     uint64
	prefsWritten uint64
}

// New creates a store, loading notifications and preferences from the
// adapter. The unread count is derived from the loaded list once here; every
// later mutation maintains it incrementally.
func New(adapter *storage.Adapter, channel Channel, log *logger.Logger) *Store {
	s := &Store{
		adapter: adapter,
		channel: channel,
		log:     log,
		now:     time.Now,
	}

	ctx := context.Background()
	s.notifications = adapter.LoadNotifications(ctx)
	s.prefs = adapter.LoadPreferences(ctx)

	for _, n := range s.notifications {
		if !n.Read {
			s.unreadCount++
		}
	}
	metrics.UnreadNotifications.Set(float64(s.unreadCount))

	log.Info("Notification store loaded",
		"notifications", len(s.notifications), "unread", s.unreadCount)
	return s
}

// SetClock replaces the store's time source. Tests only.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Add builds a notification from the request, consults the visibility filter
// against current preferences and, if accepted, prepends it to the list,
// bumps the unread count, persists and dispatches to the browser channel.
//
// A suppressed notification is discarded silently; callers are not told.
// Suppression is visible only in metrics.
func (s *Store) Add(req domain.NotificationRequest) {
	n := domain.NewNotification(req.Type, req.Title, req.Message, req.Options)

	s.mu.Lock()

	ok, reason := filter.Evaluate(n, s.prefs, s.now())
	if !ok {
		s.mu.Unlock()
		metrics.NotificationsSuppressed.WithLabelValues(string(n.Type), string(reason)).Inc()
		s.log.Debug("Notification suppressed", "type", n.Type, "reason", reason)
		return
	}

	s.notifications = append([]*domain.Notification{n}, s.notifications...)
	s.unreadCount++ // new notifications are always unread
	s.persistNotificationsLocked()

	prefs := s.prefs
	dispatch := prefs.Channels.Browser && s.permissionGranted
	s.mu.Unlock()

	metrics.NotificationsAdded.WithLabelValues(string(n.Type), string(n.Priority)).Inc()
	metrics.UnreadNotifications.Set(float64(s.UnreadCount()))

	if dispatch && s.channel != nil {
		metrics.BrowserDeliveries.Inc()
		// Fire and forget; the gateway notifier blocks on HTTP.
		go s.channel.Dispatch(n, prefs)
	}
}

// MarkAsRead marks the notification read and decrements the unread count.
// Already-read or unknown ids are a no-op.
func (s *Store) MarkAsRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.ID != id {
			continue
		}
		if n.Read {
			return
		}
		n.Read = true
		if s.unreadCount > 0 {
			s.unreadCount--
		}
		s.persistNotificationsLocked()
		metrics.UnreadNotifications.Set(float64(s.unreadCount))
		return
	}
}

// MarkAllAsRead marks every notification read. Idempotent.
func (s *Store) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		n.Read = true
	}
	s.unreadCount = 0
	s.persistNotificationsLocked()
	metrics.UnreadNotifications.Set(0)
}

// Delete removes the notification with the given id. Unknown ids are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID != id {
			continue
		}
		if !n.Read && s.unreadCount > 0 {
			s.unreadCount--
		}
		s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
		s.persistNotificationsLocked()
		metrics.UnreadNotifications.Set(float64(s.unreadCount))
		return
	}
}

// ClearAll empties the notification list.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = []*domain.Notification{}
	s.unreadCount = 0
	s.persistNotificationsLocked()
	metrics.UnreadNotifications.Set(0)
}

// UpdatePreferences merges the patch into current preferences and persists.
// Nested maps merge key by key; quiet hours are re-ensured fully populated.
func (s *Store) UpdatePreferences(patch domain.PreferencesPatch) domain.NotificationPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = s.prefs.ApplyPatch(patch)
	s.persistPreferencesLocked()
	return s.prefs
}

// RequestPermission runs the platform permission prompt via the delivery
// channel and records the result.
func (s *Store) RequestPermission(ctx context.Context) (bool, error) {
	if s.channel == nil {
		return false, nil
	}
	granted, err := s.channel.RequestPermission(ctx)
	if err != nil {
		s.log.Error("Permission request failed", "error", err)
		granted = false
	}

	s.mu.Lock()
	s.permissionGranted = granted
	s.mu.Unlock()
	return granted, err
}

// PruneExpired removes notifications whose expiry has passed and returns the
// number removed. Stored notifications can outlive their expiry between
// sweeps; this is the recurring cleanup the scheduler drives once a minute.
func (s *Store) PruneExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.notifications[:0]
	removed := 0
	for _, n := range s.notifications {
		if n.Expired(now) {
			removed++
			if !n.Read && s.unreadCount > 0 {
				s.unreadCount--
			}
			continue
		}
		kept = append(kept, n)
	}
	if removed == 0 {
		return 0
	}

	s.notifications = kept
	s.persistNotificationsLocked()
	metrics.NotificationsPruned.Add(float64(removed))
	metrics.UnreadNotifications.Set(float64(s.unreadCount))
	s.log.Info("Pruned expired notifications", "removed", removed)
	return removed
}

// ByCategory returns notifications in the given category, newest first.
func (s *Store) ByCategory(category domain.Category) []*domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Notification
	for _, n := range s.notifications {
		if n.Category == category {
			out = append(out, n)
		}
	}
	return out
}

// ByType returns notifications of the given type, newest first.
func (s *Store) ByType(t domain.NotificationType) []*domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Notification
	for _, n := range s.notifications {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// Unread returns the unread notifications, newest first.
func (s *Store) Unread() []*domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Notification
	for _, n := range s.notifications {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// Notifications returns the full list, newest first.
func (s *Store) Notifications() []*domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Notification{}, s.notifications...)
}

// Preferences returns the current preference set.
func (s *Store) Preferences() domain.NotificationPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// UnreadCount returns the current unread count.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unreadCount
}

// PermissionGranted reports whether browser permission is currently granted.
func (s *Store) PermissionGranted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.permissionGranted
}

// State returns a consistent snapshot of the whole store.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Notifications:     append([]*domain.Notification{}, s.notifications...),
		Preferences:       s.prefs,
		UnreadCount:       s.unreadCount,
		PermissionGranted: s.permissionGranted,
	}
}

// persistNotificationsLocked snapshots the list and writes it out in the
// background; caller holds the write lock. The snapshot copies each element
// because Read flips in place under the lock while the write may still be
// encoding.
func (s *Store) persistNotificationsLocked() {
	snapshot := make([]*domain.Notification, len(s.notifications))
	for i, n := range s.notifications {
		c := *n
		snapshot[i] = &c
	}
	s.notifSeq++
	seq := s.notifSeq

	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		s.persistMu.Lock()
		defer s.persistMu.Unlock()
		if seq <= s.notifWritten {
			return
		}
		s.notifWritten = seq

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		s.adapter.SaveNotifications(ctx, snapshot)
	}()
}

// persistPreferencesLocked writes the preference set out in the background;
// caller holds the write lock. ApplyPatch never mutates the maps of a previous
// value, so the snapshot is safe to encode concurrently.
func (s *Store) persistPreferencesLocked() {
	snapshot := s.prefs
	s.prefsSeq++
	seq := s.prefsSeq

	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		s.persistMu.Lock()
		defer s.persistMu.Unlock()
		if seq <= s.prefsWritten {
			return
		}
		s.prefsWritten = seq

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		s.adapter.SavePreferences(ctx, snapshot)
	}()
}

// Flush blocks until every queued persistence write has completed. Called on
// shutdown so the last mutation reaches the KV store.
func (s *Store) Flush() {
	s.persistWG.Wait()
}
