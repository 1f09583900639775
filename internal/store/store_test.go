package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/agriswayam/go-notification-service/internal/domain"
	"github.com/agriswayam/go-notification-service/internal/generator"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
	"github.com/agriswayam/go-notification-service/internal/storage"
)

// fakeChannel records dispatches and permission requests. Dispatch runs on a
// background goroutine, so access is mutex-guarded and tests wait for counts.
type fakeChannel struct {
	mu         sync.Mutex
	dispatched []*domain.Notification
	granted    bool
}

func (f *fakeChannel) Dispatch(n *domain.Notification, _ domain.NotificationPreferences) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatched = append(f.dispatched, n)
}

func (f *fakeChannel) RequestPermission(context.Context) (bool, error) {
	return f.granted, nil
}

func (f *fakeChannel) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dispatched)
}

// waitFor blocks until the channel has seen want dispatches or a second has
// passed.
func (f *fakeChannel) waitFor(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if f.count() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("dispatched %d notifications, want %d", f.count(), want)
}

func newTestStore(t *testing.T) (*Store, *fakeChannel, *storage.Adapter) {
	t.Helper()
	adapter := storage.NewAdapter(storage.NewMemoryKV(), logger.NewLogger())
	channel := &fakeChannel{granted: true}
	s := New(adapter, channel, logger.NewLogger())
	return s, channel, adapter
}

// checkInvariant verifies the unread counter matches the actual list.
func checkInvariant(t *testing.T, s *Store) {
	t.Helper()
	want := 0
	for _, n := range s.Notifications() {
		if !n.Read {
			want++
		}
	}
	if got := s.UnreadCount(); got != want {
		t.Fatalf("unreadCount = %d, want %d (list-derived)", got, want)
	}
}

func weatherRequest() domain.NotificationRequest {
	return domain.NotificationRequest{Type: domain.TypeWeatherAlert}
}

func TestAddPrependsAndCounts(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.Add(domain.NotificationRequest{Type: domain.TypeGeneral, Title: "first"})
	s.Add(domain.NotificationRequest{Type: domain.TypeGeneral, Title: "second"})

	notifications := s.Notifications()
	if len(notifications) != 2 {
		t.Fatalf("len = %d, want 2", len(notifications))
	}
	if notifications[0].Title != "second" {
		t.Errorf("newest notification should be first, got %q", notifications[0].Title)
	}
	if s.UnreadCount() != 2 {
		t.Errorf("unreadCount = %d, want 2", s.UnreadCount())
	}
	checkInvariant(t, s)
}

func TestAddWeatherAlertScenario(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.Add(domain.NotificationRequest{
		Type: domain.TypeWeatherAlert,
		Options: &domain.NotificationOptions{
			Priority: domain.PriorityUrgent,
			Metadata: map[string]any{"location": "Punjab", "amount_mm": 85},
		},
	})

	notifications := s.Notifications()
	if len(notifications) != 1 {
		t.Fatalf("len = %d, want 1", len(notifications))
	}
	n := notifications[0]
	if n.Category != domain.CategoryWeather {
		t.Errorf("Category = %v, want weather", n.Category)
	}
	if n.Priority != domain.PriorityUrgent {
		t.Errorf("Priority = %v, want urgent", n.Priority)
	}
	if s.UnreadCount() != 1 {
		t.Errorf("unreadCount = %d, want exactly 1", s.UnreadCount())
	}
}

func TestAddSuppressedByCategoryPreference(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.UpdatePreferences(domain.PreferencesPatch{
		Categories: map[domain.Category]bool{domain.CategoryMarket: false},
	})
	before := s.UnreadCount()

	s.Add(domain.NotificationRequest{Type: domain.TypePriceAlert})

	if len(s.Notifications()) != 0 {
		t.Error("suppressed notification must not be stored")
	}
	if s.UnreadCount() != before {
		t.Error("suppressed notification must not change the unread count")
	}
}

func TestAddDispatchesToBrowserChannel(t *testing.T) {
	s, channel, _ := newTestStore(t)

	// Without permission, no dispatch.
	s.Add(weatherRequest())
	time.Sleep(20 * time.Millisecond)
	if channel.count() != 0 {
		t.Fatal("dispatched without permission")
	}

	if granted, _ := s.RequestPermission(context.Background()); !granted {
		t.Fatal("permission should be granted by the fake channel")
	}
	s.Add(weatherRequest())
	channel.waitFor(t, 1)

	// Browser channel off: no dispatch even with permission.
	off := false
	s.UpdatePreferences(domain.PreferencesPatch{Channels: &domain.ChannelsPatch{Browser: &off}})
	s.Add(weatherRequest())
	time.Sleep(20 * time.Millisecond)
	if channel.count() != 1 {
		t.Error("dispatched despite the browser channel being disabled")
	}
}

// blockingChannel holds every dispatch until released.
type blockingChannel struct {
	release chan struct{}
}

func (b *blockingChannel) Dispatch(*domain.Notification, domain.NotificationPreferences) {
	<-b.release
}

func (b *blockingChannel) RequestPermission(context.Context) (bool, error) {
	return true, nil
}

func TestAddDoesNotWaitOnDispatch(t *testing.T) {
	adapter := storage.NewAdapter(storage.NewMemoryKV(), logger.NewLogger())
	channel := &blockingChannel{release: make(chan struct{})}
	defer close(channel.release)

	s := New(adapter, channel, logger.NewLogger())
	if granted, _ := s.RequestPermission(context.Background()); !granted {
		t.Fatal("permission should be granted")
	}

	start := time.Now()
	s.Add(weatherRequest())
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("Add blocked %v on the delivery channel", elapsed)
	}
	if s.UnreadCount() != 1 {
		t.Error("notification should be stored before delivery completes")
	}
}

func TestMarkAsRead(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.Add(weatherRequest())
	id := s.Notifications()[0].ID

	s.MarkAsRead(id)
	if s.UnreadCount() != 0 {
		t.Errorf("unreadCount = %d, want 0", s.UnreadCount())
	}
	if !s.Notifications()[0].Read {
		t.Error("notification should be read")
	}

	// Marking again is a no-op.
	s.MarkAsRead(id)
	if s.UnreadCount() != 0 {
		t.Error("double mark-as-read changed the count")
	}

	// Unknown id is a no-op, not an error.
	s.MarkAsRead("notif_missing")
	checkInvariant(t, s)
}

func TestMarkAllAsReadIdempotent(t *testing.T) {
	s, _, _ := newTestStore(t)

	for i := 0; i < 3; i++ {
		s.Add(weatherRequest())
	}

	s.MarkAllAsRead()
	if s.UnreadCount() != 0 {
		t.Fatalf("unreadCount = %d after markAll, want 0", s.UnreadCount())
	}
	for _, n := range s.Notifications() {
		if !n.Read {
			t.Fatal("every notification should be read")
		}
	}

	// Second call changes nothing.
	s.MarkAllAsRead()
	if s.UnreadCount() != 0 {
		t.Error("second markAll changed the count")
	}
	checkInvariant(t, s)
}

func TestDelete(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.Add(domain.NotificationRequest{Type: domain.TypeGeneral, Title: "keep"})
	s.Add(domain.NotificationRequest{Type: domain.TypeGeneral, Title: "drop"})
	dropID := s.Notifications()[0].ID

	s.Delete(dropID)
	if len(s.Notifications()) != 1 {
		t.Fatalf("len = %d, want 1", len(s.Notifications()))
	}
	if s.UnreadCount() != 1 {
		t.Errorf("unreadCount = %d, want 1", s.UnreadCount())
	}

	// Deleting a read notification must not touch the count.
	keepID := s.Notifications()[0].ID
	s.MarkAsRead(keepID)
	s.Delete(keepID)
	if s.UnreadCount() != 0 {
		t.Errorf("unreadCount = %d, want 0", s.UnreadCount())
	}

	s.Delete("notif_missing")
	checkInvariant(t, s)
}

func TestClearAll(t *testing.T) {
	s, _, _ := newTestStore(t)

	for i := 0; i < 4; i++ {
		s.Add(weatherRequest())
	}
	s.ClearAll()

	if len(s.Notifications()) != 0 {
		t.Error("list should be empty after clearAll")
	}
	if s.UnreadCount() != 0 {
		t.Error("unreadCount should be 0 after clearAll")
	}
}

func TestUnreadInvariantAcrossOperationSequence(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.Add(domain.NotificationRequest{Type: domain.TypeWeatherAlert})
	s.Add(domain.NotificationRequest{Type: domain.TypePestAlert})
	s.Add(domain.NotificationRequest{Type: domain.TypeMarketUpdate})
	checkInvariant(t, s)

	s.MarkAsRead(s.Notifications()[1].ID)
	checkInvariant(t, s)

	s.Delete(s.Notifications()[0].ID)
	checkInvariant(t, s)

	s.Add(domain.NotificationRequest{Type: domain.TypeSoilCondition})
	checkInvariant(t, s)

	s.MarkAllAsRead()
	checkInvariant(t, s)

	s.Delete(s.Notifications()[0].ID)
	checkInvariant(t, s)

	s.ClearAll()
	checkInvariant(t, s)
}

func TestPruneExpired(t *testing.T) {
	s, _, _ := newTestStore(t)

	// Freeze the clock so we control expiry.
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	soon := now.Add(30 * time.Second)
	s.Add(domain.NotificationRequest{
		Type:    domain.TypeGeneral,
		Title:   "expiring",
		Options: &domain.NotificationOptions{ExpiresAt: &soon},
	})
	s.Add(domain.NotificationRequest{Type: domain.TypeGeneral, Title: "durable"})

	if removed := s.PruneExpired(); removed != 0 {
		t.Fatalf("nothing should be pruned yet, removed %d", removed)
	}

	// Advance past the expiry; the stored notification is now stale.
	now = now.Add(time.Minute)
	if removed := s.PruneExpired(); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	notifications := s.Notifications()
	if len(notifications) != 1 || notifications[0].Title != "durable" {
		t.Error("only the durable notification should remain")
	}
	checkInvariant(t, s)
}

func TestAddRejectsAlreadyExpired(t *testing.T) {
	s, _, _ := newTestStore(t)

	past := time.Now().Add(-time.Hour)
	s.Add(domain.NotificationRequest{
		Type:    domain.TypeGeneral,
		Options: &domain.NotificationOptions{ExpiresAt: &past},
	})

	if len(s.Notifications()) != 0 {
		t.Error("expired notification should be rejected at creation time")
	}
}

func TestStateSurvivesReload(t *testing.T) {
	adapter := storage.NewAdapter(storage.NewMemoryKV(), logger.NewLogger())
	channel := &fakeChannel{}

	s := New(adapter, channel, logger.NewLogger())
	s.Add(domain.NotificationRequest{Type: domain.TypeWeatherAlert})
	s.Add(domain.NotificationRequest{Type: domain.TypeHarvestReminder})
	s.MarkAsRead(s.Notifications()[0].ID)
	s.UpdatePreferences(domain.PreferencesPatch{
		Types: map[domain.NotificationType]bool{domain.TypeMarketUpdate: false},
	})
	s.Flush()

	// A new store over the same adapter sees the persisted state and derives
	// the unread count from the loaded list.
	reloaded := New(adapter, channel, logger.NewLogger())
	if len(reloaded.Notifications()) != 2 {
		t.Fatalf("reloaded %d notifications, want 2", len(reloaded.Notifications()))
	}
	if reloaded.UnreadCount() != 1 {
		t.Errorf("reloaded unreadCount = %d, want 1", reloaded.UnreadCount())
	}
	if reloaded.Preferences().Types[domain.TypeMarketUpdate] {
		t.Error("preference update did not survive the reload")
	}
	checkInvariant(t, reloaded)
}

// slowKV delays every write, standing in for a hung durable store.
type slowKV struct {
	inner *storage.MemoryKV
	delay time.Duration
}

func (k *slowKV) Get(ctx context.Context, key string) (string, bool, error) {
	return k.inner.Get(ctx, key)
}

func (k *slowKV) Set(ctx context.Context, key, value string) error {
	time.Sleep(k.delay)
	return k.inner.Set(ctx, key, value)
}

func TestMutationsDoNotWaitOnPersistence(t *testing.T) {
	kv := &slowKV{inner: storage.NewMemoryKV(), delay: 300 * time.Millisecond}
	adapter := storage.NewAdapter(kv, logger.NewLogger())
	s := New(adapter, &fakeChannel{}, logger.NewLogger())

	start := time.Now()
	s.Add(weatherRequest())
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("Add blocked %v on the KV write", elapsed)
	}

	// Reads must not queue behind the in-flight write either.
	start = time.Now()
	if got := s.UnreadCount(); got != 1 {
		t.Fatalf("unreadCount = %d, want 1", got)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("read blocked %v behind persistence", elapsed)
	}

	// After a flush the write has landed and a reload sees it.
	s.Flush()
	reloaded := New(adapter, &fakeChannel{}, logger.NewLogger())
	if len(reloaded.Notifications()) != 1 {
		t.Error("flushed write did not reach the store")
	}
}

func TestFreshStoreAcceptsSampleSeed(t *testing.T) {
	s, _, _ := newTestStore(t)

	// Default preferences pass every sample through the filter.
	for _, req := range generator.Samples() {
		s.Add(req)
	}

	if got, want := len(s.Notifications()), len(generator.Samples()); got != want {
		t.Fatalf("seeded %d notifications, want %d", got, want)
	}
	checkInvariant(t, s)
}

func TestUpdatePreferencesMergesNestedMaps(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.UpdatePreferences(domain.PreferencesPatch{
		Categories: map[domain.Category]bool{domain.CategoryWeather: false},
	})
	s.UpdatePreferences(domain.PreferencesPatch{
		Categories: map[domain.Category]bool{domain.CategoryMarket: false},
	})

	prefs := s.Preferences()
	if prefs.Categories[domain.CategoryWeather] || prefs.Categories[domain.CategoryMarket] {
		t.Error("both patched categories should be disabled")
	}
	if !prefs.Categories[domain.CategoryHarvest] {
		t.Error("untouched categories must keep their values")
	}
	if prefs.QuietHours.Start == "" || prefs.QuietHours.End == "" {
		t.Error("quiet hours must stay fully populated after every patch")
	}
}

func TestQueriesArePureReads(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.Add(domain.NotificationRequest{Type: domain.TypeWeatherAlert})
	s.Add(domain.NotificationRequest{Type: domain.TypePestAlert})
	s.MarkAsRead(s.Notifications()[0].ID)

	if got := len(s.ByCategory(domain.CategoryWeather)); got != 1 {
		t.Errorf("ByCategory(weather) = %d, want 1", got)
	}
	if got := len(s.ByType(domain.TypePestAlert)); got != 1 {
		t.Errorf("ByType(pest_alert) = %d, want 1", got)
	}
	if got := len(s.Unread()); got != 1 {
		t.Errorf("Unread() = %d, want 1", got)
	}
	checkInvariant(t, s)
}
