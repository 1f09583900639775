package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agriswayam/go-notification-service/internal/domain"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
)

// failingKV simulates an unavailable store.
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store unavailable")
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func newTestAdapter() (*Adapter, *MemoryKV) {
	kv := NewMemoryKV()
	return NewAdapter(kv, logger.NewLogger()), kv
}

func TestNotificationsRoundTrip(t *testing.T) {
	adapter, _ := newTestAdapter()
	ctx := context.Background()

	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	original := []*domain.Notification{
		domain.NewNotification(domain.TypeWeatherAlert, "", "", nil),
		domain.NewNotification(domain.TypePriceAlert, "Wheat target hit", "₹2500/quintal", &domain.NotificationOptions{
			Priority:  domain.PriorityUrgent,
			ExpiresAt: &expires,
			Metadata:  map[string]any{"crop": "wheat"},
		}),
	}
	original[0].Read = true

	adapter.SaveNotifications(ctx, original)
	loaded := adapter.LoadNotifications(ctx)

	if len(loaded) != len(original) {
		t.Fatalf("loaded %d notifications, want %d", len(loaded), len(original))
	}
	for i := range original {
		if loaded[i].ID != original[i].ID {
			t.Errorf("notification %d: ID = %q, want %q", i, loaded[i].ID, original[i].ID)
		}
		if loaded[i].Read != original[i].Read {
			t.Errorf("notification %d: Read = %v, want %v", i, loaded[i].Read, original[i].Read)
		}
		if !loaded[i].Timestamp.Equal(original[i].Timestamp) {
			t.Errorf("notification %d: timestamp did not survive the round trip", i)
		}
	}
	if loaded[1].ExpiresAt == nil || !loaded[1].ExpiresAt.Equal(expires) {
		t.Error("expiry did not survive the round trip")
	}
	if loaded[1].Priority != domain.PriorityUrgent {
		t.Error("priority did not survive the round trip")
	}
}

func TestLoadNotificationsMissingKey(t *testing.T) {
	adapter, _ := newTestAdapter()

	loaded := adapter.LoadNotifications(context.Background())
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("LoadNotifications() = %v, want empty list", loaded)
	}
}

func TestLoadNotificationsCorruptData(t *testing.T) {
	adapter, kv := newTestAdapter()
	ctx := context.Background()

	kv.Set(ctx, "agriswayam:notifications", "{not json")

	loaded := adapter.LoadNotifications(ctx)
	if len(loaded) != 0 {
		t.Errorf("corrupt data should load as an empty list, got %d entries", len(loaded))
	}
}

func TestLoadNotificationsStoreUnavailable(t *testing.T) {
	adapter := NewAdapter(failingKV{}, logger.NewLogger())

	loaded := adapter.LoadNotifications(context.Background())
	if len(loaded) != 0 {
		t.Error("unavailable store should load as an empty list")
	}
}

func TestSaveSwallowsWriteErrors(t *testing.T) {
	adapter := NewAdapter(failingKV{}, logger.NewLogger())
	ctx := context.Background()

	// Must not panic; failures are logged and swallowed.
	adapter.SaveNotifications(ctx, []*domain.Notification{
		domain.NewNotification(domain.TypeGeneral, "", "", nil),
	})
	adapter.SavePreferences(ctx, domain.DefaultPreferences())
}

func TestPreferencesRoundTrip(t *testing.T) {
	adapter, _ := newTestAdapter()
	ctx := context.Background()

	prefs := domain.DefaultPreferences()
	prefs.Categories[domain.CategoryMarket] = false
	prefs.QuietHours = domain.QuietHours{Enabled: true, Start: "21:30", End: "05:30"}
	prefs.Frequency = domain.FrequencyDaily

	adapter.SavePreferences(ctx, prefs)
	loaded := adapter.LoadPreferences(ctx)

	if loaded.Categories[domain.CategoryMarket] {
		t.Error("disabled category did not survive the round trip")
	}
	if !loaded.QuietHours.Enabled || loaded.QuietHours.Start != "21:30" {
		t.Error("quiet hours did not survive the round trip")
	}
	if loaded.Frequency != domain.FrequencyDaily {
		t.Error("frequency did not survive the round trip")
	}
	// All default keys must still be present.
	for _, typ := range domain.NotificationTypes() {
		if _, ok := loaded.Types[typ]; !ok {
			t.Errorf("type %q missing after round trip", typ)
		}
	}
}

func TestLoadPreferencesMergesPartialSaveOverDefaults(t *testing.T) {
	adapter, kv := newTestAdapter()
	ctx := context.Background()

	// A legacy save from before newer categories and types existed.
	kv.Set(ctx, "agriswayam:preferences",
		`{"enabled":true,"categories":{"market":false},"types":{"price_alert":false}}`)

	loaded := adapter.LoadPreferences(ctx)

	if loaded.Categories[domain.CategoryMarket] {
		t.Error("saved category value should override the default")
	}
	if loaded.Types[domain.TypePriceAlert] {
		t.Error("saved type value should override the default")
	}
	if !loaded.Categories[domain.CategoryWeather] {
		t.Error("categories absent from the save should keep their defaults")
	}
	if !loaded.Types[domain.TypeWeatherAlert] {
		t.Error("types absent from the save should keep their defaults")
	}
	for _, p := range domain.Priorities() {
		if !loaded.Priority[p] {
			t.Errorf("priority %q should default to true when missing", p)
		}
	}
	if loaded.QuietHours.Start != "22:00" || loaded.QuietHours.End != "06:00" {
		t.Error("quiet hours should backfill from defaults")
	}
}

func TestLoadPreferencesCorruptDataYieldsDefaults(t *testing.T) {
	adapter, kv := newTestAdapter()
	ctx := context.Background()

	kv.Set(ctx, "agriswayam:preferences", "][")

	loaded := adapter.LoadPreferences(ctx)
	defaults := domain.DefaultPreferences()

	if loaded.Enabled != defaults.Enabled {
		t.Error("corrupt preferences should load as defaults")
	}
	for _, c := range domain.Categories() {
		if loaded.Categories[c] != defaults.Categories[c] {
			t.Errorf("category %q differs from default after corrupt load", c)
		}
	}
}
