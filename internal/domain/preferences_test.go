package domain

import (
	"testing"
)

func TestDefaultPreferencesFullyPopulated(t *testing.T) {
	prefs := DefaultPreferences()

	if !prefs.Enabled {
		t.Error("defaults should be enabled")
	}
	for _, c := range Categories() {
		if v, ok := prefs.Categories[c]; !ok || !v {
			t.Errorf("category %q should default to true", c)
		}
	}
	for _, typ := range NotificationTypes() {
		if v, ok := prefs.Types[typ]; !ok || !v {
			t.Errorf("type %q should default to true", typ)
		}
	}
	for _, p := range Priorities() {
		if v, ok := prefs.Priority[p]; !ok || !v {
			t.Errorf("priority %q should default to true", p)
		}
	}
	if !prefs.Channels.InApp || !prefs.Channels.Browser {
		t.Error("in-app and browser channels should default to true")
	}
	if prefs.Channels.Email || prefs.Channels.SMS {
		t.Error("email and SMS channels are reserved and default to false")
	}
	if prefs.QuietHours.Enabled {
		t.Error("quiet hours should default to disabled")
	}
	if prefs.QuietHours.Start != "22:00" || prefs.QuietHours.End != "06:00" {
		t.Errorf("quiet hours window = %s-%s, want 22:00-06:00",
			prefs.QuietHours.Start, prefs.QuietHours.End)
	}
	if prefs.Frequency != FrequencyImmediate {
		t.Errorf("Frequency = %v, want immediate", prefs.Frequency)
	}
}

func TestApplyPatchMergesMapsKeyByKey(t *testing.T) {
	prefs := DefaultPreferences()

	patch := PreferencesPatch{
		Categories: map[Category]bool{CategoryMarket: false},
	}
	updated := prefs.ApplyPatch(patch)

	if updated.Categories[CategoryMarket] {
		t.Error("market category should be disabled after patch")
	}
	// Patching one category must not erase the others.
	for _, c := range Categories() {
		if c == CategoryMarket {
			continue
		}
		if !updated.Categories[c] {
			t.Errorf("category %q was erased by an unrelated patch", c)
		}
	}
	// The receiver must not be mutated.
	if !prefs.Categories[CategoryMarket] {
		t.Error("ApplyPatch mutated its receiver")
	}
}

func TestApplyPatchScalarFields(t *testing.T) {
	disabled := false
	browserOff := false
	quietOn := true
	weekly := FrequencyWeekly

	updated := DefaultPreferences().ApplyPatch(PreferencesPatch{
		Enabled:    &disabled,
		Channels:   &ChannelsPatch{Browser: &browserOff},
		QuietHours: &QuietHoursPatch{Enabled: &quietOn},
		Frequency:  &weekly,
	})

	if updated.Enabled {
		t.Error("Enabled should be false after patch")
	}
	if updated.Channels.Browser {
		t.Error("browser channel should be off after patch")
	}
	if !updated.Channels.InApp {
		t.Error("in-app channel should be untouched")
	}
	if !updated.QuietHours.Enabled {
		t.Error("quiet hours should be enabled after patch")
	}
	if updated.QuietHours.Start != "22:00" {
		t.Error("quiet hours start should keep its previous value")
	}
	if updated.Frequency != FrequencyWeekly {
		t.Errorf("Frequency = %v, want weekly", updated.Frequency)
	}
}

func TestApplyPatchReEnsuresQuietHours(t *testing.T) {
	empty := ""
	updated := DefaultPreferences().ApplyPatch(PreferencesPatch{
		QuietHours: &QuietHoursPatch{Start: &empty, End: &empty},
	})

	// Blanked-out quiet hour strings fall back to the defaults so the window
	// is never half-configured.
	if updated.QuietHours.Start != "22:00" || updated.QuietHours.End != "06:00" {
		t.Errorf("quiet hours = %s-%s, want defaults restored",
			updated.QuietHours.Start, updated.QuietHours.End)
	}
}

func TestEnsurePopulatedBackfillsMissingKeys(t *testing.T) {
	prefs := NotificationPreferences{
		Enabled: true,
		Categories: map[Category]bool{
			CategoryWeather: false,
		},
	}
	prefs.EnsurePopulated()

	if prefs.Categories[CategoryWeather] {
		t.Error("explicit false must survive the backfill")
	}
	if !prefs.Categories[CategoryMarket] {
		t.Error("missing categories should backfill to true")
	}
	if !prefs.Types[TypePestAlert] {
		t.Error("missing types should backfill to true")
	}
	if !prefs.Priority[PriorityUrgent] {
		t.Error("missing priorities should backfill to true")
	}
	if prefs.QuietHours.Start == "" || prefs.QuietHours.End == "" {
		t.Error("quiet hours strings should backfill to defaults")
	}
	if prefs.Frequency == "" {
		t.Error("frequency should backfill to immediate")
	}
}
