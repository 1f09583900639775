package domain

// Frequency controls how often digest-style delivery would batch
// notifications. Stored and round-tripped but not enforced by the core.
type Frequency string

const (
	FrequencyImmediate Frequency = "immediate"
	FrequencyHourly    Frequency = "hourly"
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
)

// Channels holds per-channel delivery toggles. Email and SMS are reserved for
// future use and ignored by the core.
type Channels struct {
	InApp   bool `json:"in_app"`
	Browser bool `json:"browser"`
	Email   bool `json:"email"`
	SMS     bool `json:"sms"`
}

// QuietHours is a time-of-day window during which only urgent notifications
// surface. Start and End are "HH:MM" strings.
type QuietHours struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// NotificationPreferences is the user-controlled filter gate over
// category/type/priority/channel/time-of-day.
//
// Invariant: a preferences value obtained from DefaultPreferences, the storage
// adapter, or ApplyPatch always has every category, type and priority key
// present, so the visibility filter never hits a missing-key lookup.
type NotificationPreferences struct {
	Enabled    bool                      `json:"enabled"`
	Categories map[Category]bool         `json:"categories"`
	Types      map[NotificationType]bool `json:"types"`
	Priority   map[Priority]bool         `json:"priority"`
	Channels   Channels                  `json:"channels"`
	QuietHours QuietHours                `json:"quiet_hours"`
	Frequency  Frequency                 `json:"frequency"`
}

// DefaultQuietHours returns the default quiet hours window, disabled.
func DefaultQuietHours() QuietHours {
	return QuietHours{Enabled: false, Start: "22:00", End: "06:00"}
}

// DefaultPreferences returns the fully-populated default preference set:
// everything enabled except the email and SMS channels, quiet hours off.
func DefaultPreferences() NotificationPreferences {
	categories := make(map[Category]bool, len(Categories()))
	for _, c := range Categories() {
		categories[c] = true
	}
	types := make(map[NotificationType]bool, len(NotificationTypes()))
	for _, t := range NotificationTypes() {
		types[t] = true
	}
	priority := make(map[Priority]bool, len(Priorities()))
	for _, p := range Priorities() {
		priority[p] = true
	}

	return NotificationPreferences{
		Enabled:    true,
		Categories: categories,
		Types:      types,
		Priority:   priority,
		Channels: Channels{
			InApp:   true,
			Browser: true,
			Email:   false,
			SMS:     false,
		},
		QuietHours: DefaultQuietHours(),
		Frequency:  FrequencyImmediate,
	}
}

// ChannelsPatch is a partial update of the channel toggles.
type ChannelsPatch struct {
	InApp   *bool `json:"in_app,omitempty"`
	Browser *bool `json:"browser,omitempty"`
	Email   *bool `json:"email,omitempty"`
	SMS     *bool `json:"sms,omitempty"`
}

// QuietHoursPatch is a partial update of the quiet hours window.
type QuietHoursPatch struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Start   *string `json:"start,omitempty"`
	End     *string `json:"end,omitempty"`
}

// PreferencesPatch is a partial preference update. Nil fields are left
// untouched; map fields are merged key by key so updating one category never
// erases the others.
type PreferencesPatch struct {
	Enabled    *bool                     `json:"enabled,omitempty"`
	Categories map[Category]bool         `json:"categories,omitempty"`
	Types      map[NotificationType]bool `json:"types,omitempty"`
	Priority   map[Priority]bool         `json:"priority,omitempty"`
	Channels   *ChannelsPatch            `json:"channels,omitempty"`
	QuietHours *QuietHoursPatch          `json:"quiet_hours,omitempty"`
	Frequency  *Frequency                `json:"frequency,omitempty"`
}

// ApplyPatch merges the patch into the preferences and returns the result.
// The receiver value is not modified. Quiet hours are re-ensured to be fully
// populated afterwards: empty start/end strings fall back to the defaults.
func (p NotificationPreferences) ApplyPatch(patch PreferencesPatch) NotificationPreferences {
	out := p.clone()

	if patch.Enabled != nil {
		out.Enabled = *patch.Enabled
	}
	for c, v := range patch.Categories {
		out.Categories[c] = v
	}
	for t, v := range patch.Types {
		out.Types[t] = v
	}
	for pr, v := range patch.Priority {
		out.Priority[pr] = v
	}
	if patch.Channels != nil {
		if patch.Channels.InApp != nil {
			out.Channels.InApp = *patch.Channels.InApp
		}
		if patch.Channels.Browser != nil {
			out.Channels.Browser = *patch.Channels.Browser
		}
		if patch.Channels.Email != nil {
			out.Channels.Email = *patch.Channels.Email
		}
		if patch.Channels.SMS != nil {
			out.Channels.SMS = *patch.Channels.SMS
		}
	}
	if patch.QuietHours != nil {
		if patch.QuietHours.Enabled != nil {
			out.QuietHours.Enabled = *patch.QuietHours.Enabled
		}
		if patch.QuietHours.Start != nil {
			out.QuietHours.Start = *patch.QuietHours.Start
		}
		if patch.QuietHours.End != nil {
			out.QuietHours.End = *patch.QuietHours.End
		}
	}
	if patch.Frequency != nil {
		out.Frequency = *patch.Frequency
	}

	out.EnsurePopulated()
	return out
}

// EnsurePopulated back-fills any missing enum keys and an empty quiet hours
// window with their defaults. Called after loading persisted preferences and
// after every patch, so legacy saves from before a new type or category was
// introduced still carry every key.
func (p *NotificationPreferences) EnsurePopulated() {
	if p.Categories == nil {
		p.Categories = make(map[Category]bool, len(Categories()))
	}
	for _, c := range Categories() {
		if _, ok := p.Categories[c]; !ok {
			p.Categories[c] = true
		}
	}
	if p.Types == nil {
		p.Types = make(map[NotificationType]bool, len(NotificationTypes()))
	}
	for _, t := range NotificationTypes() {
		if _, ok := p.Types[t]; !ok {
			p.Types[t] = true
		}
	}
	if p.Priority == nil {
		p.Priority = make(map[Priority]bool, len(Priorities()))
	}
	for _, pr := range Priorities() {
		if _, ok := p.Priority[pr]; !ok {
			p.Priority[pr] = true
		}
	}
	if p.QuietHours.Start == "" {
		p.QuietHours.Start = DefaultQuietHours().Start
	}
	if p.QuietHours.End == "" {
		p.QuietHours.End = DefaultQuietHours().End
	}
	if p.Frequency == "" {
		p.Frequency = FrequencyImmediate
	}
}

func (p NotificationPreferences) clone() NotificationPreferences {
	out := p
	out.Categories = make(map[Category]bool, len(p.Categories))
	for k, v := range p.Categories {
		out.Categories[k] = v
	}
	out.Types = make(map[NotificationType]bool, len(p.Types))
	for k, v := range p.Types {
		out.Types[k] = v
	}
	out.Priority = make(map[Priority]bool, len(p.Priority))
	for k, v := range p.Priority {
		out.Priority[k] = v
	}
	return out
}
