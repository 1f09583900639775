package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/agriswayam/go-notification-service/internal/shared/logger"
)

// PushGatewayNotifier implements the Notifier primitive against an HTTP push
// gateway that relays popups to connected dashboard sessions. The gateway
// owns the real permission prompt; this notifier caches the reported state.
type PushGatewayNotifier struct {
	baseURL string
	icon    string
	client  *http.Client
	log     *logger.Logger

	mu    sync.RWMutex
	state PermissionState
}

// NewPushGatewayNotifier creates a notifier against the given gateway URL.
func NewPushGatewayNotifier(baseURL, icon string, log *logger.Logger) *PushGatewayNotifier {
	return &PushGatewayNotifier{
		baseURL: baseURL,
		icon:    icon,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log:   log,
		state: PermissionPrompt,
	}
}

// PermissionState returns the last known permission state.
func (p *PushGatewayNotifier) PermissionState() PermissionState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// RequestPermission asks the gateway to run the permission prompt and records
// the outcome.
func (p *PushGatewayNotifier) RequestPermission(ctx context.Context) (bool, error) {
	var result struct {
		State PermissionState `json:"state"`
	}
	if err := p.post(ctx, "/permission/request", nil, &result); err != nil {
		return false, err
	}

	p.mu.Lock()
	p.state = result.State
	p.mu.Unlock()

	return result.State == PermissionGranted, nil
}

// Show relays the popup to the gateway and returns a handle that can close it
// remotely. Click callbacks are registered with the gateway by tag.
func (p *PushGatewayNotifier) Show(opts ShowOptions) (Handle, error) {
	if opts.Icon == "" {
		opts.Icon = p.icon
	}

	payload := map[string]any{
		"title":               opts.Title,
		"body":                opts.Body,
		"icon":                opts.Icon,
		"tag":                 opts.Tag,
		"require_interaction": opts.RequireInteraction,
		"silent":              opts.Silent,
	}
	if err := p.post(context.Background(), "/notifications/show", payload, nil); err != nil {
		return nil, err
	}

	return &gatewayHandle{notifier: p, tag: opts.Tag}, nil
}

// FocusWindow asks the gateway to focus the dashboard window.
func (p *PushGatewayNotifier) FocusWindow() {
	if err := p.post(context.Background(), "/window/focus", nil, nil); err != nil {
		p.log.Warn("Failed to focus window via gateway", "error", err)
	}
}

func (p *PushGatewayNotifier) post(ctx context.Context, path string, payload, result any) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// gatewayHandle closes or wires clicks for a popup shown through the gateway.
type gatewayHandle struct {
	notifier *PushGatewayNotifier
	tag      string
}

func (h *gatewayHandle) Close() {
	payload := map[string]any{"tag": h.tag}
	if err := h.notifier.post(context.Background(), "/notifications/close", payload, nil); err != nil {
		h.notifier.log.Warn("Failed to close notification via gateway", "error", err, "tag", h.tag)
	}
}

// OnClick is a no-op for gateway popups. Clicks happen in the farmer's
// browser, where the gateway focuses the dashboard window and closes tagged
// popups itself; a local callback cannot run there.
func (h *gatewayHandle) OnClick(func()) {}
