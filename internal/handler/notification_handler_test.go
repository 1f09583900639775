package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agriswayam/go-notification-service/internal/domain"
	"github.com/agriswayam/go-notification-service/internal/shared/logger"
	"github.com/agriswayam/go-notification-service/internal/storage"
	"github.com/agriswayam/go-notification-service/internal/store"
	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adapter := storage.NewAdapter(storage.NewMemoryKV(), logger.NewLogger())
	s := store.New(adapter, nil, logger.NewLogger())
	h := NewNotificationHandler(s, logger.NewLogger())

	router := gin.New()
	router.POST("/notifications", h.Trigger)
	return router, s
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTriggerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid request", `{"type":"weather_alert","priority":"high"}`, http.StatusAccepted},
		{"missing type", `{"title":"no type"}`, http.StatusBadRequest},
		{"unknown type", `{"type":"locust_swarm"}`, http.StatusBadRequest},
		{"unknown priority", `{"type":"weather_alert","priority":"extreme"}`, http.StatusBadRequest},
		{"unknown category", `{"type":"weather_alert","category":"space"}`, http.StatusBadRequest},
		{"valid overrides", `{"type":"price_alert","priority":"urgent","category":"market"}`, http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t)
			w := postJSON(router, "/notifications", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d; body %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestTriggerRejectedInputNotStored(t *testing.T) {
	router, s := newTestRouter(t)

	postJSON(router, "/notifications", `{"type":"weather_alert","priority":"extreme"}`)
	if len(s.Notifications()) != 0 {
		t.Error("rejected trigger must not reach the store")
	}
}

func TestTriggerSuppressionNotReported(t *testing.T) {
	router, s := newTestRouter(t)

	off := false
	s.UpdatePreferences(domain.PreferencesPatch{Enabled: &off})

	// The filter drops it, but the caller still gets 202: acceptance only
	// means the request was well-formed.
	w := postJSON(router, "/notifications", `{"type":"weather_alert"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
	if len(s.Notifications()) != 0 {
		t.Error("suppressed notification must not be stored")
	}
}
