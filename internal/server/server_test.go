package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/adobe"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/destination"
)

func setupTestServer() (*Server, *adobe.Recorder) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	recorder := adobe.NewRecorder()
	dest := destination.New(recorder, recorder, logger)
	dest.UpdateSettings(destination.Settings{
		EventsV2: map[string]string{"Signed In": "signin"},
	})

	return New(&Config{Port: 8080}, dest, logger), recorder
}

func TestHealthCheck(t *testing.T) {
	server, _ := setupTestServer()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	server.router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestMetricsEndpoint(t *testing.T) {
	server, _ := setupTestServer()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	server.router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
}

func TestIngestSingleEvent(t *testing.T) {
	server, recorder := setupTestServer()

	body := `{
		"type": "track",
		"event": "Signed In",
		"userId": "user-1",
		"properties": {"plan": "premium"}
	}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/events", strings.NewReader(body))
	server.router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.Len(t, recorder.Calls, 1)
	assert.Equal(t, "trackAction", recorder.Calls[0].Method)
	assert.Equal(t, "signin", recorder.Calls[0].Name)
	assert.Equal(t, "premium", recorder.Calls[0].ContextData["plan"])
}

func TestIngestBatch(t *testing.T) {
	server, recorder := setupTestServer()

	body := `{"batch": [
		{"type": "identify", "userId": "user-1"},
		{"type": "screen", "name": "Home"}
	]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/events", strings.NewReader(body))
	server.router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"accepted":2`)
	require.Len(t, recorder.Calls, 2)
	assert.Equal(t, "setVisitorIdentifier", recorder.Calls[0].Method)
	assert.Equal(t, "trackState", recorder.Calls[1].Method)
}

func TestIngestRejectsMalformedPayload(t *testing.T) {
	server, _ := setupTestServer()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"invalid json", `{not json`, 400},
		{"unknown type", `{"type": "page"}`, 400},
		{"video before session", `{"type": "track", "event": "Video Playback Paused"}`, 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/v1/events", strings.NewReader(tt.body))
			server.router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSettingsUpdate(t *testing.T) {
	server, recorder := setupTestServer()

	body := `{
		"productIdentifier": "sku",
		"eventsV2": {"Level Up": "levelUp"},
		"customDataPrefix": "game."
	}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/settings", strings.NewReader(body))
	server.router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	eventBody := `{"type": "track", "event": "Level Up", "properties": {"level": 3}}`
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/v1/events", strings.NewReader(eventBody))
	server.router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.Len(t, recorder.Calls, 1)
	assert.Equal(t, "levelUp", recorder.Calls[0].Name)
	assert.Equal(t, "3", recorder.Calls[0].ContextData["game.level"])
}

func TestSettingsUpdateRejectsInvalidPayload(t *testing.T) {
	server, _ := setupTestServer()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/settings", strings.NewReader(`{"productIdentifier": "upc"}`))
	server.router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
