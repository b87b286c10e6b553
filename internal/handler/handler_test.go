package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codydotio/pulse/internal/app/alien"
	"github.com/codydotio/pulse/internal/app/ledger"
	"github.com/codydotio/pulse/internal/app/stream"
	"github.com/codydotio/pulse/internal/configs"
)

// envelope mirrors the standard JSON response shape.
type envelope struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func newTestDeps() *AppDeps {
	bridge := alien.NewMockBridge()

	deps := &AppDeps{
		Store: ledger.NewStore(),
		Config: &configs.AppConfig{
			Environment:    "development",
			Port:           8080,
			AllowedOrigins: []string{},
			JWTSecret:      "test-secret",
		},
		Hub:      stream.NewHub(),
		Identity: bridge,
		Payments: bridge,
	}

	deps.Store.Subscribe(deps.Hub.Broadcast)

	return deps
}

// doJSON performs one request against the router and decodes the response
// envelope. A non-empty token is attached as a bearer credential.
func doJSON(t *testing.T, router http.Handler, method, path string, body any, token string) (int, envelope) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec.Code, env
}

// verifyUser registers an identity through the API and returns its session token.
func verifyUser(t *testing.T, router http.Handler, alienID, displayName string) string {
	t.Helper()

	status, env := doJSON(t, router, http.MethodPost, "/api/verify", map[string]string{
		"alienId":     alienID,
		"displayName": displayName,
	}, "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, env.Code)

	token, ok := env.Data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	return token
}

func TestHandleHealth(t *testing.T) {
	router := Router(newTestDeps())

	status, env := doJSON(t, router, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "ok", env.Data["status"])
	assert.Equal(t, "Pulse Server", env.Data["service"])
}

func TestHandleVerify(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	status, env := doJSON(t, router, http.MethodPost, "/api/verify", map[string]string{
		"alienId":     "alien_u1",
		"displayName": "Aria",
	}, "")

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, env.Code)

	user := env.Data["user"].(map[string]any)
	assert.Equal(t, "alien_u1", user["id"])
	assert.Equal(t, "Aria", user["displayName"])
	assert.Equal(t, true, user["verified"])

	state := env.Data["state"].(map[string]any)
	assert.Equal(t, float64(ledger.InitialBalance), state["balance"])

	assert.NotEmpty(t, env.Data["token"])
}

func TestHandleVerifyViaProvider(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	status, env := doJSON(t, router, http.MethodPost, "/api/verify", map[string]string{}, "")

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, env.Code)

	user := env.Data["user"].(map[string]any)
	id, ok := user["id"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(id, "alien_"))
	assert.NotEmpty(t, user["displayName"])
}

func TestHandleVerifyIdempotent(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	verifyUser(t, router, "alien_u1", "Aria")
	verifyUser(t, router, "alien_u1", "Someone Else")

	assert.Equal(t, 1, deps.Store.Stats().ActiveHumans)
}

func TestHandleCreatePulse(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	token := verifyUser(t, router, "alien_u1", "Aria")

	status, env := doJSON(t, router, http.MethodPost, "/api/pulse", map[string]any{
		"emoji":   "✨",
		"message": "Shipping it",
		"mood":    "hope",
	}, token)

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, env.Code)

	pulse := env.Data["pulse"].(map[string]any)
	assert.Equal(t, "alien_u1", pulse["userId"])
	assert.Equal(t, "Aria", pulse["userName"])
	assert.Equal(t, "hope", pulse["mood"])
	assert.Equal(t, "Shipping it", pulse["message"])
}

func TestHandleCreatePulseTokenIdentityWins(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	token := verifyUser(t, router, "alien_u1", "Aria")
	verifyUser(t, router, "alien_u2", "Zephyr")

	// The body names another user, but the session token decides who acts.
	status, env := doJSON(t, router, http.MethodPost, "/api/pulse", map[string]any{
		"userId":  "alien_u2",
		"emoji":   "🌊",
		"message": "Hello",
		"mood":    "calm",
	}, token)

	require.Equal(t, http.StatusOK, status)
	pulse := env.Data["pulse"].(map[string]any)
	assert.Equal(t, "alien_u1", pulse["userId"])
}

func TestHandleCreatePulseErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   int
	}{
		{
			name:       "no identity",
			body:       map[string]any{"emoji": "✨", "message": "hi", "mood": "joy"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   3001,
		},
		{
			name:       "unknown mood",
			body:       map[string]any{"userId": "alien_u1", "emoji": "✨", "message": "hi", "mood": "grumpy"},
			wantStatus: http.StatusBadRequest,
			wantCode:   1001,
		},
		{
			name:       "unverified user",
			body:       map[string]any{"userId": "alien_ghost", "emoji": "✨", "message": "hi", "mood": "joy"},
			wantStatus: http.StatusBadRequest,
			wantCode:   2001,
		},
		{
			name:       "empty message",
			body:       map[string]any{"userId": "alien_u1", "emoji": "✨", "message": "   ", "mood": "joy"},
			wantStatus: http.StatusBadRequest,
			wantCode:   2002,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			router := Router(deps)
			verifyUser(t, router, "alien_u1", "Aria")

			status, env := doJSON(t, router, http.MethodPost, "/api/pulse", tt.body, "")

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}
}

func TestHandleCreatePulseRejectsUnknownFields(t *testing.T) {
	router := Router(newTestDeps())

	status, env := doJSON(t, router, http.MethodPost, "/api/pulse", map[string]any{
		"userId":  "alien_u1",
		"emoji":   "✨",
		"message": "hi",
		"mood":    "joy",
		"bogus":   true,
	}, "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 1003, env.Code)
}

func TestHandleGalaxy(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	token := verifyUser(t, router, "alien_u1", "Aria")
	_, env := doJSON(t, router, http.MethodPost, "/api/pulse", map[string]any{
		"emoji":   "✨",
		"message": "hi",
		"mood":    "joy",
	}, token)
	require.Equal(t, 0, env.Code)

	status, env := doJSON(t, router, http.MethodGet, "/api/pulse", nil, "")

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, env.Code)

	pulses := env.Data["pulses"].([]any)
	assert.Len(t, pulses, 1)

	stats := env.Data["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["totalPulses"])
	assert.Equal(t, "joy", stats["topMood"])
}

func TestHandleResonate(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	tokenA := verifyUser(t, router, "alien_u1", "Aria")
	tokenB := verifyUser(t, router, "alien_u2", "Zephyr")

	_, env := doJSON(t, router, http.MethodPost, "/api/pulse", map[string]any{
		"emoji":   "✨",
		"message": "hi",
		"mood":    "joy",
	}, tokenA)
	require.Equal(t, 0, env.Code)
	pulseID := env.Data["pulse"].(map[string]any)["id"].(string)

	status, env := doJSON(t, router, http.MethodPost, "/api/resonate", map[string]any{
		"pulseId": pulseID,
		"amount":  2,
	}, tokenB)

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, env.Code)

	resonance := env.Data["resonance"].(map[string]any)
	assert.Equal(t, "alien_u2", resonance["fromUserId"])
	assert.Equal(t, float64(2), resonance["amount"])

	// With no external reference supplied, the payment provider minted one.
	txRef, ok := resonance["txRef"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(txRef, "tx_"))

	state := env.Data["state"].(map[string]any)
	assert.Equal(t, float64(ledger.InitialBalance-2), state["balance"])
}

func TestHandleResonateErrors(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	tokenA := verifyUser(t, router, "alien_u1", "Aria")
	verifyUser(t, router, "alien_u2", "Zephyr")

	_, env := doJSON(t, router, http.MethodPost, "/api/pulse", map[string]any{
		"emoji":   "✨",
		"message": "hi",
		"mood":    "joy",
	}, tokenA)
	require.Equal(t, 0, env.Code)
	pulseID := env.Data["pulse"].(map[string]any)["id"].(string)

	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
	}{
		{
			name:     "pulse not found",
			body:     map[string]any{"fromUserId": "alien_u2", "pulseId": "pulse_missing", "amount": 1},
			wantCode: 2101,
		},
		{
			name:     "self resonance",
			body:     map[string]any{"fromUserId": "alien_u1", "pulseId": pulseID, "amount": 1},
			wantCode: 2102,
		},
		{
			name:     "amount too large",
			body:     map[string]any{"fromUserId": "alien_u2", "pulseId": pulseID, "amount": 4},
			wantCode: 2103,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := doJSON(t, router, http.MethodPost, "/api/resonate", tt.body, "")

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.wantCode, env.Code)
		})
	}
}

func TestHandleFeed(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	token := verifyUser(t, router, "alien_u1", "Aria")
	_, env := doJSON(t, router, http.MethodPost, "/api/pulse", map[string]any{
		"emoji":   "✨",
		"message": "hi",
		"mood":    "joy",
	}, token)
	require.Equal(t, 0, env.Code)

	status, env := doJSON(t, router, http.MethodGet, "/api/feed", nil, "")

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, env.Code)

	activity := env.Data["activity"].([]any)
	require.Len(t, activity, 1)
	entry := activity[0].(map[string]any)
	assert.Equal(t, "pulse", entry["type"])
}

func TestHandleFeedInvalidLimit(t *testing.T) {
	router := Router(newTestDeps())

	status, env := doJSON(t, router, http.MethodGet, "/api/feed?limit=zero", nil, "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 1001, env.Code)
}

func TestHandleUserState(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	token := verifyUser(t, router, "alien_u1", "Aria")

	// Token identity.
	status, env := doJSON(t, router, http.MethodGet, "/api/user/state", nil, token)
	require.Equal(t, http.StatusOK, status)
	state := env.Data["state"].(map[string]any)
	assert.Equal(t, float64(ledger.InitialBalance), state["balance"])

	// Explicit id for anonymous callers.
	status, env = doJSON(t, router, http.MethodGet, "/api/user/state?id=alien_u1", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, env.Code)

	// No identity at all.
	status, env = doJSON(t, router, http.MethodGet, "/api/user/state", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 3001, env.Code)
}

func TestHandleInsights(t *testing.T) {
	deps := newTestDeps()
	router := Router(deps)

	token := verifyUser(t, router, "alien_u1", "Aria")
	_, env := doJSON(t, router, http.MethodPost, "/api/pulse", map[string]any{
		"emoji":   "✨",
		"message": "hi",
		"mood":    "hope",
	}, token)
	require.Equal(t, 0, env.Code)

	status, rec := rawGet(t, router, "/api/ai/insights?mood=hope")
	require.Equal(t, http.StatusOK, status)

	var insightEnv struct {
		Code int `json:"code"`
		Data struct {
			Insights     []map[string]any `json:"insights"`
			DominantMood string           `json:"dominantMood"`
			MoodShift    string           `json:"moodShift"`
			EmpathyScore int              `json:"empathyScore"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec, &insightEnv))

	assert.Equal(t, 0, insightEnv.Code)
	assert.Equal(t, "hope", insightEnv.Data.DominantMood)
	assert.Len(t, insightEnv.Data.Insights, 3)
	assert.Equal(t, "brightening", insightEnv.Data.MoodShift)
	assert.Equal(t, 3, insightEnv.Data.EmpathyScore)
}

// rawGet performs a GET and returns the status with the raw body bytes.
func rawGet(t *testing.T, router http.Handler, path string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec.Code, rec.Body.Bytes()
}

func TestEventStream(t *testing.T) {
	deps := newTestDeps()
	server := httptest.NewServer(Router(deps))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	readFrame := func() stream.Frame {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var frame stream.Frame
		require.NoError(t, json.Unmarshal(data, &frame))
		return frame
	}

	// The hub greets every consumer before any event flows.
	frame := readFrame()
	assert.Equal(t, stream.FrameConnected, frame.Type)

	// A registration through the API shows up on the stream.
	resp, err := http.Post(server.URL+"/api/verify", "application/json",
		strings.NewReader(`{"alienId":"alien_u1","displayName":"Aria"}`))
	require.NoError(t, err)
	resp.Body.Close()

	frame = readFrame()
	assert.Equal(t, ledger.EventUserJoined, frame.Type)

	joined := frame.Data.(map[string]any)
	assert.Equal(t, "alien_u1", joined["id"])
	assert.Equal(t, "Aria", joined["name"])
}
