package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/abhinaya/internal/classify"
	"github.com/ayusman/abhinaya/internal/pool"
	"github.com/ayusman/abhinaya/internal/session"
	"github.com/ayusman/abhinaya/internal/stabilize"
	"github.com/ayusman/abhinaya/internal/store"
	"github.com/ayusman/abhinaya/internal/tracker"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sess := session.New(session.Config{
		Thresholds: classify.DefaultThresholds(),
		Stabilizer: stabilize.DefaultConfig(),
	}, tracker.NewMockTracker(), pool.New("neutral", nil), zerolog.Nop())

	srv := New(Config{Store: st, Session: sess, Log: zerolog.Nop()})
	return srv, st
}

func doRequest(srv *Server, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["uptime"])
}

func TestHealthMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStateEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Expression string `json:"expression"`
		Gesture    string `json:"gesture"`
		Enabled    bool   `json:"enabled"`
		Reaction   struct {
			Kind     string `json:"kind"`
			Category string `json:"category"`
		} `json:"reaction"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "neutral", resp.Expression)
	assert.Equal(t, "none", resp.Gesture)
	assert.False(t, resp.Enabled)
	assert.Equal(t, "expression", resp.Reaction.Kind)
	assert.Equal(t, "neutral", resp.Reaction.Category)
}

func TestReactionsEndpoint(t *testing.T) {
	srv, st := newTestServer(t)

	require.NoError(t, st.Events().Insert(&store.ReactionEvent{
		Kind: "gesture", Category: "wave", Confidence: 0.8,
	}))

	rec := doRequest(srv, http.MethodGet, "/api/reactions?limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Events []struct {
			Kind     string `json:"Kind"`
			Category string `json:"Category"`
		} `json:"events"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "wave", resp.Events[0].Category)
}

func TestAssetRoutesWired(t *testing.T) {
	srv, st := newTestServer(t)

	require.NoError(t, st.Assets().Create(&store.Asset{Category: "wave", Name: "hello"}))

	rec := doRequest(srv, http.MethodGet, "/api/assets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hello")
}

func TestEventsWebSocket(t *testing.T) {
	srv, _ := newTestServer(t)

	ts := httptest.NewServer(srv)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration happens just after the handshake completes client side.
	deadline := time.Now().Add(2 * time.Second)
	for srv.Events().ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, srv.Events().ClientCount())

	srv.Events().Publish(session.Reaction{
		Kind:       session.KindGesture,
		Category:   "wave",
		Confidence: 0.8,
		At:         time.Now(),
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var r session.Reaction
	require.NoError(t, json.Unmarshal(msg, &r))
	assert.Equal(t, session.KindGesture, r.Kind)
	assert.Equal(t, "wave", r.Category)
}

func TestPublishWithoutClients(t *testing.T) {
	h := NewEventsHandler(zerolog.Nop())

	assert.Zero(t, h.ClientCount())
	h.Publish(session.Reaction{Kind: session.KindExpression, Category: "neutral"})
}
