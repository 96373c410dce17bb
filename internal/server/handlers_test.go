package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/assets"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/chat"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/providers"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/session"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/tools"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/usage"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use different DB for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	err = client.FlushDB(ctx).Err()
	require.NoError(t, err)

	return client
}

func cleanupTestRedis(client *redis.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = client.FlushDB(ctx).Err()
	_ = client.Close()
}

type cannedAdapter struct {
	fragments []string
}

func (a *cannedAdapter) Name() string     { return "canned" }
func (a *cannedAdapter) Configured() bool { return true }

func (a *cannedAdapter) Stream(_ context.Context, _ providers.Request) (<-chan providers.Fragment, error) {
	out := make(chan providers.Fragment, len(a.fragments))
	for _, d := range a.fragments {
		out <- providers.Fragment{Delta: d}
	}
	close(out)
	return out, nil
}

func newTestHandlers(t *testing.T, client *redis.Client, limit int) *Handlers {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	sessions, err := session.NewStore(client)
	require.NoError(t, err)
	ledger, err := usage.NewLedger(client, limit, "UTC")
	require.NoError(t, err)

	pipeline := &chat.Pipeline{
		Sessions:     sessions,
		Resolver:     assets.NewResolver(nil, logger),
		Orchestrator: &tools.Orchestrator{Logger: logger},
		Gateway: providers.NewGateway([]providers.StreamAdapter{
			&cannedAdapter{fragments: []string{"hello ", "world"}},
		}, logger),
		Ledger: ledger,
		Logger: logger,
	}

	return &Handlers{
		Pipeline:   pipeline,
		Ledger:     ledger,
		AdminToken: "secret-admin",
		Logger:     logger,
	}
}

func doChat(t *testing.T, h *Handlers, body string, header map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Chat(c))
	return rec
}

func TestHandlers_Health(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rec := httptest.NewRecorder()

	h := &Handlers{Logger: logrus.New()}
	require.NoError(t, h.Health(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())
}

func TestHandlers_Presets(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/presets", nil)
	rec := httptest.NewRecorder()

	h := &Handlers{Logger: logrus.New()}
	require.NoError(t, h.Presets(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "top-gainers")
	assert.Contains(t, rec.Body.String(), "oversold")
}

func TestHandlers_Chat_Validation(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)
	h := newTestHandlers(t, client, 10)

	t.Run("invalid json", func(t *testing.T) {
		rec := doChat(t, h, "{not json", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty messages", func(t *testing.T) {
		rec := doChat(t, h, `{"messages": []}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "messages are required")
	})

	t.Run("no user content", func(t *testing.T) {
		rec := doChat(t, h, `{"messages": [{"role": "assistant", "content": "hi"}]}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlers_Chat_StreamsSSE(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)
	h := newTestHandlers(t, client, 10)

	rec := doChat(t, h, `{"messages": [{"role": "user", "content": "price of BTC"}], "session_id": "sess-42"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "sess-42", rec.Header().Get("X-Session-Id"))

	body := rec.Body.String()
	assert.Contains(t, body, `data: {"delta":"hello "}`)
	assert.Contains(t, body, `data: {"delta":"world"}`)
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"), "stream must end with the sentinel")
}

func TestHandlers_Chat_GeneratesSessionID(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)
	h := newTestHandlers(t, client, 10)

	rec := doChat(t, h, `{"messages": [{"role": "user", "content": "hello"}]}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Session-Id"))
}

func TestHandlers_Chat_UsageCheck(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)
	h := newTestHandlers(t, client, 10)

	t.Run("regular caller", func(t *testing.T) {
		rec := doChat(t, h, `{"action": "usage_check"}`, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp UsageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 10, resp.Remaining)
		assert.False(t, resp.IsAdmin)
	})

	t.Run("admin caller", func(t *testing.T) {
		rec := doChat(t, h, `{"action": "usage_check"}`, map[string]string{"X-Admin-Token": "secret-admin"})

		var resp UsageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, usage.AdminRemaining, resp.Remaining)
		assert.True(t, resp.IsAdmin)
	})

	t.Run("wrong admin token is a regular caller", func(t *testing.T) {
		rec := doChat(t, h, `{"action": "usage_check"}`, map[string]string{"X-Admin-Token": "wrong"})

		var resp UsageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.IsAdmin)
	})
}

func TestHandlers_Chat_QuotaExhausted(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)
	h := newTestHandlers(t, client, 1)

	// Burn the single allowed turn directly in the ledger.
	require.NoError(t, h.Ledger.Record(context.Background(), "192.0.2.1"))

	body := `{"messages": [{"role": "user", "content": "price of BTC"}]}`
	rec := doChat(t, h, body, map[string]string{"X-Real-Ip": "192.0.2.1"})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "daily chat limit reached")

	// The same request with the admin credential sails through.
	rec = doChat(t, h, body, map[string]string{
		"X-Real-Ip":     "192.0.2.1",
		"X-Admin-Token": "secret-admin",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
