package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardRevealServer/game"
	"cardRevealServer/metrics"
	"cardRevealServer/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHealth struct{ err error }

func (s stubHealth) HealthCheck(context.Context) error { return s.err }

func newTestRouter(t *testing.T, settings HealthChecker) (http.Handler, *game.Engine) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub()
	go hub.Run(ctx)

	table, err := game.NewOutcomeTable([]game.Outcome{{Value: 2, Chance: 1}}, nil)
	require.NoError(t, err)

	presenter := ws.NewPresenter(hub, time.Second)
	engine, err := game.NewEngine(table, []float64{0.5, 1, 2}, presenter,
		game.WithSpeed(game.SpeedInstant),
		game.WithSleeper(func(context.Context, time.Duration) error { return nil }),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		engine.Close()
		cancel()
	})

	router := NewRouter(Deps{
		Engine:   engine,
		WS:       ws.NewHandler(hub, engine, presenter, nil),
		Metrics:  metrics.NewRecorder(prometheus.NewRegistry()).Handler(),
		Settings: settings,
	})
	return router, engine
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Run("without redis", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		rec := do(t, router, http.MethodGet, "/api/health")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "disabled", resp.Redis)
		assert.Equal(t, "IDLE", resp.State)
	})

	t.Run("redis failing", func(t *testing.T) {
		router, _ := newTestRouter(t, stubHealth{err: errors.New("connection refused")})
		rec := do(t, router, http.MethodGet, "/api/health")

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "error: connection refused", resp.Redis)
	})
}

func TestState(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rec := do(t, router, http.MethodGet, "/api/state")

	require.Equal(t, http.StatusOK, rec.Code)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, game.StateIdle, snap.State)
	assert.Equal(t, []float64{0.5, 1, 2}, snap.Bets)
	assert.Equal(t, "SPEED: MAX", snap.SpeedLabel)
	assert.True(t, snap.Controls.Primary)
}

func TestPayTable(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rec := do(t, router, http.MethodGet, "/api/paytable")

	var data ws.PayTableData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, []string{"2x  -  Chance: 1%"}, data.Rows)
	assert.Equal(t, 1.0, data.TotalWeight)
}

func TestRTP(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rec := do(t, router, http.MethodGet, "/api/rtp")

	var resp RTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 2.0, resp.ExpectedMultiplier, 1e-9)
	assert.InDelta(t, 8.0, resp.RTP, 1e-9)
	assert.InDelta(t, 0.0, resp.ZeroRoundProbability, 1e-9)
}

func TestAction(t *testing.T) {
	t.Run("unknown action", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		rec := do(t, router, http.MethodPost, "/api/action/withdraw")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("cycle bet", func(t *testing.T) {
		router, engine := newTestRouter(t, nil)
		rec := do(t, router, http.MethodPost, "/api/action/cycle_bet")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp ActionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Accepted)
		assert.Equal(t, 2, resp.Snapshot.BetIndex)
		assert.Equal(t, 2.0, engine.BetAmount())
	})

	t.Run("start round", func(t *testing.T) {
		router, engine := newTestRouter(t, nil)
		rec := do(t, router, http.MethodPost, "/api/action/start_round")

		var resp ActionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Accepted)

		engine.Wait()
		assert.Equal(t, game.StateIdle, engine.State())
		res, ok := engine.LastResult()
		require.True(t, ok)
		assert.Equal(t, "8.00", res.Payout.StringFixed(2))
	})

	t.Run("get is not allowed", func(t *testing.T) {
		router, _ := newTestRouter(t, nil)
		rec := do(t, router, http.MethodGet, "/api/action/play")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestMetricsMounted(t *testing.T) {
	router, _ := newTestRouter(t, nil)
	rec := do(t, router, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/action/play", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
