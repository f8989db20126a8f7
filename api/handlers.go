package api

import (
	"encoding/json"
	"net/http"

	"cardRevealServer/game"
	"cardRevealServer/ws"

	"github.com/go-chi/chi/v5"
)

/* =========================
   RESPONSE TYPES
========================= */

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type HealthResponse struct {
	Success bool   `json:"success"`
	State   string `json:"state"`
	Redis   string `json:"redis"`
	Message string `json:"message"`
}

type RTPResponse struct {
	Success              bool    `json:"success"`
	ExpectedMultiplier   float64 `json:"expectedMultiplier"`
	RTP                  float64 `json:"rtp"`
	ZeroRoundProbability float64 `json:"zeroRoundProbability"`
}

type ActionResponse struct {
	Success  bool          `json:"success"`
	Action   string        `json:"action"`
	Accepted bool          `json:"accepted"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type handlers struct {
	engine   *game.Engine
	ws       *ws.Handler
	settings HealthChecker
}

/* =========================
   ENDPOINTS
========================= */

// GET /api/health
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	redisHealth := "disabled"
	if h.settings != nil {
		redisHealth = "ok"
		if err := h.settings.HealthCheck(r.Context()); err != nil {
			redisHealth = "error: " + err.Error()
		}
	}

	sendJSON(w, http.StatusOK, HealthResponse{
		Success: true,
		State:   h.engine.State().String(),
		Redis:   redisHealth,
		Message: "Health check completed",
	})
}

// GET /api/state
func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, h.engine.Snapshot())
}

// GET /api/paytable
func (h *handlers) payTable(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, ws.NewPayTableData(h.engine.Table()))
}

// GET /api/rtp
func (h *handlers) rtp(w http.ResponseWriter, r *http.Request) {
	table := h.engine.Table()
	sendJSON(w, http.StatusOK, RTPResponse{
		Success:              true,
		ExpectedMultiplier:   table.ExpectedMultiplier(),
		RTP:                  game.TheoreticalRTP(table),
		ZeroRoundProbability: game.ZeroRoundProbability(table),
	})
}

// POST /api/action/{action}
// Rejected actions (wrong state, hidden control) answer 200 with accepted=false.
func (h *handlers) action(w http.ResponseWriter, r *http.Request) {
	action, ok := game.ParseAction(chi.URLParam(r, "action"))
	if !ok {
		sendError(w, http.StatusBadRequest, "Unknown action")
		return
	}

	accepted := h.ws.Perform(action)
	sendJSON(w, http.StatusOK, ActionResponse{
		Success:  true,
		Action:   string(action),
		Accepted: accepted,
		Snapshot: h.engine.Snapshot(),
	})
}

/* =========================
   HELPERS
========================= */

func sendJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

func sendError(w http.ResponseWriter, statusCode int, message string) {
	sendJSON(w, statusCode, ErrorResponse{
		Success: false,
		Error:   message,
	})
}
